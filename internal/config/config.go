package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the application configuration, loaded from config.toml
// beside the executable.
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Limits  LimitsConfig  `toml:"limits"`
	Extract ExtractConfig `toml:"extract"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port        int  `toml:"port"`
	DevMode     bool `toml:"dev_mode"`
	OpenBrowser bool `toml:"open_browser"`
}

// DataConfig holds filesystem layout settings.
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// LimitsConfig bounds what a single upload may cost.
type LimitsConfig struct {
	MaxFileMB           int `toml:"max_file_mb"`
	MaxSheets           int `toml:"max_sheets"`
	MaxCellsPerSheet    int `toml:"max_cells_per_sheet"`
	ParseTimeoutSeconds int `toml:"parse_timeout_seconds"`
	MaxConcurrentParses int `toml:"max_concurrent_parses"`
}

// ExtractConfig holds extraction heuristics toggles.
type ExtractConfig struct {
	// ColorOnlyMarkers accepts filled-but-empty cells as markers.
	ColorOnlyMarkers bool `toml:"color_only_markers"`
}

// LoadConfigInfo carries load metadata the command layer cares about.
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig returns the configuration used when config.toml is absent.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        18230,
			DevMode:     false,
			OpenBrowser: true,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Limits: LimitsConfig{
			MaxFileMB:           20,
			MaxSheets:           30,
			MaxCellsPerSheet:    500000,
			ParseTimeoutSeconds: 30,
			MaxConcurrentParses: 4,
		},
		Extract: ExtractConfig{
			ColorOnlyMarkers: false,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo loads config.toml and reports load metadata. A
// missing file is not an error; defaults apply.
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	// Environment override for E2E and local runs.
	if v := os.Getenv("CROPCAL_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}

	return config, info, nil
}

// LoadConfig loads config.toml from the executable's directory.
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// EnsureDataDir creates the data directory and its subdirectories next to
// the executable and returns the absolute path.
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "exports"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}
