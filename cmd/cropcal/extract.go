package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samankwah/agromet-sub002/internal/config"
	"github.com/samankwah/agromet-sub002/internal/exporter"
	"github.com/samankwah/agromet-sub002/internal/model"
	"github.com/samankwah/agromet-sub002/internal/parser"
)

var (
	extractOut       string
	extractPretty    bool
	extractColorOnly bool
	extractRegion    string
	extractDistrict  string
	extractCommodity string
	extractPoultry   string
	extractYear      int
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract a calendar from a spreadsheet and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "write JSON to a file instead of stdout")
	extractCmd.Flags().BoolVar(&extractPretty, "pretty", true, "indent the JSON output")
	extractCmd.Flags().BoolVar(&extractColorOnly, "color-only-markers", false, "treat filled empty cells as markers")
	extractCmd.Flags().StringVar(&extractRegion, "region", "", "region hint")
	extractCmd.Flags().StringVar(&extractDistrict, "district", "", "district hint")
	extractCmd.Flags().StringVar(&extractCommodity, "commodity", "", "commodity hint")
	extractCmd.Flags().StringVar(&extractPoultry, "poultry-type", "", "poultry type hint")
	extractCmd.Flags().IntVar(&extractYear, "year", 0, "calendar year hint")
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	hints := model.UploadHints{
		Region:      extractRegion,
		District:    extractDistrict,
		Commodity:   extractCommodity,
		PoultryType: extractPoultry,
		Year:        extractYear,
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warn("failed to load config, using defaults", zap.Error(err))
		cfg = config.DefaultConfig()
	}
	opts := parser.Options{
		ColorOnlyMarkers: cfg.Extract.ColorOnlyMarkers,
		Limits: parser.Limits{
			MaxFileBytes:     int64(cfg.Limits.MaxFileMB) << 20,
			MaxSheets:        cfg.Limits.MaxSheets,
			MaxCellsPerSheet: cfg.Limits.MaxCellsPerSheet,
		},
	}
	if cmd.Flags().Changed("color-only-markers") {
		opts.ColorOnlyMarkers = extractColorOnly
	}

	timeout := time.Duration(cfg.Limits.ParseTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res, err := parser.Parse(ctx, data, filepath.Base(path), hints, opts)
	if err != nil {
		return err
	}

	out := os.Stdout
	if extractOut != "" {
		f, err := os.Create(extractOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", extractOut, err)
		}
		defer f.Close()
		out = f
	}
	return exporter.WriteJSON(out, res, extractPretty)
}
