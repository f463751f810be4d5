package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samankwah/agromet-sub002/internal/config"
	"github.com/samankwah/agromet-sub002/internal/server"
	"github.com/samankwah/agromet-sub002/internal/util"
)

var (
	servePort    int
	serveDevMode bool
	serveDataDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (a port set in config.toml wins)")
	serveCmd.Flags().BoolVar(&serveDevMode, "dev", false, "development mode")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "", "data directory (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		logger.Warn("failed to load config, using defaults", zap.Error(err))
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// flags lose to an explicit config.toml port
	if servePort > 0 && !info.PortSpecified {
		cfg.Server.Port = servePort
	}
	if serveDevMode {
		cfg.Server.DevMode = true
	}
	if serveDataDir != "" {
		cfg.Data.DataDir = serveDataDir
	}

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(addr)
	}()

	if cfg.Server.OpenBrowser && !cfg.Server.DevMode {
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("open %s manually\n", url)
		}
	} else {
		fmt.Printf("serving on %s\n", url)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
		logger.Info("shutting down")
		return nil
	}
}
