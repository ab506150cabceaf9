package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"rag-gateway/internal/config"
	"rag-gateway/internal/logging"
	"rag-gateway/internal/metrics"
	"rag-gateway/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveFlags struct {
	listenAddress string
	backendURL    string
	logLevel      string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gateway server",
	Long: `Start the gateway server with the specified configuration.

Examples:
  # Start with defaults (listen on :8080, backend at http://localhost:5000)
  rag-gateway serve

  # Start with a config file
  rag-gateway serve --config /etc/rag-gateway/config.yaml

  # Override the backend and listen address
  rag-gateway serve --backend-url http://rag-backend:5000 --listen 0.0.0.0:9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.backendURL, "backend-url", "", "override RAG backend base URL")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

// applyServeFlags overrides cfg with any flags that were set
func applyServeFlags(cfg *config.Config) error {
	if serveFlags.listenAddress != "" {
		cfg.Server.Address = serveFlags.listenAddress
	}
	if serveFlags.backendURL != "" {
		cfg.Backend.URL = serveFlags.backendURL
	}
	if serveFlags.logLevel != "" {
		cfg.Logging.Level = serveFlags.logLevel
	}
	return cfg.Validate()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyServeFlags(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics, nil)
	}

	logger.Info("Starting RAG Gateway",
		zap.String("version", Version),
		zap.String("address", cfg.Server.Address),
		zap.String("backend", cfg.Backend.URL),
		zap.Bool("metrics", cfg.Metrics.Enabled),
		zap.Bool("swagger", cfg.Swagger.Enabled),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger, collector)
	if err := srv.Run(ctx); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
		return err
	}
	return nil
}
