package main

import (
	"fmt"
	"os"

	"rag-gateway/internal/config"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "rag-gateway",
	Short: "RAG Gateway - validating front door for a RAG backend",
	Long: `RAG Gateway exposes question-answering and document ingestion over HTTP.

Requests are validated and normalized locally, forwarded to the RAG backend,
and every failure is translated into a stable error response.

Configuration is read from defaults, an optional YAML file, an optional .env
file and RAG_GATEWAY_* environment variables.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (YAML)")
}

// loadConfig loads the configuration named by --config
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
