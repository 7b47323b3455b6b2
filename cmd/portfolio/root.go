package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/UditanshuPandey/Portfolio-Website/internal/config"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio website API server",
	Long: `Serves the public blog API and the session-protected admin console.

Running without a subcommand starts the server.

Examples:
  portfolio
  portfolio serve --config ./config.yaml
  portfolio hash-password`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config file (default: search ., ./config, /etc/portfolio)")
}

// newLogger builds the process logger from the log section of the config.
func newLogger(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Format) {
	case "", "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}
}
