// Package cli implements the storefront command line.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dtroode/storefront-server/internal/config"
	"github.com/dtroode/storefront-server/internal/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the storefront CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront session server",
		Long: `Storefront serves shopping sessions over gRPC: a per-session basket
mirrored to the signed-in user's document, checkout through Stripe and a
live title catalog.

Configuration is read from the environment.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewReceiptCommand(opts))

	return cmd
}

// setup loads the configuration and builds the logger.
func setup(opts *RootOptions) (*config.Config, *logger.Logger, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = int(slog.LevelDebug)
	}
	return cfg, logger.New(level), nil
}
