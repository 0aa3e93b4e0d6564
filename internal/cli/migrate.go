package cli

import (
	"github.com/spf13/cobra"

	"github.com/dtroode/storefront-server/database"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending PostgreSQL migrations",
		Long: `Apply every pending schema migration to the database at DATABASE_DSN.

serve applies migrations on start as well; migrate lets a deploy run them
ahead of the rollout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(rootOpts)
			if err != nil {
				return err
			}

			if err := database.Migrate(cmd.Context(), cfg.Database.DSN); err != nil {
				return err
			}
			logger.Info("Migrate: database is up to date")
			return nil
		},
	}
}
