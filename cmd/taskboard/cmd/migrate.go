package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yesaroun/taskboard/internal/config"
	"github.com/yesaroun/taskboard/internal/store"
	"github.com/yesaroun/taskboard/pkg/logging"
)

// newMigrateCommand creates the migrate command. The server also migrates
// on startup; this exists for provisioning a database ahead of deploy.
func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			st, err := store.Open(cfg.DatabasePath())
			if err != nil {
				return fmt.Errorf("opening store: %w", err)
			}
			defer st.Close()

			logging.Info().Str("database", cfg.DatabasePath()).Msg("Schema applied")
			return nil
		},
	}
}
