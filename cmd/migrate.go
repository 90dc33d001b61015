package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long:  `Runs GORM auto-migration for products, items, bundles, bundle items, orders and order items.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		db, _, _, err := rt.repositories()
		if err != nil {
			return err
		}

		if err := migrate(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		rt.logger.Info("Schema migrated", zap.String("driver", rt.cfg.Database.Driver))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
