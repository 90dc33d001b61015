package cmd

import (
	"fmt"
	"time"

	"merch-manager/core/fixtures"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a YAML fixture into the database",
	Long: `Reads a fixture holding products and orders, migrates the schema and
inserts everything in it. Ids present in the fixture are kept.

Example:
  merch-manager seed --file fixtures.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path, _ := cmd.Flags().GetString("file")

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		f, err := fixtures.LoadFile(path)
		if err != nil {
			return err
		}
		entries, err := f.Catalog(rt.registry)
		if err != nil {
			return fmt.Errorf("invalid fixture: %w", err)
		}
		orderList, err := f.CatalogOrders(time.Now())
		if err != nil {
			return fmt.Errorf("invalid fixture: %w", err)
		}

		db, productRepo, orderRepo, err := rt.repositories()
		if err != nil {
			return err
		}
		if err := migrate(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		if err := productRepo.Import(ctx, entries); err != nil {
			return err
		}
		for _, o := range orderList {
			if err := orderRepo.Create(ctx, o); err != nil {
				return err
			}
		}

		rt.logger.Info("Fixture loaded",
			zap.String("file", path),
			zap.Int("products", len(entries)),
			zap.Int("orders", len(orderList)),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().String("file", "fixtures.yaml", "Path to the YAML fixture")
	RootCmd.AddCommand(seedCmd)
}
