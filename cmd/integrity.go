package cmd

import (
	"context"
	"fmt"

	"merch-manager/core/storage"
	"merch-manager/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the catalog and image storage",
	Long:  `Checks the catalog for records the needs report cannot use and the storage bucket for its folder and product images.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true)
	},
}

// catalogCheckCmd represents the integrity catalog command
var catalogCheckCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Check bundle recipes, quantities, names and types",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false)
	},
}

// storageCheckCmd represents the integrity storage command
var storageCheckCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and fix the bucket layout and product images",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	storageCheckCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
	integrityCmd.AddCommand(catalogCheckCmd)
	integrityCmd.AddCommand(storageCheckCmd)
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrityChecks(ctx context.Context, runCatalog, runStorage bool) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	logg := rt.logger
	defer logg.Sync()

	_, productRepo, _, err := rt.repositories()
	if err != nil {
		return err
	}

	client, err := storage.NewClient(rt.cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	svc := integrity.NewService(client, rt.cfg.Storage, rt.registry, rt.catalogCache(productRepo), logg)

	if runCatalog {
		logg.Info("Checking catalog...")
		report, err := svc.CheckCatalog(ctx)
		if err != nil {
			return fmt.Errorf("catalog check failed: %w", err)
		}

		if report.OK() {
			logg.Info("Catalog is consistent.", zap.Int("products", report.Products))
		} else {
			for _, issue := range report.Issues {
				logg.Warn("Catalog issue",
					zap.String("kind", issue.Kind),
					zap.String("product_id", issue.ProductID),
					zap.String("product", issue.Product),
					zap.String("detail", issue.Detail),
				)
			}
		}
	}

	if runStorage {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			return fmt.Errorf("structure check failed: %w", err)
		}

		if len(missing) == 0 {
			logg.Info("Structure is intact.")
		} else {
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))

			if fixFlag {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix structure: %w", err)
				}
				logg.Info("Structure fixed successfully.")
			} else {
				logg.Info("Run with --fix to create missing folders.")
			}
		}

		logg.Info("Checking product images...")
		images, err := svc.CheckImages(ctx)
		if err != nil {
			return fmt.Errorf("image check failed: %w", err)
		}
		for _, m := range images.Missing {
			logg.Warn("Product image missing", zap.String("product", m.Product), zap.String("key", m.Key))
		}
		if len(images.Orphans) > 0 {
			logg.Warn("Image folders without a product", zap.Strings("folders", images.Orphans))
		}
		logg.Info("Image check completed",
			zap.Int("checked", images.Checked),
			zap.Int("missing", len(images.Missing)),
			zap.Int("orphans", len(images.Orphans)),
		)
	}

	return nil
}
