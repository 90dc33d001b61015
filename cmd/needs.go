package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"merch-manager/core/catalog"
	"merch-manager/core/fixtures"
	"merch-manager/core/reconcile"
	"merch-manager/feature/orders"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// needsCmd represents the needs command
var needsCmd = &cobra.Command{
	Use:   "needs",
	Short: "Compute inventory needs for the open orders",
	Long: `Computes how much of each product the non-cancelled orders require and
compares it with the stock on record. Reads the database by default, or a
YAML fixture with --file. Outputs metrics by default and saves the detailed
report with --json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		path, _ := cmd.Flags().GetString("file")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		var (
			entries   []catalog.Entry
			orderList []catalog.Order
		)
		if path != "" {
			f, err := fixtures.LoadFile(path)
			if err != nil {
				return err
			}
			if entries, err = f.Catalog(rt.registry); err != nil {
				return fmt.Errorf("invalid fixture: %w", err)
			}
			if orderList, err = f.CatalogOrders(startTime); err != nil {
				return fmt.Errorf("invalid fixture: %w", err)
			}
		} else {
			_, productRepo, orderRepo, err := rt.repositories()
			if err != nil {
				return err
			}
			if entries, err = productRepo.LoadCatalog(ctx); err != nil {
				return err
			}
			if orderList, err = orderRepo.List(ctx); err != nil {
				return err
			}
		}

		open := orders.Open(orderList)

		report := reconcile.NewReport(reconcile.ComputeInventoryNeeds(open, entries))

		filename := ""
		if jsonOutput {
			filename = fmt.Sprintf("inventory_needs_%d.json", time.Now().Unix())
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to save JSON file: %w", err)
			}
			rt.logger.Info("Detailed JSON report saved", zap.String("file", filename))
		}

		executionTime := time.Since(startTime)
		s := report.Summary

		fmt.Println("\n=== Inventory Needs ===")
		fmt.Printf("Open Orders: %d\n", len(open))
		fmt.Printf("Products Ordered: %d\n", s.TotalProducts)
		fmt.Printf("Products With Shortage: %d\n", s.ProductsWithShortage)
		fmt.Printf("Total Needed: %d\n", s.TotalNeeded)
		fmt.Printf("Total Available: %d\n", s.TotalAvailable)
		fmt.Printf("Total Shortage: %d\n", s.TotalShortage)
		fmt.Printf("Execution Time: %s\n", executionTime.String())

		if len(report.Restock) > 0 {
			fmt.Println("\n=== To Order ===")
			for _, r := range report.Restock {
				if r.Quantity > 0 {
					fmt.Printf("%s: %d\n", r.Product, r.Quantity)
				}
				for _, v := range r.Variants {
					fmt.Printf("%s [%s]: %d\n", r.Product, v.Label, v.Quantity)
				}
			}
		}
		if filename != "" {
			fmt.Printf("\nDetailed JSON saved to: %s\n", filename)
		}

		rt.logger.Info("Inventory needs computed",
			zap.Int("orders", len(open)),
			zap.Int("products", s.TotalProducts),
			zap.Int("shortage", s.TotalShortage),
			zap.Duration("execution_time", executionTime),
		)
		return nil
	},
}

func init() {
	needsCmd.Flags().String("file", "", "Compute from a YAML fixture instead of the database")
	needsCmd.Flags().Bool("json", false, "Save the detailed report as JSON")
	RootCmd.AddCommand(needsCmd)
}
