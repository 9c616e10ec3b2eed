package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/budget-tracker/internal/export"
	"github.com/frahmantamala/budget-tracker/internal/ledger"
	"github.com/frahmantamala/budget-tracker/internal/report"
	"github.com/frahmantamala/budget-tracker/pkg/logger"
)

var (
	exportOut     string
	exportSummary bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export expenses as CSV",
	Long:  `Dump all recorded expenses (or a per-category summary) as CSV to stdout or a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(".")
		if err != nil {
			return err
		}
		logger.Init(cfg.Logging.Level, cfg.Logging.Format)
		log := logger.L()

		stores, err := openStores(cfg.Storage)
		if err != nil {
			return err
		}
		defer stores.Close()

		ledgerService := ledger.NewService(stores.Ledger, nil, log)
		records, err := ledgerService.List(context.Background(), ledger.ListFilter{})
		if err != nil {
			return fmt.Errorf("failed to list expenses: %w", err)
		}

		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if exportSummary {
			return export.WriteSummaryCSV(out, report.CategorySummary(records))
		}
		return export.WriteExpensesCSV(out, records)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write CSV to this file instead of stdout")
	exportCmd.Flags().BoolVar(&exportSummary, "summary", false, "export per-category totals instead of individual expenses")
}
