// Package export renders expense data as delimited text. It is purely a
// formatting concern; all business logic stays in the ledger and report
// packages.
package export

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/frahmantamala/budget-tracker/internal/ledger"
)

var expenseHeader = []string{"ID", "Amount", "Category", "Date", "Description"}

// WriteExpensesCSV writes one row per record in the order given, with the
// date rendered as YYYY-MM-DD.
func WriteExpensesCSV(w io.Writer, records []*ledger.ExpenseRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(expenseHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.ID,
			rec.Amount.String(),
			rec.Category,
			rec.OccurredOn.Format("2006-01-02"),
			rec.Description,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes one row per category in lexical order.
func WriteSummaryCSV(w io.Writer, summary map[string]decimal.Decimal) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Category", "Total"}); err != nil {
		return err
	}

	categories := make([]string, 0, len(summary))
	for category := range summary {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		if err := cw.Write([]string{category, summary[category].String()}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
