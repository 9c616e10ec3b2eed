// Package report computes category summaries and totals over expense
// records. Both functions are pure; filtering by date or category happens
// upstream in the ledger.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/budget-tracker/internal/ledger"
)

// CategorySummary sums amounts per category in exact decimal arithmetic.
// Categories absent from the input do not appear in the output.
func CategorySummary(records []*ledger.ExpenseRecord) map[string]decimal.Decimal {
	summary := make(map[string]decimal.Decimal)
	for _, rec := range records {
		summary[rec.Category] = summary[rec.Category].Add(rec.Amount)
	}
	return summary
}

// Total sums every amount; an empty input yields exact zero.
func Total(records []*ledger.ExpenseRecord) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.Amount)
	}
	return total
}
