package export_test

import (
	"bytes"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/budget-tracker/internal/export"
	"github.com/frahmantamala/budget-tracker/internal/ledger"
)

func TestExport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Export Suite")
}

var _ = Describe("CSV export", func() {
	Describe("WriteExpensesCSV", func() {
		It("should write a header plus one row per record", func() {
			occurredOn, err := time.Parse("2006-01-02", "2026-08-15")
			Expect(err).ToNot(HaveOccurred())

			records := []*ledger.ExpenseRecord{
				{
					ID:          "id-1",
					Amount:      decimal.RequireFromString("45.99"),
					Category:    "Groceries",
					OccurredOn:  occurredOn,
					Description: "Weekly groceries",
				},
			}

			var buf bytes.Buffer
			Expect(export.WriteExpensesCSV(&buf, records)).To(Succeed())

			Expect(buf.String()).To(Equal(
				"ID,Amount,Category,Date,Description\n" +
					"id-1,45.99,Groceries,2026-08-15,Weekly groceries\n"))
		})

		It("should quote fields containing commas", func() {
			occurredOn, _ := time.Parse("2006-01-02", "2026-08-15")
			records := []*ledger.ExpenseRecord{
				{
					ID:          "id-2",
					Amount:      decimal.RequireFromString("10"),
					Category:    "Dining",
					OccurredOn:  occurredOn,
					Description: "Coffee, cake",
				},
			}

			var buf bytes.Buffer
			Expect(export.WriteExpensesCSV(&buf, records)).To(Succeed())
			Expect(buf.String()).To(ContainSubstring(`"Coffee, cake"`))
		})

		It("should write just the header for no records", func() {
			var buf bytes.Buffer
			Expect(export.WriteExpensesCSV(&buf, nil)).To(Succeed())
			Expect(buf.String()).To(Equal("ID,Amount,Category,Date,Description\n"))
		})
	})

	Describe("WriteSummaryCSV", func() {
		It("should write categories in lexical order", func() {
			summary := map[string]decimal.Decimal{
				"Transportation": decimal.RequireFromString("12.50"),
				"Dining":         decimal.RequireFromString("30"),
				"Groceries":      decimal.RequireFromString("71.74"),
			}

			var buf bytes.Buffer
			Expect(export.WriteSummaryCSV(&buf, summary)).To(Succeed())

			Expect(buf.String()).To(Equal(
				"Category,Total\n" +
					"Dining,30\n" +
					"Groceries,71.74\n" +
					"Transportation,12.5\n"))
		})
	})
})
