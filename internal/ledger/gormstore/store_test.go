package gormstore

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/budget-tracker/internal/ledger"
)

func TestLedgerGormStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ledger GormStore Suite")
}

var _ = Describe("GormStore", func() {
	var (
		store *Store
		ctx   context.Context
	)

	record := func(id, amount, category, date string) *ledger.ExpenseRecord {
		occurredOn, err := time.Parse("2006-01-02", date)
		Expect(err).ToNot(HaveOccurred())
		return &ledger.ExpenseRecord{
			ID:         id,
			Amount:     decimal.RequireFromString(amount),
			Category:   category,
			OccurredOn: occurredOn,
		}
	}

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
			TranslateError: true,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(db.AutoMigrate(&expenseRow{})).To(Succeed())

		store = NewStore(db)
		ctx = context.Background()
	})

	It("should round-trip a record without losing amount exactness", func() {
		rec := record("id-1", "45.99", "Groceries", "2026-08-15")
		rec.Description = "Weekly groceries"
		Expect(store.Insert(ctx, rec)).To(Succeed())

		got, err := store.Get(ctx, "id-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(got.Amount.Equal(decimal.RequireFromString("45.99"))).To(BeTrue())
		Expect(got.Category).To(Equal("Groceries"))
		Expect(got.Description).To(Equal("Weekly groceries"))
	})

	It("should reject duplicate record ids", func() {
		Expect(store.Insert(ctx, record("id-1", "10", "Misc", "2026-08-01"))).To(Succeed())
		Expect(store.Insert(ctx, record("id-1", "20", "Misc", "2026-08-02"))).To(HaveOccurred())
	})

	It("should report not found for an unknown id", func() {
		_, err := store.Get(ctx, "no-such-id")
		Expect(err).To(MatchError(ledger.ErrRecordNotFound))
	})

	It("should update an existing record in place", func() {
		Expect(store.Insert(ctx, record("id-1", "30.00", "Dining", "2026-08-10"))).To(Succeed())

		changed := record("id-1", "35.00", "Dining", "2026-08-11")
		Expect(store.Update(ctx, changed)).To(Succeed())

		got, err := store.Get(ctx, "id-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(got.Amount.Equal(decimal.RequireFromString("35.00"))).To(BeTrue())
		Expect(got.OccurredOn.Format("2006-01-02")).To(Equal("2026-08-11"))
	})

	It("should fail an update for an unknown id", func() {
		err := store.Update(ctx, record("ghost", "10", "Misc", "2026-08-01"))
		Expect(err).To(MatchError(ledger.ErrRecordNotFound))
	})

	It("should delete a record and say so only once", func() {
		Expect(store.Insert(ctx, record("id-1", "10", "Misc", "2026-08-01"))).To(Succeed())

		deleted, err := store.Delete(ctx, "id-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(deleted).To(BeTrue())

		deleted, err = store.Delete(ctx, "id-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(deleted).To(BeFalse())
	})

	It("should list records in insertion order", func() {
		Expect(store.Insert(ctx, record("id-1", "10", "Groceries", "2026-08-03"))).To(Succeed())
		Expect(store.Insert(ctx, record("id-2", "20", "Dining", "2026-08-01"))).To(Succeed())
		Expect(store.Insert(ctx, record("id-3", "30", "Transportation", "2026-08-02"))).To(Succeed())

		records, err := store.List(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(records).To(HaveLen(3))
		Expect(records[0].ID).To(Equal("id-1"))
		Expect(records[1].ID).To(Equal("id-2"))
		Expect(records[2].ID).To(Equal("id-3"))
	})
})
