package ledger_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/core/events"
	"github.com/frahmantamala/budget-tracker/internal/ledger"
)

func TestLedger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ledger Suite")
}

// Mock store for testing
type mockStore struct {
	records     []*ledger.ExpenseRecord
	insertError error
	listError   error
}

func newMockStore() *mockStore {
	return &mockStore{records: make([]*ledger.ExpenseRecord, 0)}
}

func (m *mockStore) Insert(_ context.Context, rec *ledger.ExpenseRecord) error {
	if m.insertError != nil {
		return m.insertError
	}
	clone := *rec
	m.records = append(m.records, &clone)
	return nil
}

func (m *mockStore) Get(_ context.Context, id string) (*ledger.ExpenseRecord, error) {
	for _, rec := range m.records {
		if rec.ID == id {
			clone := *rec
			return &clone, nil
		}
	}
	return nil, ledger.ErrRecordNotFound
}

func (m *mockStore) Update(_ context.Context, rec *ledger.ExpenseRecord) error {
	for i, existing := range m.records {
		if existing.ID == rec.ID {
			clone := *rec
			m.records[i] = &clone
			return nil
		}
	}
	return ledger.ErrRecordNotFound
}

func (m *mockStore) Delete(_ context.Context, id string) (bool, error) {
	for i, rec := range m.records {
		if rec.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStore) List(_ context.Context) ([]*ledger.ExpenseRecord, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	out := make([]*ledger.ExpenseRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

var _ = Describe("LedgerService", func() {
	var (
		service *ledger.Service
		store   *mockStore
		ctx     context.Context
	)

	BeforeEach(func() {
		store = newMockStore()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = ledger.NewService(store, nil, logger)
		ctx = context.Background()
	})

	Describe("Add", func() {
		Context("when the expense is valid", func() {
			It("should assign an id and persist the record", func() {
				rec, err := service.Add(ctx, ledger.CreateExpenseDTO{
					Amount:      "45.99",
					Category:    "Groceries",
					Date:        "2026-08-15",
					Description: "Weekly groceries",
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(rec.ID).ToNot(BeEmpty())
				Expect(rec.Amount.Equal(decimal.RequireFromString("45.99"))).To(BeTrue())
				Expect(rec.Category).To(Equal("Groceries"))
				Expect(rec.OccurredOn.Format("2006-01-02")).To(Equal("2026-08-15"))
				Expect(store.records).To(HaveLen(1))
			})

			It("should accept a full ISO date-time", func() {
				rec, err := service.Add(ctx, ledger.CreateExpenseDTO{
					Amount:   "12.50",
					Category: "Transportation",
					Date:     "2026-08-15T18:30:00",
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(rec.OccurredOn.Hour()).To(Equal(18))
			})
		})

		Context("when validation fails", func() {
			It("should reject a non-numeric amount", func() {
				_, err := service.Add(ctx, ledger.CreateExpenseDTO{
					Amount:   "abc",
					Category: "Groceries",
					Date:     "2026-08-15",
				})

				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidAmount))
				Expect(store.records).To(BeEmpty())
			})

			It("should reject a missing amount", func() {
				_, err := service.Add(ctx, ledger.CreateExpenseDTO{
					Category: "Groceries",
					Date:     "2026-08-15",
				})

				Expect(err).To(MatchError(ContainSubstring("missing required field: amount")))
			})

			It("should reject an empty category", func() {
				_, err := service.Add(ctx, ledger.CreateExpenseDTO{
					Amount: "10",
					Date:   "2026-08-15",
				})

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidCategory))
			})

			It("should reject a malformed date", func() {
				_, err := service.Add(ctx, ledger.CreateExpenseDTO{
					Amount:   "10",
					Category: "Groceries",
					Date:     "15/08/2026",
				})

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidDate))
			})
		})
	})

	Describe("Update", func() {
		var existing *ledger.ExpenseRecord

		BeforeEach(func() {
			var err error
			existing, err = service.Add(ctx, ledger.CreateExpenseDTO{
				Amount:      "30.00",
				Category:    "Dining",
				Date:        "2026-08-10",
				Description: "Lunch",
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should change only the supplied fields", func() {
			amount := "35.00"
			updated, err := service.Update(ctx, existing.ID, ledger.UpdateExpenseDTO{
				Amount: &amount,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Amount.Equal(decimal.RequireFromString("35.00"))).To(BeTrue())
			Expect(updated.Category).To(Equal("Dining"))
			Expect(updated.Description).To(Equal("Lunch"))
		})

		It("should leave the record untouched when a supplied field is invalid", func() {
			amount := "not-a-number"
			category := "Travel"
			_, err := service.Update(ctx, existing.ID, ledger.UpdateExpenseDTO{
				Amount:   &amount,
				Category: &category,
			})

			Expect(err).To(HaveOccurred())

			stored, getErr := store.Get(ctx, existing.ID)
			Expect(getErr).ToNot(HaveOccurred())
			Expect(stored.Amount.Equal(decimal.RequireFromString("30.00"))).To(BeTrue())
			Expect(stored.Category).To(Equal("Dining"))
		})

		It("should fail for an unknown id", func() {
			amount := "35.00"
			_, err := service.Update(ctx, "no-such-id", ledger.UpdateExpenseDTO{Amount: &amount})
			Expect(err).To(MatchError(ledger.ErrRecordNotFound))
		})

		It("should never change the record id", func() {
			description := "Dinner"
			updated, err := service.Update(ctx, existing.ID, ledger.UpdateExpenseDTO{
				Description: &description,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.ID).To(Equal(existing.ID))
		})
	})

	Describe("event publication", func() {
		It("should hand subscribers a context that survives request cancellation", func() {
			quiet := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
			bus := events.NewBus(quiet)
			service = ledger.NewService(store, bus, quiet)

			released := make(chan struct{})
			ctxErr := make(chan error, 1)
			bus.Subscribe(ledger.EventExpenseRecorded, func(hctx context.Context, _ events.Event) error {
				<-released
				ctxErr <- hctx.Err()
				return nil
			})

			reqCtx, cancel := context.WithCancel(context.Background())
			_, err := service.Add(reqCtx, ledger.CreateExpenseDTO{
				Amount: "10", Category: "Misc", Date: "2026-08-01",
			})
			Expect(err).ToNot(HaveOccurred())

			cancel()
			close(released)

			Eventually(ctxErr).Should(Receive(BeNil()))
		})
	})

	Describe("Delete", func() {
		It("should report true once and false on the second attempt", func() {
			rec, err := service.Add(ctx, ledger.CreateExpenseDTO{
				Amount: "10", Category: "Misc", Date: "2026-08-01",
			})
			Expect(err).ToNot(HaveOccurred())

			deleted, err := service.Delete(ctx, rec.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(deleted).To(BeTrue())

			deleted, err = service.Delete(ctx, rec.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(deleted).To(BeFalse())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			seed := []ledger.CreateExpenseDTO{
				{Amount: "45.99", Category: "Groceries", Date: "2026-08-01"},
				{Amount: "12.50", Category: "Transportation", Date: "2026-08-05"},
				{Amount: "25.75", Category: "Groceries", Date: "2026-08-10"},
				{Amount: "30.00", Category: "Dining", Date: "2026-08-15"},
			}
			for _, dto := range seed {
				_, err := service.Add(ctx, dto)
				Expect(err).ToNot(HaveOccurred())
			}
		})

		It("should return everything in insertion order without a filter", func() {
			records, err := service.List(ctx, ledger.ListFilter{})
			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(HaveLen(4))
			Expect(records[0].Category).To(Equal("Groceries"))
			Expect(records[3].Category).To(Equal("Dining"))
		})

		It("should treat both date bounds as inclusive", func() {
			from, _ := time.Parse("2006-01-02", "2026-08-05")
			to, _ := time.Parse("2006-01-02", "2026-08-10")

			records, err := service.List(ctx, ledger.ListFilter{From: &from, To: &to})
			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[0].Category).To(Equal("Transportation"))
			Expect(records[1].Category).To(Equal("Groceries"))
		})

		It("should allow open-ended ranges", func() {
			from, _ := time.Parse("2006-01-02", "2026-08-10")
			records, err := service.List(ctx, ledger.ListFilter{From: &from})
			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(HaveLen(2))
		})

		It("should filter by exact category match", func() {
			records, err := service.ListByCategory(ctx, "Groceries")
			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(HaveLen(2))

			records, err = service.ListByCategory(ctx, "groceries")
			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(BeEmpty())
		})

		It("should combine category and date filters", func() {
			to, _ := time.Parse("2006-01-02", "2026-08-05")
			records, err := service.List(ctx, ledger.ListFilter{To: &to, Category: "Groceries"})
			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].Amount.String()).To(Equal("45.99"))
		})
	})
})
