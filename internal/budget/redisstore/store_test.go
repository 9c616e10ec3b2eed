package redisstore

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/budget-tracker/internal/budget"
)

func TestBudgetRedisStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Budget RedisStore Suite")
}

var _ = Describe("RedisStore", func() {
	var (
		store *Store
		mock  redismock.ClientMock
		ctx   context.Context
	)

	BeforeEach(func() {
		db, m := redismock.NewClientMock()
		store = NewStore(db)
		mock = m
		ctx = context.Background()
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})

	It("should store limits as exact decimal strings", func() {
		mock.ExpectHSet(limitsKey, "Groceries", "500.5").SetVal(1)

		limit := budget.Limit{Category: "Groceries", Limit: decimal.RequireFromString("500.5")}
		Expect(store.Put(ctx, limit)).To(Succeed())
	})

	It("should read a limit back", func() {
		mock.ExpectHGet(limitsKey, "Groceries").SetVal("500")

		limit, err := store.Get(ctx, "Groceries")
		Expect(err).ToNot(HaveOccurred())
		Expect(limit.Category).To(Equal("Groceries"))
		Expect(limit.Limit.Equal(decimal.NewFromInt(500))).To(BeTrue())
	})

	It("should map a missing category to the domain not-found error", func() {
		mock.ExpectHGet(limitsKey, "Travel").RedisNil()

		_, err := store.Get(ctx, "Travel")
		Expect(err).To(MatchError(budget.ErrLimitNotFound))
	})

	It("should reject malformed stored values", func() {
		mock.ExpectHGet(limitsKey, "Groceries").SetVal("lots")

		_, err := store.Get(ctx, "Groceries")
		Expect(err).To(MatchError(ContainSubstring("malformed limit")))
	})

	It("should list limits sorted by category", func() {
		mock.ExpectHGetAll(limitsKey).SetVal(map[string]string{
			"Transportation": "100",
			"Dining":         "200",
		})

		limits, err := store.List(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(limits).To(HaveLen(2))
		Expect(limits[0].Category).To(Equal("Dining"))
		Expect(limits[1].Category).To(Equal("Transportation"))
	})
})
