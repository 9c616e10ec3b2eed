package budget_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/budget-tracker/internal/budget"
	budgetmemory "github.com/frahmantamala/budget-tracker/internal/budget/memory"
	"github.com/frahmantamala/budget-tracker/internal/ledger"
	ledgermemory "github.com/frahmantamala/budget-tracker/internal/ledger/memory"
	"github.com/frahmantamala/budget-tracker/internal/transport"
)

var _ = Describe("Budget Handler", func() {
	var (
		router  *chi.Mux
		expense *ledger.Service
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		expense = ledger.NewService(ledgermemory.NewStore(), nil, slogger)
		service := budget.NewService(budgetmemory.NewStore(), expense, nil, slogger)
		handler := budget.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Get("/budgets", handler.GetLimits)
		router.Put("/budgets/{category}", handler.SetLimit)
		router.Get("/budgets/{category}/status", handler.GetStatus)
	})

	setLimit := func(category, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/budgets/"+category, strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should set and list limits", func() {
		Expect(setLimit("Groceries", `{"limit":"500"}`).Code).To(Equal(http.StatusOK))

		req := httptest.NewRequest(http.MethodGet, "/budgets", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var response struct {
			Limits []struct {
				Category string `json:"category"`
				Limit    string `json:"limit"`
			} `json:"limits"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Limits).To(HaveLen(1))
		Expect(response.Limits[0].Category).To(Equal("Groceries"))
		Expect(response.Limits[0].Limit).To(Equal("500"))
	})

	It("should reject an invalid limit with 400", func() {
		w := setLimit("Groceries", `{"limit":"lots"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("please enter a valid limit"))
	})

	It("should answer no_limit with 200 for an unset category", func() {
		req := httptest.NewRequest(http.MethodGet, "/budgets/Travel/status", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var status budget.Status
		Expect(json.NewDecoder(w.Body).Decode(&status)).To(Succeed())
		Expect(status.Status).To(Equal(budget.StatusNoLimit))
		Expect(status.Spent).To(BeNil())
	})

	It("should report status against recorded spend", func() {
		Expect(setLimit("Groceries", `{"limit":"100"}`).Code).To(Equal(http.StatusOK))

		_, err := expense.Add(context.Background(), ledger.CreateExpenseDTO{
			Amount: "90", Category: "Groceries", Date: "2026-08-15",
		})
		Expect(err).ToNot(HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/budgets/Groceries/status", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var status budget.Status
		Expect(json.NewDecoder(w.Body).Decode(&status)).To(Succeed())
		Expect(status.Status).To(Equal(budget.StatusNear))
		Expect(status.Percentage.String()).To(Equal("90"))
	})
})
