package ledger_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/budget-tracker/internal/ledger"
	"github.com/frahmantamala/budget-tracker/internal/ledger/memory"
	"github.com/frahmantamala/budget-tracker/internal/transport"
)

var _ = Describe("Ledger Handler", func() {
	var router *chi.Mux

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := ledger.NewService(memory.NewStore(), nil, slogger)
		handler := ledger.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Post("/expenses", handler.CreateExpense)
		router.Get("/expenses", handler.ListExpenses)
		router.Put("/expenses/{id}", handler.UpdateExpense)
		router.Delete("/expenses/{id}", handler.DeleteExpense)
	})

	createExpense := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should create an expense and echo it back", func() {
		w := createExpense(`{"amount":"45.99","category":"Groceries","date":"2026-08-15","description":"Weekly groceries"}`)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response struct {
			Message string `json:"message"`
			Expense struct {
				ID     string `json:"id"`
				Amount string `json:"amount"`
			} `json:"expense"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Message).To(Equal("Expense added successfully"))
		Expect(response.Expense.ID).ToNot(BeEmpty())
		Expect(response.Expense.Amount).To(Equal("45.99"))
	})

	It("should reject an invalid amount with 400", func() {
		w := createExpense(`{"amount":"abc","category":"Groceries","date":"2026-08-15"}`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("please enter a valid amount"))
	})

	It("should reject malformed JSON with 400", func() {
		w := createExpense(`{"amount":`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should reject bad date filters on list with 400", func() {
		req := httptest.NewRequest(http.MethodGet, "/expenses?start_date=15/08/2026", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should list created expenses with filters applied", func() {
		Expect(createExpense(`{"amount":"45.99","category":"Groceries","date":"2026-08-01"}`).Code).To(Equal(http.StatusCreated))
		Expect(createExpense(`{"amount":"12.50","category":"Transportation","date":"2026-08-05"}`).Code).To(Equal(http.StatusCreated))

		req := httptest.NewRequest(http.MethodGet, "/expenses?category=Groceries", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var response struct {
			Expenses []struct {
				Category string `json:"category"`
			} `json:"expenses"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Expenses).To(HaveLen(1))
		Expect(response.Expenses[0].Category).To(Equal("Groceries"))
	})

	It("should return 404 when updating an unknown id", func() {
		req := httptest.NewRequest(http.MethodPut, "/expenses/no-such-id", strings.NewReader(`{"amount":"10"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should return 404 when deleting an unknown id", func() {
		req := httptest.NewRequest(http.MethodDelete, "/expenses/no-such-id", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
