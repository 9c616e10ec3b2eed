package export

import (
	"context"
	"net/http"

	"github.com/frahmantamala/budget-tracker/internal/ledger"
	"github.com/frahmantamala/budget-tracker/internal/transport"
)

type ExpenseLister interface {
	List(ctx context.Context, filter ledger.ListFilter) ([]*ledger.ExpenseRecord, error)
}

type Handler struct {
	*transport.BaseHandler
	Expenses ExpenseLister
}

func NewHandler(base *transport.BaseHandler, expenses ExpenseLister) *Handler {
	return &Handler{
		BaseHandler: base,
		Expenses:    expenses,
	}
}

// ExportExpensesCSV streams the expense report for the optional date range
// and category filter.
func (h *Handler) ExportExpensesCSV(w http.ResponseWriter, r *http.Request) {
	filter, appErr := ledger.FilterFromQuery(r)
	if appErr != nil {
		h.HandleServiceError(w, appErr)
		return
	}

	records, err := h.Expenses.List(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)

	if err := WriteExpensesCSV(w, records); err != nil {
		h.Logger.Error("failed to write CSV report", "error", err)
	}
}
