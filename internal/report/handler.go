package report

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

// GetSummary returns per-category totals plus the grand total over the
// optional inclusive date range.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
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

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"summary": CategorySummary(records),
		"total":   Total(records),
	})
}

// GetBalance returns the grand total only.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
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

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"balance": Total(records),
	})
}
