package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/transport"
)

type ServiceAPI interface {
	Add(ctx context.Context, dto CreateExpenseDTO) (*ExpenseRecord, error)
	Update(ctx context.Context, id string, dto UpdateExpenseDTO) (*ExpenseRecord, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*ExpenseRecord, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     service,
	}
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.Add(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Expense added successfully",
		"expense": rec,
	})
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpdateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.Update(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Expense updated successfully",
		"expense": rec,
	})
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.Service.Delete(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if !deleted {
		h.WriteError(w, http.StatusNotFound, fmt.Sprintf("expense with ID %s not found", id))
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("expense with ID %s deleted successfully", id),
	})
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	filter, appErr := FilterFromQuery(r)
	if appErr != nil {
		h.HandleServiceError(w, appErr)
		return
	}

	records, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"expenses": records,
	})
}

// FilterFromQuery reads the optional start_date, end_date and category
// query parameters shared by the list, summary and balance endpoints.
func FilterFromQuery(r *http.Request) (ListFilter, *internal.AppError) {
	var filter ListFilter

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		from, appErr := ParseDate(raw)
		if appErr != nil {
			return ListFilter{}, appErr
		}
		filter.From = &from
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		to, appErr := ParseDate(raw)
		if appErr != nil {
			return ListFilter{}, appErr
		}
		filter.To = &to
	}
	filter.Category = r.URL.Query().Get("category")

	return filter, nil
}
