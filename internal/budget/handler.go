package budget

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/budget-tracker/internal/transport"
)

type ServiceAPI interface {
	SetLimit(ctx context.Context, category, rawLimit string) (*Limit, error)
	Limits(ctx context.Context) ([]Limit, error)
	CheckStatus(ctx context.Context, category string) (Status, error)
}

type SetLimitDTO struct {
	Limit string `json:"limit"`
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

func (h *Handler) SetLimit(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	var dto SetLimitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SetLimit: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	limit, err := h.Service.SetLimit(r.Context(), category, dto.Limit)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, limit)
}

func (h *Handler) GetLimits(w http.ResponseWriter, r *http.Request) {
	limits, err := h.Service.Limits(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"limits": limits,
	})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	status, err := h.Service.CheckStatus(r.Context(), category)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, status)
}
