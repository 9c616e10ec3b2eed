// Package notification keeps a bounded in-memory feed of budget threshold
// alerts. Delivery is fire-and-forget; nothing in the ledger path blocks
// on it.
package notification

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/frahmantamala/budget-tracker/internal/core/events"
	"github.com/frahmantamala/budget-tracker/internal/transport"
)

const defaultCapacity = 100

type Notification struct {
	Category   string    `json:"category"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	Percentage string    `json:"percentage"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notifier subscribes to threshold events and retains the most recent
// notifications, newest first.
type Notifier struct {
	mu       sync.RWMutex
	entries  []Notification
	capacity int
	logger   *slog.Logger
}

func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{
		entries:  make([]Notification, 0, defaultCapacity),
		capacity: defaultCapacity,
		logger:   logger,
	}
}

// HandleThresholdCrossed records one notification per threshold event.
func (n *Notifier) HandleThresholdCrossed(_ context.Context, event events.Event) error {
	payload := event.Payload()

	category, _ := payload["category"].(string)
	status, _ := payload["status"].(string)
	message, _ := payload["message"].(string)
	percentage, _ := payload["percentage"].(string)

	entry := Notification{
		Category:   category,
		Status:     status,
		Message:    message,
		Percentage: percentage,
		CreatedAt:  event.OccurredAt(),
	}

	n.mu.Lock()
	n.entries = append(n.entries, entry)
	if len(n.entries) > n.capacity {
		n.entries = n.entries[len(n.entries)-n.capacity:]
	}
	n.mu.Unlock()

	n.logger.Warn("budget threshold crossed", "category", category, "status", status)
	return nil
}

// Recent returns retained notifications, newest first.
func (n *Notifier) Recent() []Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]Notification, len(n.entries))
	for i, entry := range n.entries {
		out[len(n.entries)-1-i] = entry
	}
	return out
}

type Handler struct {
	*transport.BaseHandler
	Notifier *Notifier
}

func NewHandler(base *transport.BaseHandler, notifier *Notifier) *Handler {
	return &Handler{
		BaseHandler: base,
		Notifier:    notifier,
	}
}

func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": h.Notifier.Recent(),
	})
}
