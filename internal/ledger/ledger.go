package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frahmantamala/budget-tracker/internal"
)

// ExpenseRecord is the single record shape used by every backing store.
// Stores marshal to and from their own wire formats at their boundary;
// none of their shapes leak into this type.
type ExpenseRecord struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	OccurredOn  time.Time       `json:"date"`
	Description string          `json:"description"`
}

// Store is the persistence contract for expense records. Implementations
// must preserve insertion order in List and issue one backend call per
// operation; they never retry internally.
type Store interface {
	Insert(ctx context.Context, rec *ExpenseRecord) error
	Get(ctx context.Context, id string) (*ExpenseRecord, error)
	Update(ctx context.Context, rec *ExpenseRecord) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*ExpenseRecord, error)
}

var (
	ErrRecordNotFound = internal.NewNotFoundError("expense not found", internal.ErrCodeExpenseNotFound)
)

// EventExpenseRecorded is published after a successful insert or update.
// Payload carries "category" and "expense_id".
const EventExpenseRecorded = "expense.recorded"
