package budget

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/frahmantamala/budget-tracker/internal"
)

// Limit is a per-category spending ceiling. Limits may reference categories
// with no recorded expenses and vice versa; no referential integrity is
// enforced between the two tables.
type Limit struct {
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
}

// LimitStore is the persistence contract for budget limits, upserted by
// category. No delete operation exists.
type LimitStore interface {
	Put(ctx context.Context, limit Limit) error
	Get(ctx context.Context, category string) (*Limit, error)
	List(ctx context.Context) ([]Limit, error)
}

var ErrLimitNotFound = internal.NewNotFoundError("no budget limit set", internal.ErrCodeLimitNotFound)

type StatusKind string

const (
	StatusNoLimit StatusKind = "no_limit"
	StatusUnder   StatusKind = "under_limit"
	StatusNear    StatusKind = "near_limit"
	StatusOver    StatusKind = "over_limit"
)

const nearLimitThreshold = 80

// Status is the classification of current spend against a category limit.
// Spent, Limit and Percentage are absent for the no_limit case.
type Status struct {
	Status     StatusKind       `json:"status"`
	Message    string           `json:"message"`
	Spent      *decimal.Decimal `json:"spent,omitempty"`
	Limit      *decimal.Decimal `json:"limit,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// EventThresholdCrossed is published when a category reaches near_limit or
// over_limit. Payload carries category, status, message and percentage.
const EventThresholdCrossed = "budget.threshold_crossed"

// Classify compares spend against a limit. A limit of exactly zero is
// trivially exceeded: it classifies as over_limit with percentage pinned
// to 100, and no division is attempted.
func Classify(category string, spent, limit decimal.Decimal) Status {
	var percentage decimal.Decimal
	if limit.IsZero() {
		percentage = decimal.NewFromInt(100)
	} else {
		percentage = spent.Div(limit).Mul(decimal.NewFromInt(100))
	}

	var kind StatusKind
	var message string
	switch {
	case percentage.GreaterThanOrEqual(decimal.NewFromInt(100)):
		kind = StatusOver
		message = fmt.Sprintf("Budget exceeded for %s! Spent %s of %s (%s%%)",
			category, spent.String(), limit.String(), percentage.StringFixed(1))
	case percentage.GreaterThanOrEqual(decimal.NewFromInt(nearLimitThreshold)):
		kind = StatusNear
		message = fmt.Sprintf("Approaching budget limit for %s. Spent %s of %s (%s%%)",
			category, spent.String(), limit.String(), percentage.StringFixed(1))
	default:
		kind = StatusUnder
		message = fmt.Sprintf("Budget for %s is on track. Spent %s of %s (%s%%)",
			category, spent.String(), limit.String(), percentage.StringFixed(1))
	}

	return Status{
		Status:     kind,
		Message:    message,
		Spent:      &spent,
		Limit:      &limit,
		Percentage: &percentage,
	}
}

// NoLimitStatus is the success response for a category with no configured
// ceiling; no division is attempted for it.
func NoLimitStatus(category string) Status {
	return Status{
		Status:  StatusNoLimit,
		Message: fmt.Sprintf("No budget limit set for %s", category),
	}
}
