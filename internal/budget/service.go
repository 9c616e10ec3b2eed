package budget

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/core/events"
	"github.com/frahmantamala/budget-tracker/internal/ledger"
	"github.com/frahmantamala/budget-tracker/internal/report"
)

// ExpenseReader is the slice of the ledger the monitor needs: spend for a
// category is always recomputed fresh from current ledger contents.
type ExpenseReader interface {
	ListByCategory(ctx context.Context, category string) ([]*ledger.ExpenseRecord, error)
}

type Service struct {
	limits   LimitStore
	expenses ExpenseReader
	bus      *events.Bus
	logger   *slog.Logger
}

func NewService(limits LimitStore, expenses ExpenseReader, bus *events.Bus, logger *slog.Logger) *Service {
	return &Service{
		limits:   limits,
		expenses: expenses,
		bus:      bus,
		logger:   logger,
	}
}

// SetLimit creates or overwrites the ceiling for a category.
func (s *Service) SetLimit(ctx context.Context, category, rawLimit string) (*Limit, error) {
	if category == "" {
		return nil, internal.NewValidationError("please select a category", internal.ErrCodeInvalidCategory)
	}
	value, appErr := ledger.ParseAmount(rawLimit)
	if appErr != nil {
		return nil, internal.NewValidationError("please enter a valid limit", internal.ErrCodeInvalidLimit)
	}

	limit := Limit{Category: category, Limit: value}
	if err := s.limits.Put(ctx, limit); err != nil {
		s.logger.Error("failed to store budget limit", "error", err, "category", category)
		return nil, err
	}

	s.logger.Info("budget limit set", "category", category, "limit", value.String())
	return &limit, nil
}

func (s *Service) Limits(ctx context.Context) ([]Limit, error) {
	limits, err := s.limits.List(ctx)
	if err != nil {
		s.logger.Error("failed to list budget limits", "error", err)
		return nil, err
	}
	return limits, nil
}

// CheckStatus classifies current spend for a category. A category without
// a configured limit yields the distinct no_limit status, not an error.
func (s *Service) CheckStatus(ctx context.Context, category string) (Status, error) {
	limit, err := s.limits.Get(ctx, category)
	if err != nil {
		if internal.IsNotFound(err) {
			return NoLimitStatus(category), nil
		}
		s.logger.Error("failed to read budget limit", "error", err, "category", category)
		return Status{}, err
	}

	records, err := s.expenses.ListByCategory(ctx, category)
	if err != nil {
		return Status{}, err
	}

	return Classify(category, report.Total(records), limit.Limit), nil
}

// HandleExpenseRecorded recomputes the budget status for the category of a
// freshly recorded expense and publishes a threshold event when spend is at
// or past the warning band.
func (s *Service) HandleExpenseRecorded(ctx context.Context, event events.Event) error {
	category, _ := event.Payload()["category"].(string)
	if category == "" {
		return nil
	}

	status, err := s.CheckStatus(ctx, category)
	if err != nil {
		return err
	}
	if status.Status != StatusNear && status.Status != StatusOver {
		return nil
	}

	if s.bus != nil {
		// notification handlers outlive the originating request
		s.bus.Publish(context.WithoutCancel(ctx), events.New(EventThresholdCrossed, map[string]interface{}{
			"category":   category,
			"status":     string(status.Status),
			"message":    status.Message,
			"percentage": status.Percentage.String(),
		}))
	}
	return nil
}
