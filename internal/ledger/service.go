package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/core/events"
)

// ListFilter narrows List results. Both date bounds are inclusive and
// independently optional; an empty category means no category filter.
type ListFilter struct {
	From     *time.Time
	To       *time.Time
	Category string
}

// Service owns the expense ledger. All reads are linear scans over the
// store's List output; at personal-tracker scale no indexing is warranted.
type Service struct {
	store  Store
	bus    *events.Bus
	logger *slog.Logger
}

// NewService wires a ledger service. The bus may be nil when no listener
// cares about recorded expenses (tests, the export command).
func NewService(store Store, bus *events.Bus, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		bus:    bus,
		logger: logger,
	}
}

// Add validates and appends a new expense. The record id is assigned here
// and never changes afterwards.
func (s *Service) Add(ctx context.Context, dto CreateExpenseDTO) (*ExpenseRecord, error) {
	amount, occurredOn, appErr := dto.Validate()
	if appErr != nil {
		s.logger.Error("expense validation failed", "error", appErr)
		return nil, appErr
	}

	rec := &ExpenseRecord{
		ID:          uuid.NewString(),
		Amount:      amount,
		Category:    dto.Category,
		OccurredOn:  occurredOn,
		Description: dto.Description,
	}

	if err := s.store.Insert(ctx, rec); err != nil {
		s.logger.Error("failed to insert expense", "error", err)
		return nil, err
	}

	s.logger.Info("expense recorded",
		"expense_id", rec.ID,
		"category", rec.Category,
		"amount", rec.Amount.String())

	s.publishRecorded(ctx, rec)
	return rec, nil
}

// Update applies the supplied fields to an existing record. Every supplied
// field is validated before any mutation, so a failed update leaves the
// stored record exactly as it was.
func (s *Service) Update(ctx context.Context, id string, dto UpdateExpenseDTO) (*ExpenseRecord, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *rec

	if dto.Amount != nil {
		amount, appErr := ParseAmount(*dto.Amount)
		if appErr != nil {
			return nil, appErr
		}
		updated.Amount = amount
	}
	if dto.Category != nil {
		if *dto.Category == "" {
			return nil, internal.NewValidationError("please select a category", internal.ErrCodeInvalidCategory)
		}
		updated.Category = *dto.Category
	}
	if dto.Date != nil {
		occurredOn, appErr := ParseDate(*dto.Date)
		if appErr != nil {
			return nil, appErr
		}
		updated.OccurredOn = occurredOn
	}
	if dto.Description != nil {
		updated.Description = *dto.Description
	}

	if err := s.store.Update(ctx, &updated); err != nil {
		s.logger.Error("failed to update expense", "error", err, "expense_id", id)
		return nil, err
	}

	s.logger.Info("expense updated", "expense_id", id, "category", updated.Category)

	s.publishRecorded(ctx, &updated)
	return &updated, nil
}

// Delete removes a record. The second delete of the same id is safe and
// reports false.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return false, err
	}
	if deleted {
		s.logger.Info("expense deleted", "expense_id", id)
	}
	return deleted, nil
}

// List returns records in insertion order, filtered by the inclusive date
// range and category when supplied.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*ExpenseRecord, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err)
		return nil, err
	}

	if filter.From == nil && filter.To == nil && filter.Category == "" {
		return records, nil
	}

	filtered := make([]*ExpenseRecord, 0, len(records))
	for _, rec := range records {
		if filter.Category != "" && rec.Category != filter.Category {
			continue
		}
		if filter.From != nil && rec.OccurredOn.Before(*filter.From) {
			continue
		}
		if filter.To != nil && rec.OccurredOn.After(*filter.To) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered, nil
}

// ListByCategory matches the category exactly, no case-folding.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]*ExpenseRecord, error) {
	return s.List(ctx, ListFilter{Category: category})
}

func (s *Service) publishRecorded(ctx context.Context, rec *ExpenseRecord) {
	if s.bus == nil {
		return
	}
	// subscribers run after the response is written; the request's
	// cancellation must not reach their store calls
	s.bus.Publish(context.WithoutCancel(ctx), events.New(EventExpenseRecorded, map[string]interface{}{
		"expense_id": rec.ID,
		"category":   rec.Category,
	}))
}
