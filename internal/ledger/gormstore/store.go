package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/ledger"
)

// expenseRow is the storage shape; amounts are persisted as text so no
// exactness is lost in the round trip. The seq column preserves insertion
// order for List.
type expenseRow struct {
	Seq         int64     `gorm:"primaryKey;autoIncrement"`
	ExpenseID   string    `gorm:"column:expense_id;uniqueIndex;not null"`
	Amount      string    `gorm:"not null"`
	Category    string    `gorm:"not null"`
	OccurredOn  time.Time `gorm:"column:occurred_on"`
	Description string
}

func (expenseRow) TableName() string {
	return "expenses"
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, rec *ledger.ExpenseRecord) error {
	row := toRow(rec)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return internal.NewExternalError("failed to insert expense", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*ledger.ExpenseRecord, error) {
	var row expenseRow
	err := s.db.WithContext(ctx).Where("expense_id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrRecordNotFound
		}
		return nil, internal.NewExternalError("failed to read expense", err)
	}
	return fromRow(&row)
}

func (s *Store) Update(ctx context.Context, rec *ledger.ExpenseRecord) error {
	res := s.db.WithContext(ctx).
		Model(&expenseRow{}).
		Where("expense_id = ?", rec.ID).
		Updates(map[string]interface{}{
			"amount":      rec.Amount.String(),
			"category":    rec.Category,
			"occurred_on": rec.OccurredOn,
			"description": rec.Description,
		})
	if res.Error != nil {
		return internal.NewExternalError("failed to update expense", res.Error)
	}
	if res.RowsAffected == 0 {
		return ledger.ErrRecordNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Where("expense_id = ?", id).Delete(&expenseRow{})
	if res.Error != nil {
		return false, internal.NewExternalError("failed to delete expense", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) List(ctx context.Context) ([]*ledger.ExpenseRecord, error) {
	var rows []expenseRow
	if err := s.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, internal.NewExternalError("failed to list expenses", err)
	}

	records := make([]*ledger.ExpenseRecord, 0, len(rows))
	for i := range rows {
		rec, err := fromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func toRow(rec *ledger.ExpenseRecord) expenseRow {
	return expenseRow{
		ExpenseID:   rec.ID,
		Amount:      rec.Amount.String(),
		Category:    rec.Category,
		OccurredOn:  rec.OccurredOn,
		Description: rec.Description,
	}
}

func fromRow(row *expenseRow) (*ledger.ExpenseRecord, error) {
	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		return nil, internal.NewExternalError("malformed amount in storage", err)
	}
	return &ledger.ExpenseRecord{
		ID:          row.ExpenseID,
		Amount:      amount,
		Category:    row.Category,
		OccurredOn:  row.OccurredOn,
		Description: row.Description,
	}, nil
}
