package gormstore

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/budget"
)

type limitRow struct {
	Category string `gorm:"primaryKey"`
	Limit    string `gorm:"column:limit_amount;not null"`
}

func (limitRow) TableName() string {
	return "budget_limits"
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Put(ctx context.Context, limit budget.Limit) error {
	row := limitRow{Category: limit.Category, Limit: limit.Limit.String()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "category"}},
			DoUpdates: clause.AssignmentColumns([]string{"limit_amount"}),
		}).
		Create(&row).Error
	if err != nil {
		return internal.NewExternalError("failed to store budget limit", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, category string) (*budget.Limit, error) {
	var row limitRow
	err := s.db.WithContext(ctx).Where("category = ?", category).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budget.ErrLimitNotFound
		}
		return nil, internal.NewExternalError("failed to read budget limit", err)
	}
	return fromRow(&row)
}

func (s *Store) List(ctx context.Context) ([]budget.Limit, error) {
	var rows []limitRow
	if err := s.db.WithContext(ctx).Order("category ASC").Find(&rows).Error; err != nil {
		return nil, internal.NewExternalError("failed to list budget limits", err)
	}

	limits := make([]budget.Limit, 0, len(rows))
	for i := range rows {
		limit, err := fromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		limits = append(limits, *limit)
	}
	return limits, nil
}

func fromRow(row *limitRow) (*budget.Limit, error) {
	value, err := decimal.NewFromString(row.Limit)
	if err != nil {
		return nil, internal.NewExternalError("malformed limit in storage", err)
	}
	return &budget.Limit{Category: row.Category, Limit: value}, nil
}
