package redisstore

import (
	"context"
	"errors"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/budget"
)

const limitsKey = "budget-limits"

// Store persists budget limits in a Redis hash keyed by category, the
// limit value stored as its exact decimal string.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Put(ctx context.Context, limit budget.Limit) error {
	err := s.client.HSet(ctx, limitsKey, limit.Category, limit.Limit.String()).Err()
	if err != nil {
		return internal.NewExternalError("failed to store budget limit", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, category string) (*budget.Limit, error) {
	raw, err := s.client.HGet(ctx, limitsKey, category).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, budget.ErrLimitNotFound
		}
		return nil, internal.NewExternalError("failed to read budget limit", err)
	}
	return parseLimit(category, raw)
}

func (s *Store) List(ctx context.Context) ([]budget.Limit, error) {
	raw, err := s.client.HGetAll(ctx, limitsKey).Result()
	if err != nil {
		return nil, internal.NewExternalError("failed to list budget limits", err)
	}

	limits := make([]budget.Limit, 0, len(raw))
	for category, value := range raw {
		limit, err := parseLimit(category, value)
		if err != nil {
			return nil, err
		}
		limits = append(limits, *limit)
	}
	sort.Slice(limits, func(i, j int) bool { return limits[i].Category < limits[j].Category })
	return limits, nil
}

func parseLimit(category, raw string) (*budget.Limit, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, internal.NewExternalError("malformed limit in storage", err)
	}
	return &budget.Limit{Category: category, Limit: value}, nil
}
