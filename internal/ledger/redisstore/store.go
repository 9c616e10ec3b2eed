package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/ledger"
)

const (
	recordsKey = "expenses"
	seqKey     = "expenses:seq"
)

// storedRecord wraps the record with the insertion sequence so List can
// reproduce insertion order from an unordered hash scan.
type storedRecord struct {
	Seq    int64                `json:"seq"`
	Record ledger.ExpenseRecord `json:"record"`
}

// Store persists expense records in a Redis hash keyed by record id.
// Each logical ledger operation maps to a single point call; no batching,
// caching or optimistic concurrency is layered on top.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Insert(ctx context.Context, rec *ledger.ExpenseRecord) error {
	seq, err := s.client.Incr(ctx, seqKey).Result()
	if err != nil {
		return internal.NewExternalError("failed to allocate expense sequence", err)
	}
	return s.put(ctx, storedRecord{Seq: seq, Record: *rec})
}

func (s *Store) Get(ctx context.Context, id string) (*ledger.ExpenseRecord, error) {
	stored, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := stored.Record
	return &rec, nil
}

func (s *Store) Update(ctx context.Context, rec *ledger.ExpenseRecord) error {
	existing, err := s.get(ctx, rec.ID)
	if err != nil {
		return err
	}
	return s.put(ctx, storedRecord{Seq: existing.Seq, Record: *rec})
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.client.HDel(ctx, recordsKey, id).Result()
	if err != nil {
		return false, internal.NewExternalError("failed to delete expense", err)
	}
	return removed > 0, nil
}

func (s *Store) List(ctx context.Context) ([]*ledger.ExpenseRecord, error) {
	raw, err := s.client.HGetAll(ctx, recordsKey).Result()
	if err != nil {
		return nil, internal.NewExternalError("failed to scan expenses", err)
	}

	stored := make([]storedRecord, 0, len(raw))
	for _, payload := range raw {
		var sr storedRecord
		if err := json.Unmarshal([]byte(payload), &sr); err != nil {
			return nil, internal.NewExternalError("malformed expense in storage", err)
		}
		stored = append(stored, sr)
	}

	sort.Slice(stored, func(i, j int) bool { return stored[i].Seq < stored[j].Seq })

	records := make([]*ledger.ExpenseRecord, len(stored))
	for i := range stored {
		rec := stored[i].Record
		records[i] = &rec
	}
	return records, nil
}

func (s *Store) put(ctx context.Context, sr storedRecord) error {
	payload, err := json.Marshal(sr)
	if err != nil {
		return internal.NewInternalError("failed to marshal expense", err)
	}
	if err := s.client.HSet(ctx, recordsKey, sr.Record.ID, payload).Err(); err != nil {
		return internal.NewExternalError("failed to write expense", err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, id string) (*storedRecord, error) {
	payload, err := s.client.HGet(ctx, recordsKey, id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ledger.ErrRecordNotFound
		}
		return nil, internal.NewExternalError("failed to read expense", err)
	}
	var sr storedRecord
	if err := json.Unmarshal([]byte(payload), &sr); err != nil {
		return nil, internal.NewExternalError("malformed expense in storage", err)
	}
	return &sr, nil
}
