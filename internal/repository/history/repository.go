// Package history persists calculation results as a single JSON array under one key.
//
// Every operation loads the whole array, changes it, and writes the whole array back.
// Nothing is locked between the load and the write, so two callers mutating the history
// at the same time can lose one of the updates.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/onionprice/internal/domain/models"
	"github.com/mamadbah2/onionprice/internal/repository/kv"
)

// Repository defines the operations supported by the history store.
type Repository interface {
	Append(ctx context.Context, result models.CalculationResult) error
	ListAllSortedByRecency(ctx context.Context) ([]models.CalculationResult, error)
	DeleteAt(ctx context.Context, displayIndex int) (bool, error)
	ClearAll(ctx context.Context) error
	Backup(ctx context.Context, destKey string) error
}

// KVRepository implements Repository on top of a kv.Store.
type KVRepository struct {
	store  kv.Store
	key    string
	logger *zap.Logger
}

// NewKVRepository builds a history repository stored under key.
func NewKVRepository(store kv.Store, key string, logger *zap.Logger) *KVRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KVRepository{store: store, key: key, logger: logger}
}

// Append adds one result to the end of the raw collection.
func (r *KVRepository) Append(ctx context.Context, result models.CalculationResult) error {
	items, err := r.load(ctx)
	if err != nil {
		return err
	}

	items = append(items, result)
	if err := r.save(ctx, items); err != nil {
		return err
	}

	r.logger.Debug("history entry appended", zap.String("name", result.Name), zap.Int("size", len(items)))
	return nil
}

// ListAllSortedByRecency returns every saved result, newest first. Results sharing a
// timestamp keep their insertion order.
func (r *KVRepository) ListAllSortedByRecency(ctx context.Context) ([]models.CalculationResult, error) {
	items, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	order := recencyOrder(items)
	sorted := make([]models.CalculationResult, len(order))
	for i, raw := range order {
		sorted[i] = items[raw]
	}
	return sorted, nil
}

// DeleteAt removes the result shown at displayIndex in the newest-first view. The view is
// recomputed here, so the index always refers to the current content of the store.
func (r *KVRepository) DeleteAt(ctx context.Context, displayIndex int) (bool, error) {
	items, err := r.load(ctx)
	if err != nil {
		return false, err
	}

	if displayIndex < 0 || displayIndex >= len(items) {
		return false, nil
	}

	raw := recencyOrder(items)[displayIndex]
	remaining := make([]models.CalculationResult, 0, len(items)-1)
	remaining = append(remaining, items[:raw]...)
	remaining = append(remaining, items[raw+1:]...)

	if err := r.save(ctx, remaining); err != nil {
		return false, err
	}

	r.logger.Debug("history entry deleted",
		zap.Int("display_index", displayIndex),
		zap.Int("raw_index", raw),
		zap.String("name", items[raw].Name))
	return true, nil
}

// ClearAll replaces the collection with an empty one.
func (r *KVRepository) ClearAll(ctx context.Context) error {
	if err := r.save(ctx, nil); err != nil {
		return err
	}
	r.logger.Info("history cleared")
	return nil
}

// Backup copies the persisted value byte for byte under destKey. Nothing is written when
// no history has been persisted yet.
func (r *KVRepository) Backup(ctx context.Context, destKey string) error {
	if destKey == "" || destKey == r.key {
		return fmt.Errorf("invalid backup key %q", destKey)
	}

	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load history: %w", err)
	}

	if err := r.store.Put(ctx, destKey, data); err != nil {
		return fmt.Errorf("write backup %s: %w", destKey, err)
	}
	return nil
}

// load reads the raw collection. A missing or unparsable value is an empty collection.
func (r *KVRepository) load(ctx context.Context) ([]models.CalculationResult, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load history: %w", err)
	}

	var items []models.CalculationResult
	if err := json.Unmarshal(data, &items); err != nil {
		r.logger.Warn("stored history is unreadable, treating it as empty", zap.String("key", r.key), zap.Error(err))
		return nil, nil
	}
	return items, nil
}

// save overwrites the whole collection in a single store call.
func (r *KVRepository) save(ctx context.Context, items []models.CalculationResult) error {
	if items == nil {
		items = []models.CalculationResult{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	if err := r.store.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}

// recencyOrder returns raw indices ordered by timestamp, newest first.
func recencyOrder(items []models.CalculationResult) []int {
	order := make([]int, len(items))
	createdAt := make([]time.Time, len(items))
	for i, item := range items {
		order[i] = i
		createdAt[i] = item.CreatedAt()
	}

	sort.SliceStable(order, func(a, b int) bool {
		return createdAt[order[a]].After(createdAt[order[b]])
	})
	return order
}
