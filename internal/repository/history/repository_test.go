package history

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mamadbah2/onionprice/internal/domain/models"
	"github.com/mamadbah2/onionprice/internal/repository/kv"
)

const testKey = "onionPriceHistory"

var errMediumFull = errors.New("medium full")

// failingStore wraps a kv.Store and fails writes on demand.
type failingStore struct {
	kv.Store
	failPuts bool
	failGets bool
}

func (s *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.failGets {
		return nil, errMediumFull
	}
	return s.Store.Get(ctx, key)
}

func (s *failingStore) Put(ctx context.Context, key string, value []byte) error {
	if s.failPuts {
		return errMediumFull
	}
	return s.Store.Put(ctx, key, value)
}

func record(name, timestamp string) models.CalculationResult {
	return models.CalculationResult{
		Name:           name,
		SwatLength:     10,
		CeblokPerMeter: 2,
		SwatWidth:      1,
		TotalSwat:      3,
		MarketPrice:    12000,
		Kilo:           1500,
		Quintal:        15,
		Tindak:         5,
		MarketValue:    18000000,
		BuyA:           4500000,
		BuyB:           7500000,
		DifferenceA:    13500000,
		DifferenceB:    10500000,
		Timestamp:      timestamp,
	}
}

func names(items []models.CalculationResult) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func newTestRepository(t *testing.T, seed ...models.CalculationResult) (*KVRepository, kv.Store) {
	t.Helper()
	store := kv.NewMemoryStore()
	repo := NewKVRepository(store, testKey, nil)
	for _, item := range seed {
		if err := repo.Append(context.Background(), item); err != nil {
			t.Fatalf("seed append: %v", err)
		}
	}
	return repo, store
}

func TestAppendRoundTrip(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	want := record("Pak Budi", "2024-03-01T10:15:30.250Z")
	want.SwatLength = 12.345678901234
	if err := repo.Append(ctx, want); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := repo.ListAllSortedByRecency(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if diff := cmp.Diff([]models.CalculationResult{want}, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendKeepsDuplicates(t *testing.T) {
	dup := record("A", "2024-03-01T10:00:00.000Z")
	repo, _ := newTestRepository(t, dup, dup)

	got, err := repo.ListAllSortedByRecency(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both duplicates, got %d entries", len(got))
	}
}

func TestListAllSortedByRecency(t *testing.T) {
	testCases := []struct {
		id       string
		seed     []models.CalculationResult
		expected []string
	}{
		{
			id:       "empty store",
			expected: []string{},
		},
		{
			id: "newest first",
			seed: []models.CalculationResult{
				record("t1", "2024-03-01T08:00:00.000Z"),
				record("t2", "2024-03-02T08:00:00.000Z"),
				record("t3", "2024-03-03T08:00:00.000Z"),
			},
			expected: []string{"t3", "t2", "t1"},
		},
		{
			id: "equal timestamps keep insertion order",
			seed: []models.CalculationResult{
				record("first", "2024-03-01T08:00:00.000Z"),
				record("newest", "2024-03-05T08:00:00.000Z"),
				record("second", "2024-03-01T08:00:00.000Z"),
				record("third", "2024-03-01T08:00:00.000Z"),
			},
			expected: []string{"newest", "first", "second", "third"},
		},
		{
			id: "timestamps in other offsets compare as instants",
			seed: []models.CalculationResult{
				record("jakarta", "2024-03-01T14:00:00.000+07:00"),
				record("utc", "2024-03-01T08:00:00.000Z"),
			},
			expected: []string{"utc", "jakarta"},
		},
		{
			id: "unparsable timestamps sort last",
			seed: []models.CalculationResult{
				record("broken", "kemarin"),
				record("valid", "2024-03-01T08:00:00.000Z"),
			},
			expected: []string{"valid", "broken"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			repo, _ := newTestRepository(t, tc.seed...)
			got, err := repo.ListAllSortedByRecency(context.Background())
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if diff := cmp.Diff(tc.expected, names(got)); diff != "" {
				t.Fatalf("unexpected order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadTreatsAbsentOrCorruptAsEmpty(t *testing.T) {
	for _, blob := range []string{"", "{not json", `{"name":"x"}`, "null", `"onion"`} {
		store := kv.NewMemoryStore()
		if blob != "" {
			if err := store.Put(context.Background(), testKey, []byte(blob)); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}

		repo := NewKVRepository(store, testKey, nil)
		got, err := repo.ListAllSortedByRecency(context.Background())
		if err != nil {
			t.Fatalf("blob %q: unexpected error %v", blob, err)
		}
		if len(got) != 0 {
			t.Fatalf("blob %q: expected empty history, got %d entries", blob, len(got))
		}
	}
}

func TestDeleteAt(t *testing.T) {
	// Raw insertion order deliberately differs from the newest-first view.
	seed := []models.CalculationResult{
		record("middle", "2024-03-02T08:00:00.000Z"),
		record("oldest", "2024-03-01T08:00:00.000Z"),
		record("newest", "2024-03-03T08:00:00.000Z"),
	}

	testCases := []struct {
		id          string
		index       int
		wantDeleted bool
		expected    []string
	}{
		{id: "front of sorted view", index: 0, wantDeleted: true, expected: []string{"middle", "oldest"}},
		{id: "middle of sorted view", index: 1, wantDeleted: true, expected: []string{"newest", "oldest"}},
		{id: "end of sorted view", index: 2, wantDeleted: true, expected: []string{"newest", "middle"}},
		{id: "negative index", index: -1, expected: []string{"newest", "middle", "oldest"}},
		{id: "index equal to length", index: 3, expected: []string{"newest", "middle", "oldest"}},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			repo, _ := newTestRepository(t, seed...)
			ctx := context.Background()

			deleted, err := repo.DeleteAt(ctx, tc.index)
			if err != nil {
				t.Fatalf("delete: %v", err)
			}
			if deleted != tc.wantDeleted {
				t.Fatalf("deleted = %v, want %v", deleted, tc.wantDeleted)
			}

			got, err := repo.ListAllSortedByRecency(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if diff := cmp.Diff(tc.expected, names(got)); diff != "" {
				t.Fatalf("unexpected remaining entries (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeleteAtOnEmptyStoreDoesNotWrite(t *testing.T) {
	repo, store := newTestRepository(t)

	deleted, err := repo.DeleteAt(context.Background(), 0)
	if err != nil || deleted {
		t.Fatalf("expected no-op, got deleted=%v err=%v", deleted, err)
	}
	if _, err := store.Get(context.Background(), testKey); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected nothing persisted, got %v", err)
	}
}

func TestClearAll(t *testing.T) {
	repo, store := newTestRepository(t,
		record("a", "2024-03-01T08:00:00.000Z"),
		record("b", "2024-03-02T08:00:00.000Z"),
	)
	ctx := context.Background()

	if err := repo.ClearAll(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	got, err := repo.ListAllSortedByRecency(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty history, got %v", names(got))
	}

	raw, err := store.Get(ctx, testKey)
	if err != nil {
		t.Fatalf("raw get: %v", err)
	}
	if string(raw) != "[]" {
		t.Fatalf("expected empty JSON array, got %s", raw)
	}
}

func TestWriteFailuresLeaveHistoryUnchanged(t *testing.T) {
	ctx := context.Background()
	seed := []models.CalculationResult{
		record("a", "2024-03-01T08:00:00.000Z"),
		record("b", "2024-03-02T08:00:00.000Z"),
	}

	operations := []struct {
		id string
		do func(*testing.T, *KVRepository) error
	}{
		{id: "append", do: func(_ *testing.T, r *KVRepository) error {
			return r.Append(ctx, record("c", "2024-03-03T08:00:00.000Z"))
		}},
		{id: "delete", do: func(t *testing.T, r *KVRepository) error {
			deleted, err := r.DeleteAt(ctx, 0)
			if deleted {
				t.Error("delete reported success despite write failure")
			}
			return err
		}},
		{id: "clear", do: func(_ *testing.T, r *KVRepository) error { return r.ClearAll(ctx) }},
	}

	for _, op := range operations {
		t.Run(op.id, func(t *testing.T) {
			store := &failingStore{Store: kv.NewMemoryStore()}
			repo := NewKVRepository(store, testKey, nil)
			for _, item := range seed {
				if err := repo.Append(ctx, item); err != nil {
					t.Fatalf("seed: %v", err)
				}
			}

			store.failPuts = true
			if err := op.do(t, repo); !errors.Is(err, errMediumFull) {
				t.Fatalf("expected wrapped medium error, got %v", err)
			}
			store.failPuts = false

			got, err := repo.ListAllSortedByRecency(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if diff := cmp.Diff([]string{"b", "a"}, names(got)); diff != "" {
				t.Fatalf("history changed after failed write (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadFailureIsReported(t *testing.T) {
	store := &failingStore{Store: kv.NewMemoryStore(), failGets: true}
	repo := NewKVRepository(store, testKey, nil)

	if _, err := repo.ListAllSortedByRecency(context.Background()); !errors.Is(err, errMediumFull) {
		t.Fatalf("expected medium error, got %v", err)
	}
}

func TestBackup(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepository(t)

	if err := repo.Backup(ctx, testKey+".backup"); err != nil {
		t.Fatalf("backup of empty history: %v", err)
	}
	if _, err := store.Get(ctx, testKey+".backup"); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected no backup for empty history, got %v", err)
	}

	if err := repo.Append(ctx, record("a", "2024-03-01T08:00:00.000Z")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Backup(ctx, testKey+".backup"); err != nil {
		t.Fatalf("backup: %v", err)
	}

	original, _ := store.Get(ctx, testKey)
	backup, err := store.Get(ctx, testKey+".backup")
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(original) != string(backup) {
		t.Fatalf("backup differs from original:\n%s\n%s", original, backup)
	}

	if err := repo.Backup(ctx, testKey); err == nil {
		t.Fatal("expected error when backing up onto the history key")
	}
}
