// Package memory provides in-memory implementations of storage
// interfaces, suitable for tests and short-lived runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/felixgeelhaar/layerkit/domain/ledger"
)

// LedgerStore is an in-memory implementation of ledger.Store.
type LedgerStore struct {
	mu      sync.RWMutex
	entries map[string][]ledger.Entry
}

// NewLedgerStore creates a new in-memory ledger store.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		entries: make(map[string][]ledger.Entry),
	}
}

// Append persists one or more entries in order.
func (s *LedgerStore) Append(ctx context.Context, entries ...ledger.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		s.entries[e.RunID] = append(s.entries[e.RunID], e)
	}
	return nil
}

// Load retrieves all entries for a run in append order.
func (s *LedgerStore) Load(ctx context.Context, runID string) ([]ledger.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.entries[runID]
	entries := make([]ledger.Entry, len(stored))
	copy(entries, stored)
	return entries, nil
}

// Runs lists the run IDs known to the store.
func (s *LedgerStore) Runs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]string, 0, len(s.entries))
	for runID := range s.entries {
		runs = append(runs, runID)
	}
	sort.Strings(runs)
	return runs, nil
}

var _ ledger.Store = (*LedgerStore)(nil)
