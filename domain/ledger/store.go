package ledger

import "context"

// Store defines the interface for ledger persistence. Implementations
// may be in-memory, BadgerDB, or any other backend.
type Store interface {
	// Append persists one or more entries atomically, in order.
	Append(ctx context.Context, entries ...Entry) error

	// Load retrieves all entries for a run in append order.
	Load(ctx context.Context, runID string) ([]Entry, error)

	// Runs lists the run IDs known to the store.
	Runs(ctx context.Context) ([]string, error)
}
