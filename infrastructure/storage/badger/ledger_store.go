package badger

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/felixgeelhaar/layerkit/domain/ledger"
)

// LedgerStore is a BadgerDB-backed implementation of ledger.Store.
type LedgerStore struct {
	db        *badger.DB
	keyPrefix string
}

// NewLedgerStore creates a new BadgerDB ledger store with the given
// configuration.
func NewLedgerStore(cfg Config, opts ...Option) (*LedgerStore, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	return &LedgerStore{
		db:        db,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

// NewLedgerStoreFromDB creates a ledger store from an existing BadgerDB
// database.
func NewLedgerStoreFromDB(db *badger.DB, keyPrefix string) *LedgerStore {
	return &LedgerStore{
		db:        db,
		keyPrefix: keyPrefix,
	}
}

// Close closes the underlying database.
func (s *LedgerStore) Close() error {
	return s.db.Close()
}

// Key format: prefix + "entries:" + runID + ":" + sequence (8 bytes,
// big-endian) - lexicographic key order is append order.
func (s *LedgerStore) entryKey(runID string, seq uint64) []byte {
	seqBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(seqBytes, seq)
	return append([]byte(s.keyPrefix+"entries:"+runID+":"), seqBytes...)
}

// Key format: prefix + "seq:" + runID for the per-run sequence counter.
func (s *LedgerStore) seqKey(runID string) []byte {
	return []byte(s.keyPrefix + "seq:" + runID)
}

// Append persists one or more entries atomically, in order.
func (s *LedgerStore) Append(ctx context.Context, entries ...ledger.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, e := range entries {
			seq, err := s.nextSeq(txn, e.RunID)
			if err != nil {
				return err
			}

			data, err := json.Marshal(e)
			if err != nil {
				return err
			}
			if err := txn.Set(s.entryKey(e.RunID, seq), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// nextSeq reads, increments, and writes back the sequence counter for a
// run within the transaction.
func (s *LedgerStore) nextSeq(txn *badger.Txn, runID string) (uint64, error) {
	var seq uint64

	key := s.seqKey(runID)
	item, err := txn.Get(key)
	switch {
	case err == nil:
		err = item.Value(func(val []byte) error {
			if len(val) == 8 {
				seq = binary.BigEndian.Uint64(val)
			}
			return nil
		})
		if err != nil {
			return 0, err
		}
	case errors.Is(err, badger.ErrKeyNotFound):
	default:
		return 0, err
	}

	next := make([]byte, 8)
	binary.BigEndian.PutUint64(next, seq+1)
	if err := txn.Set(key, next); err != nil {
		return 0, err
	}

	return seq, nil
}

// Load retrieves all entries for a run in append order.
func (s *LedgerStore) Load(ctx context.Context, runID string) ([]ledger.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []ledger.Entry

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(s.keyPrefix + "entries:" + runID + ":")

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var e ledger.Entry
				if err := json.Unmarshal(val, &e); err != nil {
					return err
				}
				entries = append(entries, e)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Runs lists the run IDs known to the store.
func (s *LedgerStore) Runs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var runs []string

	err := s.db.View(func(txn *badger.Txn) error {
		prefix := s.keyPrefix + "seq:"

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			runs = append(runs, strings.TrimPrefix(key, prefix))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return runs, nil
}

var _ ledger.Store = (*LedgerStore)(nil)
