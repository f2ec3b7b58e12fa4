package store

import (
	"sync"

	"github.com/recati/comanda-app/models"
)

// Store is the single serialization point for the whole engine. Exactly one
// writer runs at a time; mutations work copy-on-write against a clone of the
// snapshot and the live pointer is swapped only after the gateway has
// persisted the new state. A persistence failure therefore rolls the
// mutation back: memory and durable state never diverge.
type Store struct {
	mu      sync.RWMutex
	snap    *models.Snapshot
	gateway Gateway
}

// Open loads the persisted snapshot through the gateway. When none exists,
// seed (may be nil) provides the initial state, which is persisted before
// the store is handed out.
func Open(gw Gateway, seed func() *models.Snapshot) (*Store, error) {
	snap, err := gw.Load()
	if err != nil {
		return nil, err
	}
	if snap == nil {
		if seed != nil {
			snap = seed()
		} else {
			snap = models.NewSnapshot()
		}
		snap.Recalc()
		if err := gw.Save(snap); err != nil {
			return nil, err
		}
	}
	return &Store{snap: snap, gateway: gw}, nil
}

// Mutate applies fn to a private clone of the snapshot. If fn fails, the
// clone is discarded and the store is byte-for-byte unchanged. On success
// the snapshot-wide invariants are recomputed, the new state is persisted,
// and only then does it become visible to readers.
func (s *Store) Mutate(fn func(*models.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	if err := fn(next); err != nil {
		return err
	}
	next.Recalc()
	if err := s.gateway.Save(next); err != nil {
		return err
	}
	s.snap = next
	return nil
}

// View runs fn against the current snapshot under a shared lock. fn must
// treat the snapshot as immutable and must not retain references to it.
func (s *Store) View(fn func(*models.Snapshot) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.snap)
}
