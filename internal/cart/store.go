package cart

import (
	"context"
	"fmt"
	"sync"
)

// Persister loads and saves cart snapshots by key. Load returns nil, nil when nothing is stored.
type Persister interface {
	Load(ctx context.Context, key string) (*Snapshot, error)
	Save(ctx context.Context, key string, snap Snapshot) error
}

// Store owns the cart state of one shopper. It is hydrated once from storage and persists
// the snapshot after every dispatched transition.
type Store struct {
	mu        sync.Mutex
	key       string
	persister Persister
	state     State
}

// NewStore creates a store for key backed by persister.
func NewStore(key string, persister Persister) *Store {
	return &Store{
		key:       key,
		persister: persister,
		state:     NewState(),
	}
}

// Hydrate loads the persisted snapshot into the store. It does not write anything back.
func (s *Store) Hydrate(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.persister.Load(ctx, s.key)
	if err != nil {
		return s.state, fmt.Errorf("failed to load cart %s: %w", s.key, err)
	}
	if snap == nil {
		snap = &Snapshot{}
	}

	state := Reduce(s.state, LoadCart{Lines: snap.Lines})
	if snap.ShippingAddress != nil {
		state = Reduce(state, LoadShippingAddress{Address: *snap.ShippingAddress})
	}
	s.state = state
	return s.state, nil
}

// Dispatch applies action and persists the resulting snapshot.
// The in-memory state advances even when saving fails; the error is returned to the caller.
func (s *Store) Dispatch(ctx context.Context, action Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, action)
	if err := s.persister.Save(ctx, s.key, s.state.Snapshot()); err != nil {
		return s.state, fmt.Errorf("failed to save cart %s: %w", s.key, err)
	}
	return s.state, nil
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Reduce(s.state, nil)
}
