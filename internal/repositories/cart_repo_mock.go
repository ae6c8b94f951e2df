package repositories

import (
	"context"
	"sync"

	"teslo/internal/cart"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[string]cart.Snapshot
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]cart.Snapshot),
	}
}

// Load returns a copy of the snapshot stored for userID, or nil.
func (r *MockCartRepository) Load(_ context.Context, userID string) (*cart.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap, ok := r.carts[userID]
	if !ok {
		return nil, nil
	}
	out := cart.State{Cart: snap.Lines, ShippingAddress: snap.ShippingAddress}.Snapshot()
	return &out, nil
}

// Save stores a copy of snap for userID.
func (r *MockCartRepository) Save(_ context.Context, userID string, snap cart.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[userID] = cart.State{Cart: snap.Lines, ShippingAddress: snap.ShippingAddress}.Snapshot()
	return nil
}

// Delete removes the snapshot of userID.
func (r *MockCartRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, userID)
	return nil
}
