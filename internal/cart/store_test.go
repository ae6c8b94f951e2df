package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teslo/internal/cart"
)

type memoryPersister struct {
	snaps   map[string]cart.Snapshot
	saves   int
	saveErr error
	loadErr error
}

func newMemoryPersister() *memoryPersister {
	return &memoryPersister{snaps: make(map[string]cart.Snapshot)}
}

func (p *memoryPersister) Load(_ context.Context, key string) (*cart.Snapshot, error) {
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	snap, ok := p.snaps[key]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (p *memoryPersister) Save(_ context.Context, key string, snap cart.Snapshot) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saves++
	p.snaps[key] = snap
	return nil
}

func TestStore_HydrateEmpty(t *testing.T) {
	p := newMemoryPersister()
	store := cart.NewStore("user-1", p)

	s, err := store.Hydrate(context.Background())

	require.NoError(t, err)
	assert.True(t, s.IsLoaded)
	assert.Empty(t, s.Cart)
	assert.Zero(t, p.saves)
}

func TestStore_HydrateFromSnapshot(t *testing.T) {
	p := newMemoryPersister()
	addr := randomAddress()
	p.snaps["user-1"] = cart.Snapshot{
		Lines: []cart.Line{
			{ID: "A", Size: "M", Price: decimal.NewFromInt(10), Quantity: 2},
			{ID: "B", Size: "S", Price: decimal.NewFromInt(5), Quantity: 1},
		},
		ShippingAddress: &addr,
	}
	store := cart.NewStore("user-1", p)

	s, err := store.Hydrate(context.Background())

	require.NoError(t, err)
	assert.Len(t, s.Cart, 2)
	assert.Equal(t, "30.25", s.Total.String())
	require.NotNil(t, s.ShippingAddress)
	assert.Equal(t, addr.City, s.ShippingAddress.City)
}

func TestStore_DispatchPersists(t *testing.T) {
	ctx := context.Background()
	p := newMemoryPersister()
	store := cart.NewStore("user-1", p)
	_, err := store.Hydrate(ctx)
	require.NoError(t, err)

	line := cart.Line{ID: "A", Size: "M", Price: decimal.NewFromInt(10), Quantity: 2}
	s, err := store.Dispatch(ctx, cart.UpdateCart{Lines: []cart.Line{line}})

	require.NoError(t, err)
	assert.Equal(t, 2, s.NumberOfItems)
	assert.Equal(t, 1, p.saves)
	assert.Len(t, p.snaps["user-1"].Lines, 1)

	_, err = store.Dispatch(ctx, cart.OrderComplete{})
	require.NoError(t, err)
	assert.Empty(t, p.snaps["user-1"].Lines)
	assert.Equal(t, 2, p.saves)
}

func TestStore_DispatchSaveError(t *testing.T) {
	p := newMemoryPersister()
	p.saveErr = errors.New("storage down")
	store := cart.NewStore("user-1", p)

	s, err := store.Dispatch(context.Background(), cart.UpdateCart{Lines: randomLines(1)})

	assert.ErrorIs(t, err, p.saveErr)
	assert.Len(t, s.Cart, 1)
	assert.Len(t, store.State().Cart, 1)
}

func TestStore_HydrateLoadError(t *testing.T) {
	p := newMemoryPersister()
	p.loadErr = errors.New("storage down")
	store := cart.NewStore("user-1", p)

	_, err := store.Hydrate(context.Background())

	assert.ErrorIs(t, err, p.loadErr)
	assert.False(t, store.State().IsLoaded)
}
