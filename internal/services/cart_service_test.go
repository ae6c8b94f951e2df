package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"teslo/internal/cart"
	"teslo/internal/models"
	"teslo/internal/repositories"
	"teslo/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartService() (*services.CartService, *MockProductRepository, *repositories.MockCartRepository) {
	products := new(MockProductRepository)
	products.On("GetByID", mock.Anything, "A").Return(&catalogue()[0], nil)
	products.On("GetByID", mock.Anything, "B").Return(&catalogue()[1], nil)
	products.On("GetByID", mock.Anything, mock.Anything).Return(nil, notFound("product"))
	repo := repositories.NewMockCartRepository()
	return services.NewCartService(repo, products), products, repo
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()
	service, _, repo := newCartService()

	state, err := service.AddItem(ctx, "user-1", services.CartItemRequest{ProductID: "A", Size: "M", Quantity: 2})
	require.NoError(t, err)
	require.Len(t, state.Cart, 1)
	assert.Equal(t, "Tesla Tee", state.Cart[0].Title)
	assert.Equal(t, "a1.jpg", state.Cart[0].Image)
	assert.Equal(t, "20.00", state.SubTotal.StringFixed(2))

	state, err = service.AddItem(ctx, "user-1", services.CartItemRequest{ProductID: "A", Size: "M", Quantity: 9})
	require.NoError(t, err)
	require.Len(t, state.Cart, 1)
	assert.Equal(t, cart.MaxQuantity, state.Cart[0].Quantity)

	state, err = service.AddItem(ctx, "user-1", services.CartItemRequest{ProductID: "B", Size: "L", Quantity: 1})
	require.NoError(t, err)
	assert.Len(t, state.Cart, 2)
	assert.Equal(t, 11, state.NumberOfItems)

	snap, err := repo.Load(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Len(t, snap.Lines, 2, "every change is persisted")
}

func TestCartService_AddItem_Rejections(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newCartService()

	_, err := service.AddItem(ctx, "user-1", services.CartItemRequest{ProductID: "missing", Size: "M", Quantity: 1})
	assert.ErrorIs(t, err, services.ErrProductNotFound)

	_, err = service.AddItem(ctx, "user-1", services.CartItemRequest{ProductID: "A", Size: "XXL", Quantity: 1})
	assert.ErrorIs(t, err, services.ErrInvalidSize)

	_, err = service.AddItem(ctx, "", services.CartItemRequest{ProductID: "A", Size: "M", Quantity: 1})
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
}

func TestCartService_ChangeQuantityAndRemove(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newCartService()

	_, err := service.AddItem(ctx, "user-1", services.CartItemRequest{ProductID: "A", Size: "M", Quantity: 1})
	require.NoError(t, err)

	state, err := service.ChangeQuantity(ctx, "user-1", services.CartItemRequest{ProductID: "A", Size: "M", Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, state.Cart[0].Quantity)
	assert.Equal(t, "48.40", state.Total.StringFixed(2))

	_, err = service.ChangeQuantity(ctx, "user-1", services.CartItemRequest{ProductID: "A", Size: "S", Quantity: 4})
	assert.ErrorIs(t, err, services.ErrCartLineNotFound)

	state, err = service.RemoveItem(ctx, "user-1", "A", "S")
	require.NoError(t, err)
	assert.Len(t, state.Cart, 1, "removing a missing line changes nothing")

	state, err = service.RemoveItem(ctx, "user-1", "A", "M")
	require.NoError(t, err)
	assert.Empty(t, state.Cart)
	assert.True(t, state.Total.IsZero())
}

func TestCartService_ShippingAddressSurvivesCheckout(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newCartService()

	address := models.ShippingAddress{FirstName: "Ada", LastName: "Lovelace", Address: "1 Rue", City: "Paris", Zip: "75001", Country: "FR", Phone: "0102030405"}
	_, err := service.UpdateShippingAddress(ctx, "user-1", address)
	require.NoError(t, err)
	_, err = service.AddItem(ctx, "user-1", services.CartItemRequest{ProductID: "A", Size: "M", Quantity: 1})
	require.NoError(t, err)

	state, err := service.Complete(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, state.Cart)

	state, err = service.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, state.IsLoaded)
	require.NotNil(t, state.ShippingAddress)
	assert.Equal(t, address, *state.ShippingAddress)
}

func TestCartService_CartsAreIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newCartService()

	_, err := service.AddItem(ctx, "user-1", services.CartItemRequest{ProductID: "A", Size: "M", Quantity: 1})
	require.NoError(t, err)

	state, err := service.GetCart(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, state.Cart)
}

func TestCartService_ConcurrentAddsAreSerialized(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newCartService()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = service.AddItem(ctx, "user-1", services.CartItemRequest{ProductID: "A", Size: "M", Quantity: 1})
		}()
	}
	wg.Wait()

	state, err := service.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, state.Cart, 1)
	assert.Equal(t, 8, state.Cart[0].Quantity)
	assert.Zero(t, service.LockedUsers(), "locks are released once idle")
}

func TestCartService_LocksAreReleased(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newCartService()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = service.GetCart(ctx, fmt.Sprintf("user-%d", i%5))
		}(i)
	}
	wg.Wait()

	assert.Zero(t, service.LockedUsers())
}

type failingCartRepository struct{ *repositories.MockCartRepository }

func (failingCartRepository) Save(context.Context, string, cart.Snapshot) error {
	return errors.New("redis down")
}

func TestCartService_SaveFailure(t *testing.T) {
	products := new(MockProductRepository)
	products.On("GetByID", mock.Anything, "A").Return(&catalogue()[0], nil)
	service := services.NewCartService(failingCartRepository{repositories.NewMockCartRepository()}, products)

	_, err := service.AddItem(context.Background(), "user-1", services.CartItemRequest{ProductID: "A", Size: "M", Quantity: 1})
	assert.ErrorContains(t, err, "redis down")
}

func TestCartService_CompleteDropsEmptyCart(t *testing.T) {
	ctx := context.Background()
	service, _, repo := newCartService()

	_, err := service.AddItem(ctx, "user-1", services.CartItemRequest{ProductID: "A", Size: "M", Quantity: 1})
	require.NoError(t, err)

	state, err := service.Complete(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, state.Cart)

	snap, err := repo.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, snap, "nothing is left in storage")

	state, err = service.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, state.IsLoaded)
	assert.Empty(t, state.Cart)
}
