package services

import (
	"context"
	"fmt"
	"sync"

	"teslo/internal/cart"
	"teslo/internal/metrics"
	"teslo/internal/models"
	"teslo/internal/repositories"
)

// CartItemRequest identifies a cart line and the wanted quantity.
type CartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size" validate:"required,oneof=XS S M L XL XXL XXXL"`
	Quantity  int    `json:"quantity" validate:"min=1,max=10"`
}

// CartService keeps one cart per user. Each operation hydrates a cart.Store from the
// repository, dispatches one action and lets the store persist the result.
type CartService struct {
	repo        repositories.CartRepository
	productRepo repositories.ProductRepository

	locks keyedMutex
}

// keyedMutex hands out one mutex per key. An entry lives only while someone holds or waits for it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

// Lock locks key and returns the matching unlock.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*refMutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}

// NewCartService creates a new CartService.
func NewCartService(repo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		repo:        repo,
		productRepo: productRepo,
	}
}

// GetCart returns the current cart of userID.
func (s *CartService) GetCart(ctx context.Context, userID string) (cart.State, error) {
	return s.withStore(ctx, userID, func(store *cart.Store) (cart.State, error) {
		return store.State(), nil
	})
}

// AddItem merges the product into the cart using the catalogue's title, image and price.
func (s *CartService) AddItem(ctx context.Context, userID string, req CartItemRequest) (cart.State, error) {
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return cart.State{}, mapProductError(err)
	}
	if !product.HasSize(req.Size) {
		return cart.State{}, fmt.Errorf("size %s of product %s: %w", req.Size, product.ID, ErrInvalidSize)
	}

	line := cart.Line{
		ID:       product.ID,
		Slug:     product.Slug,
		Title:    product.Title,
		Price:    product.Price,
		Size:     req.Size,
		Quantity: req.Quantity,
	}
	if len(product.Images) > 0 {
		line.Image = product.Images[0]
	}

	return s.withStore(ctx, userID, func(store *cart.Store) (cart.State, error) {
		lines := cart.MergeLine(store.State().Cart, line)
		return dispatch(ctx, store, "update_cart", cart.UpdateCart{Lines: lines})
	})
}

// ChangeQuantity sets the quantity of an existing line.
func (s *CartService) ChangeQuantity(ctx context.Context, userID string, req CartItemRequest) (cart.State, error) {
	return s.withStore(ctx, userID, func(store *cart.Store) (cart.State, error) {
		for _, line := range store.State().Cart {
			if line.ID == req.ProductID && line.Size == req.Size {
				line.Quantity = req.Quantity
				return dispatch(ctx, store, "change_quantity", cart.ChangeQuantity{Line: line})
			}
		}
		return store.State(), fmt.Errorf("product %s size %s: %w", req.ProductID, req.Size, ErrCartLineNotFound)
	})
}

// RemoveItem drops the line identified by productID and size. Removing a missing line is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID, size string) (cart.State, error) {
	return s.withStore(ctx, userID, func(store *cart.Store) (cart.State, error) {
		return dispatch(ctx, store, "remove_line", cart.RemoveLine{ID: productID, Size: size})
	})
}

// UpdateShippingAddress replaces the address used at checkout.
func (s *CartService) UpdateShippingAddress(ctx context.Context, userID string, address models.ShippingAddress) (cart.State, error) {
	return s.withStore(ctx, userID, func(store *cart.Store) (cart.State, error) {
		return dispatch(ctx, store, "update_shipping_address", cart.UpdateShippingAddress{Address: address})
	})
}

// Complete empties the cart once an order has been placed. The shipping address is kept;
// a cart left with nothing to remember is dropped from storage.
func (s *CartService) Complete(ctx context.Context, userID string) (cart.State, error) {
	return s.withStore(ctx, userID, func(store *cart.Store) (cart.State, error) {
		state, err := dispatch(ctx, store, "order_complete", cart.OrderComplete{})
		if err != nil || state.ShippingAddress != nil {
			return state, err
		}
		if err := s.repo.Delete(ctx, userID); err != nil {
			return state, fmt.Errorf("failed to drop empty cart: %w", err)
		}
		return state, nil
	})
}

func (s *CartService) withStore(ctx context.Context, userID string, fn func(*cart.Store) (cart.State, error)) (cart.State, error) {
	if userID == "" {
		return cart.State{}, ErrUnauthenticated
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	store := cart.NewStore(userID, s.repo)
	if _, err := store.Hydrate(ctx); err != nil {
		return cart.State{}, err
	}
	return fn(store)
}

func dispatch(ctx context.Context, store *cart.Store, name string, action cart.Action) (cart.State, error) {
	state, err := store.Dispatch(ctx, action)
	if err != nil {
		return state, err
	}
	metrics.CartActions.WithLabelValues(name).Inc()
	return state, nil
}

