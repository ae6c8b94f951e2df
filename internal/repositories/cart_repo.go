package repositories

import (
	"context"

	"teslo/internal/cart"
)

// CartRepository stores one cart snapshot per user. It satisfies cart.Persister.
type CartRepository interface {
	cart.Persister
	Delete(ctx context.Context, userID string) error
}
