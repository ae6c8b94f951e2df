package repositories

import (
	"context"
	"time"

	"teslo/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	// MarkPaid flips an unpaid order to paid. It returns ErrNotUpdated when the order is
	// missing or already paid.
	MarkPaid(ctx context.Context, id, transactionID string, paidAt time.Time) error
	Count(ctx context.Context) (int64, error)
	CountPaid(ctx context.Context) (int64, error)
}
