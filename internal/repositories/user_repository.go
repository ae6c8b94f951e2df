package repositories

import (
	"context"

	"teslo/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id, role string) error
	CountByRole(ctx context.Context, role string) (int64, error)
}
