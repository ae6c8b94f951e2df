package services

import (
	"context"
	"errors"
	"fmt"

	"teslo/internal/models"
	"teslo/internal/repositories"

	"golang.org/x/sync/errgroup"
)

// LowInventoryThreshold is the stock under which a product counts as low on inventory.
const LowInventoryThreshold = 10

// Dashboard is the back-office summary.
type Dashboard struct {
	NumberOfOrders          int64 `json:"numberOfOrders"`
	PaidOrders              int64 `json:"paidOrders"`
	NotPaidOrders           int64 `json:"notPaidOrders"`
	NumberOfClients         int64 `json:"numberOfClients"`
	NumberOfProducts        int64 `json:"numberOfProducts"`
	ProductsWithNoInventory int64 `json:"productsWithNoInventory"`
	LowInventory            int64 `json:"lowInventory"`
}

// AdminService serves the back-office.
type AdminService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
}

func NewAdminService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, userRepo repositories.UserRepository) *AdminService {
	return &AdminService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// GetDashboard runs the dashboard counts concurrently.
func (s *AdminService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.NumberOfOrders, err = s.orderRepo.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.PaidOrders, err = s.orderRepo.CountPaid(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.NumberOfClients, err = s.userRepo.CountByRole(ctx, models.RoleClient)
		return err
	})
	g.Go(func() (err error) {
		d.NumberOfProducts, err = s.productRepo.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.ProductsWithNoInventory, err = s.productRepo.CountInStockBelow(ctx, 1)
		return err
	})
	g.Go(func() (err error) {
		d.LowInventory, err = s.productRepo.CountInStockBelow(ctx, LowInventoryThreshold)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}
	d.NotPaidOrders = d.NumberOfOrders - d.PaidOrders
	return &d, nil
}

// GetUsers lists every user.
func (s *AdminService) GetUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// UpdateUserRole changes the role of userID.
func (s *AdminService) UpdateUserRole(ctx context.Context, userID, role string) error {
	if !validRole(role) {
		return fmt.Errorf("role '%s': %w", role, ErrInvalidRole)
	}
	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
		}
		return err
	}
	return nil
}

func validRole(role string) bool {
	return role == models.RoleClient || models.IsAdmin(role)
}
