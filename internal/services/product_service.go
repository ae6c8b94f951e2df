package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"teslo/internal/models"
	"teslo/internal/repositories"
)

var validGenders = map[string]bool{"men": true, "women": true, "kid": true, "unisex": true}

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts lists the catalogue, restricted to gender when it names a known one.
func (s *ProductService) GetAllProducts(ctx context.Context, gender string) ([]models.Product, error) {
	if validGenders[gender] {
		return s.repo.GetByGender(ctx, gender)
	}
	return s.repo.GetAll(ctx)
}

// GetProductBySlug retrieves a single product by its slug.
func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, mapProductError(err)
	}
	return product, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapProductError(err)
	}
	return product, nil
}

// SearchProducts matches query against titles and tags, ignoring case.
func (s *ProductService) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return s.repo.Search(ctx, query)
}

// CreateProduct stores a new product. Slugs are normalized and must be unique.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := checkProduct(product); err != nil {
		return err
	}
	product.Slug = NormalizeSlug(product.Slug)

	if err := s.ensureSlugFree(ctx, product.Slug, ""); err != nil {
		return err
	}
	product.ID = ""
	return s.repo.Create(ctx, product)
}

// UpdateProduct replaces the editable fields of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := checkProduct(product); err != nil {
		return err
	}
	product.Slug = NormalizeSlug(product.Slug)

	if _, err := s.repo.GetByID(ctx, product.ID); err != nil {
		return mapProductError(err)
	}
	if err := s.ensureSlugFree(ctx, product.Slug, product.ID); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return mapProductError(err)
	}
	return nil
}

// DeleteProduct removes a product from the catalogue. Past orders keep their snapshot.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapProductError(err)
	}
	return nil
}

func (s *ProductService) ensureSlugFree(ctx context.Context, slug, ownerID string) error {
	existing, err := s.repo.GetBySlug(ctx, slug)
	switch {
	case err == nil:
		if existing.ID != ownerID {
			return fmt.Errorf("slug '%s': %w", slug, ErrSlugTaken)
		}
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("failed to check slug: %w", err)
	}
}

func checkProduct(product *models.Product) error {
	if !product.Price.IsPositive() {
		return fmt.Errorf("price must be positive: %w", ErrInvalidProduct)
	}
	if len(product.Images) < 2 {
		return fmt.Errorf("at least 2 images are required: %w", ErrInvalidProduct)
	}
	return nil
}

// NormalizeSlug lower-cases slug, replaces spaces with underscores and drops apostrophes.
func NormalizeSlug(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	slug = strings.ReplaceAll(slug, " ", "_")
	return strings.ReplaceAll(slug, "'", "")
}

func mapProductError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrProductNotFound, err)
	}
	return err
}
