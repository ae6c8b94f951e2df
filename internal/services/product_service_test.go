package services_test

import (
	"context"
	"fmt"
	"testing"

	"teslo/internal/models"
	"teslo/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProduct() *models.Product {
	return &models.Product{
		Title:  "Men's Chill Crew Neck Sweatshirt",
		Slug:   "Mens Chill Crew Neck Sweatshirt",
		Images: []string{"1.jpg", "2.jpg"},
		Price:  decimal.NewFromInt(75),
		Sizes:  []string{"XS", "S"},
		Type:   "shirts",
		Gender: "men",
	}
}

func TestProductService_GetAllProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expected := []models.Product{{ID: "1", Title: "Product A"}, {ID: "2", Title: "Product B"}}
	mockRepo.On("GetAll", ctx).Return(expected, nil).Twice()
	mockRepo.On("GetByGender", ctx, "kid").Return(expected[:1], nil).Once()

	products, err := service.GetAllProducts(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, expected, products)

	products, err = service.GetAllProducts(ctx, "kid")
	require.NoError(t, err)
	assert.Len(t, products, 1)

	// unknown genders fall back to the full catalogue
	_, err = service.GetAllProducts(ctx, "aliens")
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductBySlug(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetBySlug", ctx, "tesla_tee").Return(&models.Product{ID: "1"}, nil).Once()
	product, err := service.GetProductBySlug(ctx, "tesla_tee")
	require.NoError(t, err)
	assert.Equal(t, "1", product.ID)

	mockRepo.On("GetBySlug", ctx, "missing").Return(nil, notFound("product")).Once()
	_, err = service.GetProductBySlug(ctx, "missing")
	assert.ErrorIs(t, err, services.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_SearchProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("Search", ctx, "crew neck").Return([]models.Product{{ID: "1"}}, nil).Once()
	products, err := service.SearchProducts(ctx, "  Crew NECK ")
	require.NoError(t, err)
	assert.Len(t, products, 1)

	_, err = service.SearchProducts(ctx, "   ")
	assert.ErrorIs(t, err, services.ErrEmptyQuery)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	product := newProduct()
	mockRepo.On("GetBySlug", ctx, "mens_chill_crew_neck_sweatshirt").Return(nil, notFound("product")).Once()
	mockRepo.On("Create", ctx, product).Return(nil).Once()

	require.NoError(t, service.CreateProduct(ctx, product))
	assert.Equal(t, "mens_chill_crew_neck_sweatshirt", product.Slug)

	// duplicate slug
	mockRepo.On("GetBySlug", ctx, "mens_chill_crew_neck_sweatshirt").Return(&models.Product{ID: "other"}, nil).Once()
	err := service.CreateProduct(ctx, newProduct())
	assert.ErrorIs(t, err, services.ErrSlugTaken)

	// repository failure
	failing := newProduct()
	mockRepo.On("GetBySlug", ctx, "mens_chill_crew_neck_sweatshirt").Return(nil, notFound("product")).Once()
	mockRepo.On("Create", ctx, failing).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(ctx, failing)
	assert.ErrorContains(t, err, "database error")
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_Invalid(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	oneImage := newProduct()
	oneImage.Images = oneImage.Images[:1]
	assert.ErrorIs(t, service.CreateProduct(ctx, oneImage), services.ErrInvalidProduct)

	free := newProduct()
	free.Price = decimal.Zero
	assert.ErrorIs(t, service.CreateProduct(ctx, free), services.ErrInvalidProduct)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	product := newProduct()
	product.ID = "1"
	mockRepo.On("GetByID", ctx, "1").Return(&models.Product{ID: "1"}, nil).Once()
	mockRepo.On("GetBySlug", ctx, "mens_chill_crew_neck_sweatshirt").Return(&models.Product{ID: "1"}, nil).Once()
	mockRepo.On("Update", ctx, product).Return(nil).Once()
	require.NoError(t, service.UpdateProduct(ctx, product))

	// slug owned by another product
	taken := newProduct()
	taken.ID = "1"
	mockRepo.On("GetByID", ctx, "1").Return(&models.Product{ID: "1"}, nil).Once()
	mockRepo.On("GetBySlug", ctx, "mens_chill_crew_neck_sweatshirt").Return(&models.Product{ID: "2"}, nil).Once()
	assert.ErrorIs(t, service.UpdateProduct(ctx, taken), services.ErrSlugTaken)

	// unknown product
	missing := newProduct()
	missing.ID = "99"
	mockRepo.On("GetByID", ctx, "99").Return(nil, notFound("product")).Once()
	assert.ErrorIs(t, service.UpdateProduct(ctx, missing), services.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("Delete", ctx, "1").Return(nil).Once()
	assert.NoError(t, service.DeleteProduct(ctx, "1"))

	mockRepo.On("Delete", ctx, "99").Return(notFound("product")).Once()
	assert.ErrorIs(t, service.DeleteProduct(ctx, "99"), services.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "mens_chill_crew_neck", services.NormalizeSlug(" Men's Chill Crew Neck "))
	assert.Equal(t, "already_fine", services.NormalizeSlug("already_fine"))
}
