package database

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"teslo/internal/models"
)

var seedProducts = []models.Product{
	{
		Title:       "Men's Chill Crew Neck Sweatshirt",
		Slug:        "mens_chill_crew_neck_sweatshirt",
		Description: "Introducing the Tesla Chill Collection. The Men's Chill Crew Neck Sweatshirt has a premium, heavyweight exterior and soft fleece interior for comfort in any season.",
		Images:      []string{"1740176-00-A_0_2000.jpg", "1740176-00-A_1.jpg"},
		InStock:     7,
		Price:       decimal.NewFromInt(75),
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Tags:        []string{"sweatshirt"},
		Type:        "shirts",
		Gender:      "men",
	},
	{
		Title:       "Men's Quilted Shirt Jacket",
		Slug:        "men_quilted_shirt_jacket",
		Description: "The Men's Quilted Shirt Jacket features a uniquely fit, quilted design for warmth and mobility in cold weather seasons.",
		Images:      []string{"1740507-00-A_0_2000.jpg", "1740507-00-A_1.jpg"},
		InStock:     5,
		Price:       decimal.NewFromInt(200),
		Sizes:       []string{"XS", "S", "M", "XL", "XXL"},
		Tags:        []string{"jacket"},
		Type:        "shirts",
		Gender:      "men",
	},
	{
		Title:       "Women's Cropped Puffer Jacket",
		Slug:        "women_cropped_puffer_jacket",
		Description: "The Women's Cropped Puffer Jacket features a uniquely cropped silhouette for the perfect, modern style while on the go during the cozy season ahead.",
		Images:      []string{"1740535-00-A_0_2000.jpg", "1740535-00-A_1.jpg"},
		InStock:     85,
		Price:       decimal.NewFromInt(225),
		Sizes:       []string{"XS", "S", "M"},
		Tags:        []string{"hoodie"},
		Type:        "hoodies",
		Gender:      "women",
	},
	{
		Title:       "Kids Cybertruck Long Sleeve Tee",
		Slug:        "kids_cybertruck_long_sleeve_tee",
		Description: "The Kids Cybertruck Long Sleeve Tee features a water-based Cybertruck graffiti wordmark across the chest.",
		Images:      []string{"1742694-00-A_1_2000.jpg", "1742694-00-A_2.jpg"},
		InStock:     0,
		Price:       decimal.NewFromInt(30),
		Sizes:       []string{"XS", "S", "M"},
		Tags:        []string{"shirt"},
		Type:        "shirts",
		Gender:      "kid",
	},
	{
		Title:       "Relaxed T Logo Hat",
		Slug:        "relaxed_t_logo_hat",
		Description: "The Relaxed T Logo Hat is a classic silhouette combined with modern details, featuring a 3D T logo and a custom metal buckle closure.",
		Images:      []string{"1657932-00-A_0_2000.jpg", "1657932-00-A_1.jpg"},
		InStock:     11,
		Price:       decimal.NewFromInt(30),
		Sizes:       []string{"S", "M", "L"},
		Tags:        []string{"hats"},
		Type:        "hats",
		Gender:      "unisex",
	},
}

// SeedProducts fills an empty catalogue with sample products and reports how many were added.
// A catalogue that already has products is left alone.
func SeedProducts(ctx context.Context, db *gorm.DB) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	products := make([]models.Product, len(seedProducts))
	copy(products, seedProducts)
	for i := range products {
		products[i].ID = uuid.New().String()
	}
	if err := db.WithContext(ctx).Create(&products).Error; err != nil {
		return 0, fmt.Errorf("failed to seed products: %w", err)
	}

	log.Printf("Seeded %d products", len(products))
	return len(products), nil
}
