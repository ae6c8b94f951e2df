package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the store catalogue.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string          `json:"title" gorm:"type:varchar(200)" validate:"required,min=3,max=200"`
	Slug        string          `json:"slug" gorm:"uniqueIndex;type:varchar(200)" validate:"required,min=3,max=200"`
	Description string          `json:"description" validate:"omitempty,max=2000"`
	Images      []string        `json:"images" gorm:"serializer:json;type:text" validate:"min=2"`
	InStock     int             `json:"inStock" validate:"gte=0"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(12,2)"`
	Sizes       []string        `json:"sizes" gorm:"serializer:json;type:text" validate:"required,min=1,dive,oneof=XS S M L XL XXL XXXL"`
	Tags        []string        `json:"tags" gorm:"serializer:json;type:text"`
	Type        string          `json:"type" validate:"required,oneof=shirts pants hoodies hats"`
	Gender      string          `json:"gender" gorm:"index" validate:"required,oneof=men women kid unisex"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}

// HasSize reports whether the product is offered in the given size.
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
