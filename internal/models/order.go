package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingAddress is where an order is delivered. It is copied onto the order at creation.
type ShippingAddress struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=100"`
	LastName  string `json:"lastName" validate:"required,min=2,max=100"`
	Address   string `json:"address" validate:"required,max=200"`
	Address2  string `json:"address2,omitempty" validate:"omitempty,max=200"`
	City      string `json:"city" validate:"required,max=100"`
	Zip       string `json:"zip" validate:"required,max=20"`
	Country   string `json:"country" validate:"required,iso3166_1_alpha2"`
	Phone     string `json:"phone" validate:"required,max=30"`
}

// OrderItem is a line of an order, snapshotted from the cart at checkout.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Slug      string          `json:"slug"`
	Image     string          `json:"image"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"` // authoritative unit price at the time of order
}

// Order represents a customer order. Only IsPaid, PaidAt and TransactionID change after creation.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"userId" gorm:"type:varchar(36);index"`
	OrderItems      []OrderItem     `json:"orderItems" gorm:"serializer:json;type:text"`
	ShippingAddress ShippingAddress `json:"shippingAddress" gorm:"embedded;embeddedPrefix:shipping_"`
	NumberOfItems   int             `json:"numberOfItems"`
	SubTotal        decimal.Decimal `json:"subTotal" gorm:"type:numeric(12,2)"`
	Taxes           decimal.Decimal `json:"taxes" gorm:"type:numeric(12,2)"`
	Total           decimal.Decimal `json:"total" gorm:"type:numeric(12,2)"`
	IsPaid          bool            `json:"isPaid" gorm:"index"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	TransactionID   string          `json:"transactionId,omitempty" gorm:"type:varchar(100)"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
