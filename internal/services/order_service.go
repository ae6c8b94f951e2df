package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"teslo/internal/cart"
	"teslo/internal/metrics"
	"teslo/internal/models"
	"teslo/internal/repositories"
	"teslo/pkg/paypal"
	"teslo/pkg/rabbitmq"

	"github.com/shopspring/decimal"
)

// PaymentProvider confirms payments with the payment processor.
type PaymentProvider interface {
	AccessToken(ctx context.Context) (string, error)
	GetOrder(ctx context.Context, accessToken, transactionID string) (*paypal.OrderStatus, error)
}

// EventPublisher publishes order lifecycle events.
type EventPublisher interface {
	PublishOrderEvent(event rabbitmq.OrderEvent) error
}

// OrderItemRequest is one line of an order as sent by the client.
type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Image     string `json:"image"`
	Size      string `json:"size" validate:"required,oneof=XS S M L XL XXL XXXL"`
	Quantity  int    `json:"quantity" validate:"min=1,max=10"`
}

// CreateOrderRequest is the checkout payload. Total is the amount the client displayed.
type CreateOrderRequest struct {
	OrderItems      []OrderItemRequest     `json:"orderItems" validate:"required,min=1,dive"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	Total           decimal.Decimal        `json:"total"`
}

// PayOrderRequest asks to confirm the PayPal transaction TransactionID for OrderID.
type PayOrderRequest struct {
	TransactionID string `json:"transactionId" validate:"required"`
	OrderID       string `json:"orderId" validate:"required"`
}

// OrderService creates orders from checkout requests and confirms their payment.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	payments    PaymentProvider
	events      EventPublisher // nil disables publishing
	carts       *CartService   // nil leaves carts untouched after checkout
	now         func() time.Time
}

// NewOrderService creates a new OrderService. events and carts may be nil.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	payments PaymentProvider,
	events EventPublisher,
	carts *CartService,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		payments:    payments,
		events:      events,
		carts:       carts,
		now:         time.Now,
	}
}

// CreateOrder recomputes the order from catalogue prices, checks it against the total the client
// saw and stores it unpaid.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (*models.Order, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	ids := make([]string, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]models.OrderItem, 0, len(req.OrderItems))
	subTotal := decimal.Zero
	numberOfItems := 0
	for _, item := range req.OrderItems {
		product, ok := byID[item.ProductID]
		if !ok {
			metrics.OrderRejections.WithLabelValues("product_not_found").Inc()
			return nil, fmt.Errorf("product %s: %w", item.ProductID, ErrProductNotFound)
		}
		if !product.HasSize(item.Size) {
			metrics.OrderRejections.WithLabelValues("invalid_size").Inc()
			return nil, fmt.Errorf("size %s of product %s: %w", item.Size, product.ID, ErrInvalidSize)
		}

		subTotal = subTotal.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		numberOfItems += item.Quantity

		orderItem := models.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			Slug:      product.Slug,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     product.Price,
		}
		if len(product.Images) > 0 {
			orderItem.Image = product.Images[0]
		}
		items = append(items, orderItem)
	}

	taxes, total := cart.CalculateTotals(subTotal)
	if !req.Total.Equal(total) {
		log.Printf("Order totals do not match for user %s [client: %s | backend: %s]", userID, req.Total, total)
		metrics.OrderRejections.WithLabelValues("total_mismatch").Inc()
		return nil, fmt.Errorf("client %s, backend %s: %w", req.Total, total, ErrTotalMismatch)
	}

	order := &models.Order{
		UserID:          userID,
		OrderItems:      items,
		ShippingAddress: req.ShippingAddress,
		NumberOfItems:   numberOfItems,
		SubTotal:        subTotal.Round(2),
		Taxes:           taxes,
		Total:           total,
		IsPaid:          false,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}
	metrics.OrdersCreated.Inc()

	s.publish(rabbitmq.OrderEvent{
		Type:          rabbitmq.EventOrderCreated,
		OrderID:       order.ID,
		UserID:        order.UserID,
		Total:         order.Total.StringFixed(2),
		NumberOfItems: order.NumberOfItems,
	})

	if s.carts != nil {
		if _, err := s.carts.Complete(ctx, userID); err != nil {
			log.Printf("Warning: failed to clear cart of user %s after order %s: %v", userID, order.ID, err)
		}
	}

	return order, nil
}

// ConfirmPayment checks transactionID with the payment provider and marks orderID as paid when
// the provider reports the full amount as captured.
func (s *OrderService) ConfirmPayment(ctx context.Context, transactionID, orderID string) (*models.Order, error) {
	token, err := s.payments.AccessToken(ctx)
	if err != nil {
		log.Printf("Payment provider token exchange failed: %v", err)
		metrics.OrderRejections.WithLabelValues("provider_unavailable").Inc()
		return nil, fmt.Errorf("%w: %w", ErrPaymentProviderUnavailable, err)
	}

	status, err := s.payments.GetOrder(ctx, token, transactionID)
	if err != nil {
		log.Printf("Payment provider lookup of %s failed: %v", transactionID, err)
		metrics.OrderRejections.WithLabelValues("provider_unavailable").Inc()
		return nil, fmt.Errorf("%w: %w", ErrPaymentProviderUnavailable, err)
	}
	if !status.Completed() {
		metrics.OrderRejections.WithLabelValues("payment_not_completed").Inc()
		return nil, fmt.Errorf("transaction %s has status %q: %w", transactionID, status.Status, ErrPaymentNotCompleted)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("order %s: %w", orderID, ErrOrderNotFound)
		}
		return nil, fmt.Errorf("failed to load order %s: %w", orderID, err)
	}
	if order.IsPaid {
		metrics.OrderRejections.WithLabelValues("already_paid").Inc()
		return nil, fmt.Errorf("order %s: %w", orderID, ErrAlreadyPaid)
	}
	if !status.Amount.Equal(order.Total) {
		log.Printf("Paid amount %s does not match total %s of order %s", status.Amount, order.Total, orderID)
		metrics.OrderRejections.WithLabelValues("amount_mismatch").Inc()
		return nil, fmt.Errorf("paid %s, order total %s: %w", status.Amount, order.Total, ErrAmountMismatch)
	}

	paidAt := s.now().UTC()
	if err := s.orderRepo.MarkPaid(ctx, orderID, transactionID, paidAt); err != nil {
		if errors.Is(err, repositories.ErrNotUpdated) {
			metrics.OrderRejections.WithLabelValues("already_paid").Inc()
			return nil, fmt.Errorf("order %s: %w", orderID, ErrAlreadyPaid)
		}
		return nil, fmt.Errorf("failed to mark order %s as paid: %w", orderID, err)
	}
	metrics.OrdersPaid.Inc()

	order.IsPaid = true
	order.PaidAt = &paidAt
	order.TransactionID = transactionID

	s.publish(rabbitmq.OrderEvent{
		Type:          rabbitmq.EventOrderPaid,
		OrderID:       order.ID,
		UserID:        order.UserID,
		Total:         order.Total.StringFixed(2),
		TransactionID: transactionID,
	})

	return order, nil
}

// GetOrdersByUser returns the orders of userID, newest first.
func (s *OrderService) GetOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.orderRepo.GetByUserID(ctx, userID)
}

// GetOrderForUser returns orderID if it belongs to userID. Orders of other users are reported
// as missing.
func (s *OrderService) GetOrderForUser(ctx context.Context, userID, orderID string) (*models.Order, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("order %s: %w", orderID, ErrOrderNotFound)
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrOrderNotFound)
	}
	return order, nil
}

// GetAllOrders retrieves all orders, newest first.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

func (s *OrderService) publish(event rabbitmq.OrderEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderEvent(event); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", event.Type, event.OrderID, err)
	}
}
