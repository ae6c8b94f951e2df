package services

import "errors"

// Errors returned by the services. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrUnauthenticated            = errors.New("user is not authenticated")
	ErrInvalidCredentials         = errors.New("invalid credentials")
	ErrEmailTaken                 = errors.New("email already registered")
	ErrForbidden                  = errors.New("role is not allowed to perform this action")
	ErrUserNotFound               = errors.New("user not found")
	ErrInvalidRole                = errors.New("invalid role")
	ErrProductNotFound            = errors.New("product not found")
	ErrInvalidProduct             = errors.New("invalid product")
	ErrSlugTaken                  = errors.New("a product with this slug already exists")
	ErrInvalidSize                = errors.New("size is not offered for this product")
	ErrCartLineNotFound           = errors.New("line is not in the cart")
	ErrEmptyQuery                 = errors.New("search query is empty")
	ErrTotalMismatch              = errors.New("order total does not match the computed total")
	ErrOrderNotFound              = errors.New("order not found")
	ErrPaymentProviderUnavailable = errors.New("could not obtain payment authorization")
	ErrPaymentNotCompleted        = errors.New("payment was not completed")
	ErrAmountMismatch             = errors.New("paid amount does not match the order total")
	ErrAlreadyPaid                = errors.New("order is already paid")
)
