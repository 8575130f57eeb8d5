package service

import "errors"

// Sentinel errors surfaced to handlers and mapped to API responses.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user account disabled")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")

	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrMenuItemNotAvailable = errors.New("menu item not available")
	ErrInvalidMenuItem      = errors.New("invalid menu item")

	ErrInvalidOrderItem     = errors.New("invalid order item")
	ErrInvalidOrderType     = errors.New("invalid order type")
	ErrDeliveryInfoRequired = errors.New("delivery phone and address required")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderNotOpen         = errors.New("order is not open")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrOrderCreateFailed    = errors.New("order creation failed")
)
