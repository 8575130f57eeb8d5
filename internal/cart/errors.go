package cart

import "errors"

// ValidationError reports a submission precondition failure. Field names the
// payload field the operator has to correct.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Submission validation errors. Messages identify the missing field so staff
// can fix the entry during live service.
var (
	ErrEmptyCart              = &ValidationError{Field: "items", Message: "agrega productos al carrito"}
	ErrMissingCustomerName    = &ValidationError{Field: "customer_name", Message: "ingresa el nombre del cliente"}
	ErrMissingDeliveryPhone   = &ValidationError{Field: "delivery_phone", Message: "ingresa el teléfono para entrega a domicilio"}
	ErrMissingDeliveryAddress = &ValidationError{Field: "delivery_address", Message: "ingresa la dirección para entrega a domicilio"}
)

var (
	// ErrIndexOutOfRange rejects an operation on a line item that does not
	// exist. The sequence is left untouched.
	ErrIndexOutOfRange = errors.New("line item index out of range")
	// ErrInvalidQuantity rejects a non-positive quantity on AddItem.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	// ErrInvalidUnitPrice rejects a menu item with a negative price.
	ErrInvalidUnitPrice = errors.New("menu item price must not be negative")
	// ErrSubmissionInFlight blocks a second concurrent submission of the
	// same cart.
	ErrSubmissionInFlight = errors.New("order submission already in progress")
)
