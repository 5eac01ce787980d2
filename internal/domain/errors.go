package domain

import (
	"errors"
	"fmt"
)

var (
	ErrForbiddenRole       = errors.New("forbidden for this role")
	ErrInvalidInterval     = errors.New("invalid time interval")
	ErrDuplicateInCart     = errors.New("this time slot is already in your cart")
	ErrSlotTaken           = errors.New("time slot is already booked")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrFieldNotFound       = errors.New("field not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrNotAuthorized       = errors.New("not authorized to access this resource")
	ErrEmptyCart           = errors.New("cart is empty, add items before checkout")
	ErrMissingCustomerInfo = errors.New("customer name, phone, and email are required")
	ErrInvalidMethod       = errors.New("invalid payment method")
	ErrPaymentExists       = errors.New("payment already exists for this order")
	ErrFieldNameRequired   = errors.New("field name is required")
	ErrInvalidPrice        = errors.New("price must be greater than zero")
	ErrInvalidID           = errors.New("invalid id")
)

// InvalidOrderStateError reports the order status that blocked payment creation.
type InvalidOrderStateError struct {
	Status OrderStatus
}

func (e *InvalidOrderStateError) Error() string {
	return fmt.Sprintf("cannot create payment for order with status: %s", e.Status)
}

// AlreadyFinalizedError reports the terminal status of a payment that can no
// longer be confirmed.
type AlreadyFinalizedError struct {
	Status PaymentStatus
}

func (e *AlreadyFinalizedError) Error() string {
	return fmt.Sprintf("payment already %s", e.Status)
}
