package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order is the result of a checkout. TotalAmount and item prices are frozen
// at creation; status moves only through the payment lifecycle.
type Order struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Status        OrderStatus
	TotalAmount   int64
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Notes         string
	Items         []OrderItem
	Payment       *Payment
	CreatedAt     time.Time
}

// OrderItem carries one reserved slot and the per-hour price snapshot taken
// at checkout.
type OrderItem struct {
	ID    uuid.UUID
	Slot  TimeSlot
	Price int64
}

// Subtotal is the snapshot price times the slot duration in hours.
func (i OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Slot.EndHour-i.Slot.StartHour)
}
