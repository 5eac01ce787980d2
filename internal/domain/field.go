package domain

import (
	"time"

	"github.com/google/uuid"
)

// Field is a bookable sports field. Price is per hour in the smallest
// currency unit and may change over time; orders snapshot it at checkout.
type Field struct {
	ID        uuid.UUID
	Name      string
	Price     int64
	CreatedAt time.Time
}
