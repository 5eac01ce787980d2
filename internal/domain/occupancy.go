package domain

import (
	"time"

	"github.com/google/uuid"
)

// Occupancy is a confirmed slot realized through a paid order item. Rows are
// append-only; the storage layer enforces that occupancies on the same field
// and date never overlap.
type Occupancy struct {
	ID          uuid.UUID
	Slot        TimeSlot
	OrderItemID uuid.UUID
	CreatedAt   time.Time
}
