package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a provisional, unconfirmed slot selection owned by one
// customer. It blocks nothing outside the owner's own cart.
type CartItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Slot      TimeSlot
	CreatedAt time.Time
}
