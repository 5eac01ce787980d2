package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimeSlot is a field plus a calendar date and an hour range. Hours are
// half-open: a slot from 10 to 12 covers 10:00-11:59 and does not conflict
// with a slot starting at 12.
type TimeSlot struct {
	FieldID   uuid.UUID
	Date      time.Time
	StartHour int
	EndHour   int
}

// Validate checks the hour range. Dates are not checked here; past-date rules
// depend on the caller's clock.
func (s TimeSlot) Validate() error {
	if s.StartHour >= s.EndHour {
		return fmt.Errorf("start hour must be earlier than end hour: %w", ErrInvalidInterval)
	}
	if s.StartHour < 0 || s.EndHour > 24 {
		return fmt.Errorf("hour must be between 0 and 24: %w", ErrInvalidInterval)
	}
	return nil
}

// Overlaps reports whether two slots on the same field and date intersect.
// Touching boundaries do not overlap.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	if s.FieldID != other.FieldID || !s.Date.Equal(other.Date) {
		return false
	}
	return s.StartHour < other.EndHour && s.EndHour > other.StartHour
}

// HasConflict reports whether the candidate slot overlaps any of the existing
// slots. It is a pure predicate; existing may come from confirmed occupancy,
// a live cart, or both.
func HasConflict(candidate TimeSlot, existing []TimeSlot) bool {
	for _, slot := range existing {
		if candidate.Overlaps(slot) {
			return true
		}
	}
	return false
}

// NormalizeDate truncates a timestamp to its UTC calendar day.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
