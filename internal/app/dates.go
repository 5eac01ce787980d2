package app

import (
	"fmt"
	"time"

	"github.com/Dandy22/Arenaku/internal/domain"
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar day. Any time-of-day component is
// rejected up front; the core never does timezone arithmetic.
func ParseDate(s string) (time.Time, error) {
	date, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be formatted as YYYY-MM-DD: %w", domain.ErrInvalidInterval)
	}
	return date, nil
}
