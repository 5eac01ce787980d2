package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotOn(fieldID uuid.UUID, date time.Time, start, end int) TimeSlot {
	return TimeSlot{FieldID: fieldID, Date: date, StartHour: start, EndHour: end}
}

func TestTimeSlot_Validate(t *testing.T) {
	t.Parallel()

	fieldID := uuid.New()
	date := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   int
		end     int
		wantErr bool
	}{
		{name: "valid single hour", start: 10, end: 11},
		{name: "valid full day", start: 0, end: 24},
		{name: "start equals end", start: 10, end: 10, wantErr: true},
		{name: "start after end", start: 12, end: 10, wantErr: true},
		{name: "negative start", start: -1, end: 5, wantErr: true},
		{name: "end past midnight", start: 20, end: 25, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := slotOn(fieldID, date, tt.start, tt.end).Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInterval)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTimeSlot_Overlaps(t *testing.T) {
	t.Parallel()

	fieldID := uuid.New()
	date := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a    TimeSlot
		b    TimeSlot
		want bool
	}{
		{
			name: "touching boundaries do not conflict",
			a:    slotOn(fieldID, date, 10, 12),
			b:    slotOn(fieldID, date, 12, 14),
			want: false,
		},
		{
			name: "partial overlap conflicts",
			a:    slotOn(fieldID, date, 10, 12),
			b:    slotOn(fieldID, date, 11, 13),
			want: true,
		},
		{
			name: "containment conflicts",
			a:    slotOn(fieldID, date, 9, 18),
			b:    slotOn(fieldID, date, 12, 13),
			want: true,
		},
		{
			name: "identical slots conflict",
			a:    slotOn(fieldID, date, 10, 12),
			b:    slotOn(fieldID, date, 10, 12),
			want: true,
		},
		{
			name: "different field never conflicts",
			a:    slotOn(fieldID, date, 10, 12),
			b:    slotOn(uuid.New(), date, 10, 12),
			want: false,
		},
		{
			name: "different date never conflicts",
			a:    slotOn(fieldID, date, 10, 12),
			b:    slotOn(fieldID, date.AddDate(0, 0, 1), 10, 12),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// The overlap test is symmetric.
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestHasConflict(t *testing.T) {
	t.Parallel()

	fieldID := uuid.New()
	date := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	existing := []TimeSlot{
		slotOn(fieldID, date, 8, 10),
		slotOn(fieldID, date, 14, 16),
	}

	assert.False(t, HasConflict(slotOn(fieldID, date, 10, 14), existing))
	assert.True(t, HasConflict(slotOn(fieldID, date, 9, 11), existing))
	assert.True(t, HasConflict(slotOn(fieldID, date, 15, 17), existing))
	assert.False(t, HasConflict(slotOn(fieldID, date, 16, 18), existing))
	assert.False(t, HasConflict(slotOn(fieldID, date, 10, 14), nil))
}

func TestNormalizeDate(t *testing.T) {
	t.Parallel()

	in := time.Date(2025, 8, 15, 17, 45, 12, 999, time.UTC)
	want := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, NormalizeDate(in))
}
