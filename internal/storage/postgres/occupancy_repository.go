package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Dandy22/Arenaku/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OccupancyRepository is the interval store: the authoritative record of
// confirmed (paid) slots. An exclusion constraint over
// (field_id, date, int4range(start_hour, end_hour)) makes overlapping
// inserts impossible regardless of what callers validated beforehand.
type OccupancyRepository struct {
	pool *pgxpool.Pool
}

func NewOccupancyRepository(pool *pgxpool.Pool) *OccupancyRepository {
	return &OccupancyRepository{pool: pool}
}

// FindConflict returns an occupancy overlapping the candidate slot on the
// same field and date, or nil. The comparison is half-open: an occupancy
// ending at the candidate's start hour does not conflict.
func (r *OccupancyRepository) FindConflict(ctx context.Context, slot domain.TimeSlot) (*domain.Occupancy, error) {
	const query = `
SELECT id, field_id, date, start_hour, end_hour, order_item_id, created_at
FROM occupancies
WHERE field_id = $1 AND date = $2 AND start_hour < $4 AND end_hour > $3
LIMIT 1`

	var o domain.Occupancy
	err := r.queryRow(ctx, query, slot.FieldID, slot.Date, slot.StartHour, slot.EndHour).
		Scan(&o.ID, &o.Slot.FieldID, &o.Slot.Date, &o.Slot.StartHour, &o.Slot.EndHour, &o.OrderItemID, &o.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find occupancy conflict: %w", err)
	}
	return &o, nil
}

// InsertAll appends occupancy rows. Any overlap with existing rows, or among
// the rows themselves, aborts the whole insert with domain.ErrSlotTaken.
func (r *OccupancyRepository) InsertAll(ctx context.Context, occupancies []domain.Occupancy) error {
	const stmt = `
INSERT INTO occupancies (id, field_id, date, start_hour, end_hour, order_item_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, o := range occupancies {
		_, err := r.exec(ctx, stmt,
			o.ID,
			o.Slot.FieldID,
			o.Slot.Date,
			o.Slot.StartHour,
			o.Slot.EndHour,
			o.OrderItemID,
			o.CreatedAt,
		)
		if err != nil {
			if isExclusionViolation(err) {
				return fmt.Errorf("slot %d:00 - %d:00 already occupied: %w",
					o.Slot.StartHour, o.Slot.EndHour, domain.ErrSlotTaken)
			}
			return fmt.Errorf("insert occupancy: %w", err)
		}
	}
	return nil
}

// ListByFieldDate returns all occupancies for a field and date, earliest
// start first.
func (r *OccupancyRepository) ListByFieldDate(ctx context.Context, fieldID uuid.UUID, date time.Time) ([]domain.Occupancy, error) {
	const query = `
SELECT id, field_id, date, start_hour, end_hour, order_item_id, created_at
FROM occupancies
WHERE field_id = $1 AND date = $2
ORDER BY start_hour`

	rows, err := r.query(ctx, query, fieldID, date)
	if err != nil {
		return nil, fmt.Errorf("list occupancies: %w", err)
	}
	defer rows.Close()

	var out []domain.Occupancy
	for rows.Next() {
		var o domain.Occupancy
		if err := rows.Scan(&o.ID, &o.Slot.FieldID, &o.Slot.Date, &o.Slot.StartHour, &o.Slot.EndHour, &o.OrderItemID, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan occupancy: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OccupancyRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *OccupancyRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *OccupancyRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
