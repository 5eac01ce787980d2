package postgres

import (
	"context"
	"fmt"

	"github.com/Dandy22/Arenaku/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *CartRepository) GetField(ctx context.Context, fieldID uuid.UUID) (domain.Field, error) {
	const query = `SELECT id, name, price, created_at FROM fields WHERE id = $1`

	var f domain.Field
	err := r.queryRow(ctx, query, fieldID).Scan(&f.ID, &f.Name, &f.Price, &f.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Field{}, domain.ErrFieldNotFound
		}
		return domain.Field{}, fmt.Errorf("get field: %w", err)
	}
	return f, nil
}

// FindCartConflict returns an item in the user's own cart overlapping the
// candidate slot, or nil. Other users' carts are never consulted.
func (r *CartRepository) FindCartConflict(ctx context.Context, userID uuid.UUID, slot domain.TimeSlot) (*domain.CartItem, error) {
	const query = `
SELECT id, user_id, field_id, date, start_hour, end_hour, created_at
FROM cart_items
WHERE user_id = $1 AND field_id = $2 AND date = $3 AND start_hour < $5 AND end_hour > $4
LIMIT 1`

	var item domain.CartItem
	err := r.queryRow(ctx, query, userID, slot.FieldID, slot.Date, slot.StartHour, slot.EndHour).
		Scan(&item.ID, &item.UserID, &item.Slot.FieldID, &item.Slot.Date, &item.Slot.StartHour, &item.Slot.EndHour, &item.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find cart conflict: %w", err)
	}
	return &item, nil
}

func (r *CartRepository) ListCartItems(ctx context.Context, userID uuid.UUID) ([]domain.CartItem, error) {
	const query = `
SELECT id, user_id, field_id, date, start_hour, end_hour, created_at
FROM cart_items
WHERE user_id = $1
ORDER BY created_at, id`

	rows, err := r.query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Slot.FieldID, &item.Slot.Date, &item.Slot.StartHour, &item.Slot.EndHour, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *CartRepository) GetCartItem(ctx context.Context, itemID uuid.UUID) (domain.CartItem, error) {
	const query = `
SELECT id, user_id, field_id, date, start_hour, end_hour, created_at
FROM cart_items
WHERE id = $1`

	var item domain.CartItem
	err := r.queryRow(ctx, query, itemID).
		Scan(&item.ID, &item.UserID, &item.Slot.FieldID, &item.Slot.Date, &item.Slot.StartHour, &item.Slot.EndHour, &item.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.CartItem{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.CartItem{}, domain.ErrCartItemNotFound
		}
		return domain.CartItem{}, fmt.Errorf("get cart item: %w", err)
	}
	return item, nil
}

func (r *CartRepository) InsertCartItem(ctx context.Context, item domain.CartItem) error {
	const stmt = `
INSERT INTO cart_items (id, user_id, field_id, date, start_hour, end_hour, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		item.ID,
		item.UserID,
		item.Slot.FieldID,
		item.Slot.Date,
		item.Slot.StartHour,
		item.Slot.EndHour,
		item.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrFieldNotFound
		}
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

func (r *CartRepository) DeleteCartItem(ctx context.Context, itemID uuid.UUID) error {
	const stmt = `DELETE FROM cart_items WHERE id = $1`

	tag, err := r.exec(ctx, stmt, itemID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *CartRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *CartRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
