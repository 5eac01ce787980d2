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

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *OrderRepository) ListCartItems(ctx context.Context, userID uuid.UUID) ([]domain.CartItem, error) {
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

func (r *OrderRepository) GetFieldForUpdate(ctx context.Context, fieldID uuid.UUID) (domain.Field, error) {
	const query = `SELECT id, name, price, created_at FROM fields WHERE id = $1 FOR UPDATE`

	var f domain.Field
	err := r.queryRow(ctx, query, fieldID).Scan(&f.ID, &f.Name, &f.Price, &f.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Field{}, domain.ErrFieldNotFound
		}
		return domain.Field{}, fmt.Errorf("get field for update: %w", err)
	}
	return f, nil
}

// InsertOrder persists the order header and all of its items. Callers wrap
// this together with the cart clear in one transaction.
func (r *OrderRepository) InsertOrder(ctx context.Context, order domain.Order) error {
	const orderStmt = `
INSERT INTO orders (id, user_id, status, total_amount, customer_name, customer_phone, customer_email, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.exec(ctx, orderStmt,
		order.ID,
		order.UserID,
		order.Status,
		order.TotalAmount,
		order.CustomerName,
		order.CustomerPhone,
		order.CustomerEmail,
		order.Notes,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	const itemStmt = `
INSERT INTO order_items (id, order_id, field_id, date, start_hour, end_hour, price)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, item := range order.Items {
		_, err := r.exec(ctx, itemStmt,
			item.ID,
			order.ID,
			item.Slot.FieldID,
			item.Slot.Date,
			item.Slot.StartHour,
			item.Slot.EndHour,
			item.Price,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func (r *OrderRepository) ClearCart(ctx context.Context, userID uuid.UUID) error {
	const stmt = `DELETE FROM cart_items WHERE user_id = $1`

	if _, err := r.exec(ctx, stmt, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	const query = `
SELECT id, user_id, status, total_amount, customer_name, customer_phone, customer_email, notes, created_at
FROM orders
WHERE id = $1`

	var o domain.Order
	err := r.queryRow(ctx, query, orderID).
		Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.CustomerName, &o.CustomerPhone, &o.CustomerEmail, &o.Notes, &o.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Order{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("get order: %w", err)
	}

	if err := r.attachDetails(ctx, &o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *OrderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	const query = `
SELECT id, user_id, status, total_amount, customer_name, customer_phone, customer_email, notes, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC, id`

	return r.listOrders(ctx, query, userID)
}

func (r *OrderRepository) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	const query = `
SELECT id, user_id, status, total_amount, customer_name, customer_phone, customer_email, notes, created_at
FROM orders
ORDER BY created_at DESC, id`

	return r.listOrders(ctx, query)
}

func (r *OrderRepository) listOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.CustomerName, &o.CustomerPhone, &o.CustomerEmail, &o.Notes, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := r.attachDetails(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepository) attachDetails(ctx context.Context, order *domain.Order) error {
	const itemsQuery = `
SELECT id, field_id, date, start_hour, end_hour, price
FROM order_items
WHERE order_id = $1
ORDER BY date, start_hour, id`

	rows, err := r.query(ctx, itemsQuery, order.ID)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.Slot.FieldID, &item.Slot.Date, &item.Slot.StartHour, &item.Slot.EndHour, &item.Price); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	const paymentQuery = `
SELECT id, order_id, amount, method, reference, status, expired_at, paid_at, created_at
FROM payments
WHERE order_id = $1`

	var p domain.Payment
	err = r.queryRow(ctx, paymentQuery, order.ID).
		Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Reference, &p.Status, &p.ExpiredAt, &p.PaidAt, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil
		}
		return fmt.Errorf("get order payment: %w", err)
	}
	order.Payment = &p
	return nil
}

func (r *OrderRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *OrderRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *OrderRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
