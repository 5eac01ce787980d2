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

type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func (r *PaymentRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetOrderForUpdate locks the order row and returns it with its items.
func (r *PaymentRepository) GetOrderForUpdate(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	const query = `
SELECT id, user_id, status, total_amount, customer_name, customer_phone, customer_email, notes, created_at
FROM orders
WHERE id = $1
FOR UPDATE`

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
		return domain.Order{}, fmt.Errorf("get order for update: %w", err)
	}

	const itemsQuery = `
SELECT id, field_id, date, start_hour, end_hour, price
FROM order_items
WHERE order_id = $1
ORDER BY date, start_hour, id`

	rows, err := r.query(ctx, itemsQuery, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.Slot.FieldID, &item.Slot.Date, &item.Slot.StartHour, &item.Slot.EndHour, &item.Price); err != nil {
			return domain.Order{}, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	return o, rows.Err()
}

func (r *PaymentRepository) GetPaymentByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Payment, error) {
	const query = `
SELECT id, order_id, amount, method, reference, status, expired_at, paid_at, created_at
FROM payments
WHERE order_id = $1`

	var p domain.Payment
	err := r.queryRow(ctx, query, orderID).
		Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Reference, &p.Status, &p.ExpiredAt, &p.PaidAt, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment by order: %w", err)
	}
	return &p, nil
}

// GetPaymentWithOwnerForUpdate locks the payment row for an order and also
// returns the owning order's user, for the read path that may expire.
func (r *PaymentRepository) GetPaymentWithOwnerForUpdate(ctx context.Context, orderID uuid.UUID) (domain.Payment, uuid.UUID, error) {
	const query = `
SELECT p.id, p.order_id, p.amount, p.method, p.reference, p.status, p.expired_at, p.paid_at, p.created_at, o.user_id
FROM payments p
JOIN orders o ON o.id = p.order_id
WHERE p.order_id = $1
FOR UPDATE OF p`

	var (
		p       domain.Payment
		ownerID uuid.UUID
	)
	err := r.queryRow(ctx, query, orderID).
		Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Reference, &p.Status, &p.ExpiredAt, &p.PaidAt, &p.CreatedAt, &ownerID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Payment{}, uuid.Nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Payment{}, uuid.Nil, domain.ErrPaymentNotFound
		}
		return domain.Payment{}, uuid.Nil, fmt.Errorf("get payment with owner: %w", err)
	}
	return p, ownerID, nil
}

func (r *PaymentRepository) GetPaymentForUpdate(ctx context.Context, paymentID uuid.UUID) (domain.Payment, error) {
	const query = `
SELECT id, order_id, amount, method, reference, status, expired_at, paid_at, created_at
FROM payments
WHERE id = $1
FOR UPDATE`

	var p domain.Payment
	err := r.queryRow(ctx, query, paymentID).
		Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Reference, &p.Status, &p.ExpiredAt, &p.PaidAt, &p.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Payment{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Payment{}, domain.ErrPaymentNotFound
		}
		return domain.Payment{}, fmt.Errorf("get payment for update: %w", err)
	}
	return p, nil
}

func (r *PaymentRepository) InsertPayment(ctx context.Context, payment domain.Payment) error {
	const stmt = `
INSERT INTO payments (id, order_id, amount, method, reference, status, expired_at, paid_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.exec(ctx, stmt,
		payment.ID,
		payment.OrderID,
		payment.Amount,
		payment.Method,
		payment.Reference,
		payment.Status,
		payment.ExpiredAt,
		payment.PaidAt,
		payment.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPaymentExists
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) UpdatePaymentStatus(ctx context.Context, paymentID uuid.UUID, status domain.PaymentStatus, paidAt *time.Time) error {
	const stmt = `UPDATE payments SET status = $2, paid_at = COALESCE($3, paid_at) WHERE id = $1`

	tag, err := r.exec(ctx, stmt, paymentID, status, paidAt)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	const stmt = `UPDATE orders SET status = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, orderID, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// ListOverduePaymentsForUpdate locks and returns pending payments whose
// deadline has passed. SKIP LOCKED keeps the sweeper from stalling behind a
// confirmation in flight.
func (r *PaymentRepository) ListOverduePaymentsForUpdate(ctx context.Context, now time.Time) ([]domain.Payment, error) {
	const query = `
SELECT id, order_id, amount, method, reference, status, expired_at, paid_at, created_at
FROM payments
WHERE status = $1 AND expired_at < $2
ORDER BY expired_at
FOR UPDATE SKIP LOCKED`

	rows, err := r.query(ctx, query, domain.PaymentStatusPending, now)
	if err != nil {
		return nil, fmt.Errorf("list overdue payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Reference, &p.Status, &p.ExpiredAt, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) GetFieldForUpdate(ctx context.Context, fieldID uuid.UUID) (domain.Field, error) {
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

func (r *PaymentRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *PaymentRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *PaymentRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
