package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Dandy22/Arenaku/internal/domain"
	"github.com/Dandy22/Arenaku/migrations"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const postgresImage = "postgres:16-alpine"

// StartPostgres provides a database for integration tests. When
// TEST_DATABASE_URL is set it is used directly (container is nil); otherwise
// a throwaway Postgres container is started.
func StartPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		return nil, dsn, nil
	}

	container, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("arenaku"),
		tcpostgres.WithUsername("arenaku"),
		tcpostgres.WithPassword("arenaku"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, "", err
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, "", err
	}
	return container, connStr, nil
}

// NewTestPool starts (or connects to) a test database, applies migrations
// and returns a pool that is cleaned up with the test.
func NewTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, dsn, err := StartPostgres(ctx)
	if err != nil {
		t.Skipf("skipping Postgres integration tests: %v", err)
	}
	t.Cleanup(func() {
		if container != nil {
			_ = container.Terminate(context.Background())
		}
	})

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("failed to parse config: %v", err)
	}
	cfg.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pool.Ping(ctx); err != nil {
		t.Skipf("skipping Postgres integration tests: %v", err)
	}

	ApplyMigrations(t, ctx, pool)
	return pool
}

func ApplyMigrations(t *testing.T, ctx context.Context, pool *pgxpool.Pool) {
	t.Helper()
	if err := migrations.Apply(ctx, pool); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
}

func TruncateAll(t *testing.T, ctx context.Context, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(ctx, `TRUNCATE occupancies, payments, order_items, orders, cart_items, fields RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func InsertField(t *testing.T, ctx context.Context, pool *pgxpool.Pool, name string, price int64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO fields (id, name, price) VALUES ($1, $2, $3)`,
		id, name, price,
	)
	if err != nil {
		t.Fatalf("insert field: %v", err)
	}
	return id
}

func InsertCartItem(t *testing.T, ctx context.Context, pool *pgxpool.Pool, userID uuid.UUID, slot domain.TimeSlot) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(ctx, `
INSERT INTO cart_items (id, user_id, field_id, date, start_hour, end_hour)
VALUES ($1, $2, $3, $4, $5, $6)`,
		id, userID, slot.FieldID, slot.Date, slot.StartHour, slot.EndHour,
	)
	if err != nil {
		t.Fatalf("insert cart item: %v", err)
	}
	return id
}

func InsertOrder(t *testing.T, ctx context.Context, pool *pgxpool.Pool, order domain.Order) {
	t.Helper()
	_, err := pool.Exec(ctx, `
INSERT INTO orders (id, user_id, status, total_amount, customer_name, customer_phone, customer_email, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		order.ID, order.UserID, order.Status, order.TotalAmount,
		order.CustomerName, order.CustomerPhone, order.CustomerEmail, order.Notes, order.CreatedAt,
	)
	if err != nil {
		t.Fatalf("insert order: %v", err)
	}
	for _, item := range order.Items {
		_, err := pool.Exec(ctx, `
INSERT INTO order_items (id, order_id, field_id, date, start_hour, end_hour, price)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, order.ID, item.Slot.FieldID, item.Slot.Date, item.Slot.StartHour, item.Slot.EndHour, item.Price,
		)
		if err != nil {
			t.Fatalf("insert order item: %v", err)
		}
	}
}

func InsertPayment(t *testing.T, ctx context.Context, pool *pgxpool.Pool, payment domain.Payment) {
	t.Helper()
	_, err := pool.Exec(ctx, `
INSERT INTO payments (id, order_id, amount, method, reference, status, expired_at, paid_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		payment.ID, payment.OrderID, payment.Amount, payment.Method, payment.Reference,
		payment.Status, payment.ExpiredAt, payment.PaidAt, payment.CreatedAt,
	)
	if err != nil {
		t.Fatalf("insert payment: %v", err)
	}
}

func InsertOccupancy(t *testing.T, ctx context.Context, pool *pgxpool.Pool, slot domain.TimeSlot, orderItemID uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(ctx, `
INSERT INTO occupancies (id, field_id, date, start_hour, end_hour, order_item_id)
VALUES ($1, $2, $3, $4, $5, $6)`,
		id, slot.FieldID, slot.Date, slot.StartHour, slot.EndHour, orderItemID,
	)
	if err != nil {
		t.Fatalf("insert occupancy: %v", err)
	}
	return id
}
