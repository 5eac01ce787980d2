package postgres_test

import (
	"context"
	"time"

	"github.com/Dandy22/Arenaku/internal/domain"
	"github.com/Dandy22/Arenaku/internal/testutil"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

// repositorySuite owns the shared Postgres container and pool. Each test
// starts from truncated tables.
type repositorySuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	container testcontainers.Container
}

func (s *repositorySuite) SetupSuite() {
	ctx := context.Background()

	var (
		connStr string
		err     error
	)
	s.container, connStr, err = testutil.StartPostgres(ctx)
	if err != nil {
		s.T().Skipf("skipping Postgres integration tests: %v", err)
	}

	s.pool, err = pgxpool.New(ctx, connStr)
	s.Require().NoError(err)
	s.Require().NoError(s.pool.Ping(ctx))

	testutil.ApplyMigrations(s.T(), ctx, s.pool)
}

func (s *repositorySuite) TearDownSuite() {
	ctx := context.Background()

	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(ctx))
	}
}

func (s *repositorySuite) SetupTest() {
	testutil.TruncateAll(s.T(), context.Background(), s.pool)
}

var bookingDate = time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)

func slotFor(fieldID uuid.UUID, start, end int) domain.TimeSlot {
	return domain.TimeSlot{
		FieldID:   fieldID,
		Date:      bookingDate,
		StartHour: start,
		EndHour:   end,
	}
}

// fakeOrder builds a persisted-shape order with one item on the given slot.
func fakeOrder(userID uuid.UUID, slot domain.TimeSlot, price int64) domain.Order {
	item := domain.OrderItem{
		ID:    uuid.New(),
		Slot:  slot,
		Price: price,
	}
	return domain.Order{
		ID:            uuid.New(),
		UserID:        userID,
		Status:        domain.OrderStatusPending,
		TotalAmount:   item.Subtotal(),
		CustomerName:  gofakeit.Name(),
		CustomerPhone: gofakeit.Phone(),
		CustomerEmail: gofakeit.Email(),
		Items:         []domain.OrderItem{item},
		CreatedAt:     time.Now().UTC().Truncate(time.Millisecond),
	}
}

func fakePayment(orderID uuid.UUID, amount int64, expiredAt time.Time) domain.Payment {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return domain.Payment{
		ID:        uuid.New(),
		OrderID:   orderID,
		Amount:    amount,
		Method:    domain.PaymentMethodQRIS,
		Reference: "QRIS-" + orderID.String(),
		Status:    domain.PaymentStatusPending,
		ExpiredAt: expiredAt,
		CreatedAt: now,
	}
}
