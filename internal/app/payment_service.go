package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Dandy22/Arenaku/internal/clock"
	"github.com/Dandy22/Arenaku/internal/domain"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type PaymentRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetOrderForUpdate(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	GetPaymentByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Payment, error)
	GetPaymentWithOwnerForUpdate(ctx context.Context, orderID uuid.UUID) (domain.Payment, uuid.UUID, error)
	GetPaymentForUpdate(ctx context.Context, paymentID uuid.UUID) (domain.Payment, error)
	InsertPayment(ctx context.Context, payment domain.Payment) error
	UpdatePaymentStatus(ctx context.Context, paymentID uuid.UUID, status domain.PaymentStatus, paidAt *time.Time) error
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error
	ListOverduePaymentsForUpdate(ctx context.Context, now time.Time) ([]domain.Payment, error)
	GetFieldForUpdate(ctx context.Context, fieldID uuid.UUID) (domain.Field, error)
}

// OccupancyWriter persists confirmed occupancy. InsertAll must fail with
// domain.ErrSlotTaken when any slot overlaps existing occupancy.
type OccupancyWriter interface {
	InsertAll(ctx context.Context, occupancies []domain.Occupancy) error
}

type PaymentService struct {
	repo       PaymentRepository
	occ        OccupancyWriter
	clock      clock.Clock
	paymentTTL time.Duration
}

const defaultPaymentTTL = 15 * time.Minute

func NewPaymentService(repo PaymentRepository, occ OccupancyWriter, clk clock.Clock, opts ...PaymentServiceOption) *PaymentService {
	svc := &PaymentService{
		repo:       repo,
		occ:        occ,
		clock:      clk,
		paymentTTL: defaultPaymentTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type PaymentServiceOption func(*PaymentService)

// WithPaymentTTL overrides the default validity window for new payments.
func WithPaymentTTL(d time.Duration) PaymentServiceOption {
	return func(s *PaymentService) {
		if d > 0 {
			s.paymentTTL = d
		}
	}
}

// CreatePayment opens the payment window for a pending order. The order
// status is untouched; only a later confirmation or expiry moves it.
func (s *PaymentService) CreatePayment(ctx context.Context, userID, orderID uuid.UUID, method string) (domain.Payment, error) {
	parsedMethod, ok := domain.ToPaymentMethod(method)
	if !ok {
		return domain.Payment{}, fmt.Errorf("%w, choose: %v", domain.ErrInvalidMethod, domain.PaymentMethods())
	}

	now := s.clock.Now()
	var payment domain.Payment

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		order, err := s.repo.GetOrderForUpdate(txCtx, orderID)
		if err != nil {
			return err
		}
		if order.UserID != userID {
			return fmt.Errorf("cannot pay another user's order: %w", domain.ErrNotAuthorized)
		}

		existing, err := s.repo.GetPaymentByOrderID(txCtx, orderID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrPaymentExists
		}

		if order.Status != domain.OrderStatusPending {
			return &domain.InvalidOrderStateError{Status: order.Status}
		}

		payment = domain.Payment{
			ID:        uuid.New(),
			OrderID:   orderID,
			Amount:    order.TotalAmount,
			Method:    parsedMethod,
			Reference: PaymentReference(orderID, order.TotalAmount, parsedMethod, now),
			Status:    domain.PaymentStatusPending,
			ExpiredAt: now.Add(s.paymentTTL),
			CreatedAt: now,
		}
		return s.repo.InsertPayment(txCtx, payment)
	})
	if err != nil {
		return domain.Payment{}, err
	}

	return payment, nil
}

// GetPaymentStatus returns the payment for an order, owner only. A pending
// payment past its deadline is transitioned to EXPIRED and its order to
// CANCELLED as part of this read; the periodic sweeper covers payments that
// are never queried.
func (s *PaymentService) GetPaymentStatus(ctx context.Context, userID, orderID uuid.UUID) (domain.Payment, error) {
	now := s.clock.Now()
	var payment domain.Payment

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		existing, ownerID, err := s.repo.GetPaymentWithOwnerForUpdate(txCtx, orderID)
		if err != nil {
			return err
		}
		if ownerID != userID {
			return fmt.Errorf("cannot view another user's payment: %w", domain.ErrNotAuthorized)
		}

		payment = existing
		if payment.Status == domain.PaymentStatusPending && now.After(payment.ExpiredAt) {
			if err := s.repo.UpdatePaymentStatus(txCtx, payment.ID, domain.PaymentStatusExpired, nil); err != nil {
				return err
			}
			if err := s.repo.UpdateOrderStatus(txCtx, orderID, domain.OrderStatusCancelled); err != nil {
				return err
			}
			payment.Status = domain.PaymentStatusExpired
		}
		return nil
	})
	if err != nil {
		return domain.Payment{}, err
	}

	return payment, nil
}

// ConfirmPayment settles a pending payment: the payment goes to SUCCESS, the
// order to PAID, and every order item becomes confirmed occupancy, all in one
// transaction. A second confirmation is rejected with the current status.
//
// The occupancy insert is where a race between two paid-up customers for the
// same slot is decided: the storage constraint admits exactly one writer. The
// loser's payment is recorded as FAILED and the order as CANCELLED.
func (s *PaymentService) ConfirmPayment(ctx context.Context, paymentID uuid.UUID) (domain.Payment, error) {
	now := s.clock.Now()
	var payment domain.Payment

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetPaymentForUpdate(txCtx, paymentID)
		if err != nil {
			return err
		}
		if existing.Status != domain.PaymentStatusPending {
			return &domain.AlreadyFinalizedError{Status: existing.Status}
		}

		order, err := s.repo.GetOrderForUpdate(txCtx, existing.OrderID)
		if err != nil {
			return err
		}

		if err := s.lockOrderFields(txCtx, order.Items); err != nil {
			return err
		}

		occupancies := lo.Map(order.Items, func(item domain.OrderItem, _ int) domain.Occupancy {
			return domain.Occupancy{
				ID:          uuid.New(),
				Slot:        item.Slot,
				OrderItemID: item.ID,
				CreatedAt:   now,
			}
		})
		if err := s.occ.InsertAll(txCtx, occupancies); err != nil {
			return err
		}

		paidAt := now
		if err := s.repo.UpdatePaymentStatus(txCtx, paymentID, domain.PaymentStatusSuccess, &paidAt); err != nil {
			return err
		}
		if err := s.repo.UpdateOrderStatus(txCtx, order.ID, domain.OrderStatusPaid); err != nil {
			return err
		}

		payment = existing
		payment.Status = domain.PaymentStatusSuccess
		payment.PaidAt = &paidAt
		return nil
	})
	if errors.Is(err, domain.ErrSlotTaken) {
		// The aborted transaction rolled everything back; record the
		// terminal failure separately so the loser is not left pending.
		if failErr := s.failPayment(ctx, paymentID); failErr != nil {
			return domain.Payment{}, failErr
		}
		return domain.Payment{}, err
	}
	if err != nil {
		return domain.Payment{}, err
	}

	return payment, nil
}

func (s *PaymentService) failPayment(ctx context.Context, paymentID uuid.UUID) error {
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		payment, err := s.repo.GetPaymentForUpdate(txCtx, paymentID)
		if err != nil {
			return err
		}
		if payment.Status != domain.PaymentStatusPending {
			return nil
		}
		if err := s.repo.UpdatePaymentStatus(txCtx, paymentID, domain.PaymentStatusFailed, nil); err != nil {
			return err
		}
		return s.repo.UpdateOrderStatus(txCtx, payment.OrderID, domain.OrderStatusCancelled)
	})
}

// ExpireOverdue transitions every overdue pending payment to EXPIRED and its
// order to CANCELLED. Returns the number of payments expired.
func (s *PaymentService) ExpireOverdue(ctx context.Context) (int, error) {
	now := s.clock.Now()
	expired := 0

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		overdue, err := s.repo.ListOverduePaymentsForUpdate(txCtx, now)
		if err != nil {
			return err
		}
		for _, payment := range overdue {
			if err := s.repo.UpdatePaymentStatus(txCtx, payment.ID, domain.PaymentStatusExpired, nil); err != nil {
				return err
			}
			if err := s.repo.UpdateOrderStatus(txCtx, payment.OrderID, domain.OrderStatusCancelled); err != nil {
				return err
			}
			expired++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return expired, nil
}

func (s *PaymentService) lockOrderFields(ctx context.Context, items []domain.OrderItem) error {
	ids := lo.Uniq(lo.Map(items, func(item domain.OrderItem, _ int) uuid.UUID {
		return item.Slot.FieldID
	}))
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	for _, id := range ids {
		if _, err := s.repo.GetFieldForUpdate(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
