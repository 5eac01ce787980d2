package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dandy22/Arenaku/internal/clock"
	"github.com/Dandy22/Arenaku/internal/domain"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type OrderRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	ListCartItems(ctx context.Context, userID uuid.UUID) ([]domain.CartItem, error)
	GetFieldForUpdate(ctx context.Context, fieldID uuid.UUID) (domain.Field, error)
	InsertOrder(ctx context.Context, order domain.Order) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	ListAllOrders(ctx context.Context) ([]domain.Order, error)
}

type OrderService struct {
	repo  OrderRepository
	occ   OccupancyFinder
	clock clock.Clock
}

func NewOrderService(repo OrderRepository, occ OccupancyFinder, clk clock.Clock) *OrderService {
	return &OrderService{
		repo:  repo,
		occ:   occ,
		clock: clk,
	}
}

type CustomerInfo struct {
	Name  string
	Phone string
	Email string
	Notes string
}

// CreateOrder converts the caller's cart into an order. Every cart item is
// re-validated against confirmed occupancy inside one transaction, with the
// field rows locked so concurrent checkouts and confirmations on the same
// field serialize. The order insert and the cart clear commit together; a
// failed item aborts the whole checkout and leaves the cart untouched.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, role domain.Role, info CustomerInfo) (domain.Order, error) {
	if role != domain.RoleCustomer {
		return domain.Order{}, fmt.Errorf("only customers can create orders: %w", domain.ErrForbiddenRole)
	}
	if info.Name == "" || info.Phone == "" || info.Email == "" {
		return domain.Order{}, domain.ErrMissingCustomerInfo
	}

	now := s.clock.Now()
	var order domain.Order

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		cartItems, err := s.repo.ListCartItems(txCtx, userID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return domain.ErrEmptyCart
		}

		fields, err := s.lockFields(txCtx, cartItems)
		if err != nil {
			return err
		}

		// Siblings in the same cart were checked against each other at
		// add time; only confirmed occupancy can have changed since.
		for _, item := range cartItems {
			occupied, err := s.occ.FindConflict(txCtx, item.Slot)
			if err != nil {
				return err
			}
			if occupied != nil {
				return fmt.Errorf("%s at %d:00 - %d:00 was booked by someone else, remove it from your cart: %w",
					fields[item.Slot.FieldID].Name, item.Slot.StartHour, item.Slot.EndHour, domain.ErrSlotTaken)
			}
		}

		orderItems := lo.Map(cartItems, func(item domain.CartItem, _ int) domain.OrderItem {
			return domain.OrderItem{
				ID:    uuid.New(),
				Slot:  item.Slot,
				Price: fields[item.Slot.FieldID].Price,
			}
		})

		order = domain.Order{
			ID:            uuid.New(),
			UserID:        userID,
			Status:        domain.OrderStatusPending,
			TotalAmount:   lo.SumBy(orderItems, domain.OrderItem.Subtotal),
			CustomerName:  info.Name,
			CustomerPhone: info.Phone,
			CustomerEmail: info.Email,
			Notes:         info.Notes,
			Items:         orderItems,
			CreatedAt:     now,
		}

		if err := s.repo.InsertOrder(txCtx, order); err != nil {
			return err
		}
		return s.repo.ClearCart(txCtx, userID)
	})
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

// lockFields takes FOR UPDATE locks on the distinct fields referenced by the
// cart, in a stable order to avoid lock cycles, and returns them keyed by ID.
func (s *OrderService) lockFields(ctx context.Context, items []domain.CartItem) (map[uuid.UUID]domain.Field, error) {
	ids := lo.Uniq(lo.Map(items, func(item domain.CartItem, _ int) uuid.UUID {
		return item.Slot.FieldID
	}))
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	fields := make(map[uuid.UUID]domain.Field, len(ids))
	for _, id := range ids {
		field, err := s.repo.GetFieldForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		fields[id] = field
	}
	return fields, nil
}

// GetOrderByID returns an order with its items and payment, owner only.
func (s *OrderService) GetOrderByID(ctx context.Context, userID, orderID uuid.UUID) (domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order.UserID != userID {
		return domain.Order{}, fmt.Errorf("cannot view another user's order: %w", domain.ErrNotAuthorized)
	}
	return order, nil
}

// ListUserOrders returns the user's orders, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	return s.repo.ListOrdersByUser(ctx, userID)
}

// ListAllOrders returns every order, newest first. Admin only.
func (s *OrderService) ListAllOrders(ctx context.Context, role domain.Role) ([]domain.Order, error) {
	if role != domain.RoleAdmin {
		return nil, fmt.Errorf("only admins can view all orders: %w", domain.ErrForbiddenRole)
	}
	return s.repo.ListAllOrders(ctx)
}
