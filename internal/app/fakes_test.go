package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Dandy22/Arenaku/internal/domain"
	"github.com/google/uuid"
)

// fakeStore backs every repository interface in this package with in-memory
// state. WithTx snapshots the store and restores it when the callback fails,
// so tests can assert that aborted transactions leave nothing behind.
type fakeStore struct {
	fields      map[uuid.UUID]domain.Field
	cartItems   []domain.CartItem
	orders      []domain.Order
	payments    []domain.Payment
	occupancies []domain.Occupancy
}

func newFakeStore(fields ...domain.Field) *fakeStore {
	m := make(map[uuid.UUID]domain.Field, len(fields))
	for _, f := range fields {
		m[f.ID] = f
	}
	return &fakeStore{fields: m}
}

func (f *fakeStore) clone() *fakeStore {
	c := &fakeStore{
		fields:      make(map[uuid.UUID]domain.Field, len(f.fields)),
		cartItems:   append([]domain.CartItem(nil), f.cartItems...),
		payments:    append([]domain.Payment(nil), f.payments...),
		occupancies: append([]domain.Occupancy(nil), f.occupancies...),
		orders:      make([]domain.Order, len(f.orders)),
	}
	for id, field := range f.fields {
		c.fields[id] = field
	}
	for i, o := range f.orders {
		o.Items = append([]domain.OrderItem(nil), o.Items...)
		c.orders[i] = o
	}
	return c
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := f.clone()
	if err := fn(ctx); err != nil {
		*f = *snapshot
		return err
	}
	return nil
}

func (f *fakeStore) GetField(_ context.Context, fieldID uuid.UUID) (domain.Field, error) {
	field, ok := f.fields[fieldID]
	if !ok {
		return domain.Field{}, domain.ErrFieldNotFound
	}
	return field, nil
}

func (f *fakeStore) GetFieldForUpdate(ctx context.Context, fieldID uuid.UUID) (domain.Field, error) {
	return f.GetField(ctx, fieldID)
}

func (f *fakeStore) InsertField(_ context.Context, field domain.Field) error {
	f.fields[field.ID] = field
	return nil
}

func (f *fakeStore) ListFields(_ context.Context) ([]domain.Field, error) {
	fields := make([]domain.Field, 0, len(f.fields))
	for _, field := range f.fields {
		fields = append(fields, field)
	}
	return fields, nil
}

func (f *fakeStore) FindCartConflict(_ context.Context, userID uuid.UUID, slot domain.TimeSlot) (*domain.CartItem, error) {
	for i := range f.cartItems {
		item := f.cartItems[i]
		if item.UserID == userID && item.Slot.Overlaps(slot) {
			return &item, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListCartItems(_ context.Context, userID uuid.UUID) ([]domain.CartItem, error) {
	var items []domain.CartItem
	for _, item := range f.cartItems {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeStore) GetCartItem(_ context.Context, itemID uuid.UUID) (domain.CartItem, error) {
	for _, item := range f.cartItems {
		if item.ID == itemID {
			return item, nil
		}
	}
	return domain.CartItem{}, domain.ErrCartItemNotFound
}

func (f *fakeStore) InsertCartItem(_ context.Context, item domain.CartItem) error {
	if _, ok := f.fields[item.Slot.FieldID]; !ok {
		return domain.ErrFieldNotFound
	}
	f.cartItems = append(f.cartItems, item)
	return nil
}

func (f *fakeStore) DeleteCartItem(_ context.Context, itemID uuid.UUID) error {
	for i, item := range f.cartItems {
		if item.ID == itemID {
			f.cartItems = append(f.cartItems[:i], f.cartItems[i+1:]...)
			return nil
		}
	}
	return domain.ErrCartItemNotFound
}

func (f *fakeStore) ClearCart(_ context.Context, userID uuid.UUID) error {
	kept := f.cartItems[:0]
	for _, item := range f.cartItems {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	f.cartItems = kept
	return nil
}

func (f *fakeStore) InsertOrder(_ context.Context, order domain.Order) error {
	order.Items = append([]domain.OrderItem(nil), order.Items...)
	order.Payment = nil
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeStore) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	for _, o := range f.orders {
		if o.ID == orderID {
			order := o
			order.Items = append([]domain.OrderItem(nil), o.Items...)
			if p := f.paymentByOrder(orderID); p != nil {
				payment := *p
				order.Payment = &payment
			}
			return order, nil
		}
	}
	return domain.Order{}, domain.ErrOrderNotFound
}

func (f *fakeStore) GetOrderForUpdate(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return f.GetOrder(ctx, orderID)
}

func (f *fakeStore) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	var orders []domain.Order
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].UserID != userID {
			continue
		}
		order, err := f.GetOrder(ctx, f.orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (f *fakeStore) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	for i := len(f.orders) - 1; i >= 0; i-- {
		order, err := f.GetOrder(ctx, f.orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (f *fakeStore) UpdateOrderStatus(_ context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	for i := range f.orders {
		if f.orders[i].ID == orderID {
			f.orders[i].Status = status
			return nil
		}
	}
	return domain.ErrOrderNotFound
}

func (f *fakeStore) paymentByOrder(orderID uuid.UUID) *domain.Payment {
	for i := range f.payments {
		if f.payments[i].OrderID == orderID {
			return &f.payments[i]
		}
	}
	return nil
}

func (f *fakeStore) GetPaymentByOrderID(_ context.Context, orderID uuid.UUID) (*domain.Payment, error) {
	if p := f.paymentByOrder(orderID); p != nil {
		payment := *p
		return &payment, nil
	}
	return nil, nil
}

func (f *fakeStore) GetPaymentWithOwnerForUpdate(ctx context.Context, orderID uuid.UUID) (domain.Payment, uuid.UUID, error) {
	p := f.paymentByOrder(orderID)
	if p == nil {
		return domain.Payment{}, uuid.Nil, domain.ErrPaymentNotFound
	}
	order, err := f.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Payment{}, uuid.Nil, err
	}
	return *p, order.UserID, nil
}

func (f *fakeStore) GetPaymentForUpdate(_ context.Context, paymentID uuid.UUID) (domain.Payment, error) {
	for _, p := range f.payments {
		if p.ID == paymentID {
			return p, nil
		}
	}
	return domain.Payment{}, domain.ErrPaymentNotFound
}

func (f *fakeStore) InsertPayment(_ context.Context, payment domain.Payment) error {
	if f.paymentByOrder(payment.OrderID) != nil {
		return domain.ErrPaymentExists
	}
	f.payments = append(f.payments, payment)
	return nil
}

func (f *fakeStore) UpdatePaymentStatus(_ context.Context, paymentID uuid.UUID, status domain.PaymentStatus, paidAt *time.Time) error {
	for i := range f.payments {
		if f.payments[i].ID == paymentID {
			f.payments[i].Status = status
			if paidAt != nil {
				f.payments[i].PaidAt = paidAt
			}
			return nil
		}
	}
	return domain.ErrPaymentNotFound
}

func (f *fakeStore) ListOverduePaymentsForUpdate(_ context.Context, now time.Time) ([]domain.Payment, error) {
	var overdue []domain.Payment
	for _, p := range f.payments {
		if p.Status == domain.PaymentStatusPending && p.ExpiredAt.Before(now) {
			overdue = append(overdue, p)
		}
	}
	return overdue, nil
}

func (f *fakeStore) FindConflict(_ context.Context, slot domain.TimeSlot) (*domain.Occupancy, error) {
	for i := range f.occupancies {
		if f.occupancies[i].Slot.Overlaps(slot) {
			occ := f.occupancies[i]
			return &occ, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertAll(_ context.Context, occupancies []domain.Occupancy) error {
	for _, occ := range occupancies {
		for _, existing := range f.occupancies {
			if existing.Slot.Overlaps(occ.Slot) {
				return fmt.Errorf("occupancy for %d:00 - %d:00 overlaps: %w",
					occ.Slot.StartHour, occ.Slot.EndHour, domain.ErrSlotTaken)
			}
		}
		f.occupancies = append(f.occupancies, occ)
	}
	return nil
}
