package app

import (
	"context"
	"fmt"

	"github.com/Dandy22/Arenaku/internal/clock"
	"github.com/Dandy22/Arenaku/internal/domain"
	"github.com/google/uuid"
)

type CartRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetField(ctx context.Context, fieldID uuid.UUID) (domain.Field, error)
	FindCartConflict(ctx context.Context, userID uuid.UUID, slot domain.TimeSlot) (*domain.CartItem, error)
	ListCartItems(ctx context.Context, userID uuid.UUID) ([]domain.CartItem, error)
	GetCartItem(ctx context.Context, itemID uuid.UUID) (domain.CartItem, error)
	InsertCartItem(ctx context.Context, item domain.CartItem) error
	DeleteCartItem(ctx context.Context, itemID uuid.UUID) error
}

// OccupancyFinder looks up confirmed occupancy overlapping a candidate slot.
type OccupancyFinder interface {
	FindConflict(ctx context.Context, slot domain.TimeSlot) (*domain.Occupancy, error)
}

type CartService struct {
	repo  CartRepository
	occ   OccupancyFinder
	clock clock.Clock
}

func NewCartService(repo CartRepository, occ OccupancyFinder, clk clock.Clock) *CartService {
	return &CartService{
		repo:  repo,
		occ:   occ,
		clock: clk,
	}
}

type AddToCartInput struct {
	FieldID   uuid.UUID
	Date      string
	StartHour int
	EndHour   int
}

// AddToCart validates the candidate slot against the caller's own cart and
// against confirmed occupancy, then persists a new cart item. Only PAID
// occupancy blocks here; other customers' carts and unpaid orders do not.
func (s *CartService) AddToCart(ctx context.Context, userID uuid.UUID, role domain.Role, in AddToCartInput) (domain.CartItem, error) {
	if role != domain.RoleCustomer {
		return domain.CartItem{}, fmt.Errorf("only customers can add items to cart: %w", domain.ErrForbiddenRole)
	}

	date, err := ParseDate(in.Date)
	if err != nil {
		return domain.CartItem{}, err
	}

	slot := domain.TimeSlot{
		FieldID:   in.FieldID,
		Date:      date,
		StartHour: in.StartHour,
		EndHour:   in.EndHour,
	}
	if err := slot.Validate(); err != nil {
		return domain.CartItem{}, err
	}

	now := s.clock.Now()
	if slot.Date.Before(domain.NormalizeDate(now)) {
		return domain.CartItem{}, fmt.Errorf("cannot add past dates to cart: %w", domain.ErrInvalidInterval)
	}

	var item domain.CartItem

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetField(txCtx, slot.FieldID); err != nil {
			return err
		}

		cartConflict, err := s.repo.FindCartConflict(txCtx, userID, slot)
		if err != nil {
			return err
		}
		if cartConflict != nil {
			return domain.ErrDuplicateInCart
		}

		occupied, err := s.occ.FindConflict(txCtx, slot)
		if err != nil {
			return err
		}
		if occupied != nil {
			return fmt.Errorf("time slot %d:00 - %d:00 is already booked: %w",
				slot.StartHour, slot.EndHour, domain.ErrSlotTaken)
		}

		item = domain.CartItem{
			ID:        uuid.New(),
			UserID:    userID,
			Slot:      slot,
			CreatedAt: now,
		}
		return s.repo.InsertCartItem(txCtx, item)
	})
	if err != nil {
		return domain.CartItem{}, err
	}

	return item, nil
}

// RemoveFromCart deletes a single item after verifying ownership.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.repo.GetCartItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return fmt.Errorf("cannot remove another user's cart item: %w", domain.ErrNotAuthorized)
	}
	return s.repo.DeleteCartItem(ctx, itemID)
}

// GetCart returns the user's cart items in insertion order.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]domain.CartItem, error) {
	return s.repo.ListCartItems(ctx, userID)
}
