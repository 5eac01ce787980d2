package app

import (
	"context"
	"fmt"

	"github.com/Dandy22/Arenaku/internal/clock"
	"github.com/Dandy22/Arenaku/internal/domain"
	"github.com/google/uuid"
)

type FieldRepository interface {
	InsertField(ctx context.Context, field domain.Field) error
	ListFields(ctx context.Context) ([]domain.Field, error)
}

type FieldService struct {
	repo  FieldRepository
	clock clock.Clock
}

func NewFieldService(repo FieldRepository, clk clock.Clock) *FieldService {
	return &FieldService{
		repo:  repo,
		clock: clk,
	}
}

type CreateFieldInput struct {
	Name  string
	Price int64
}

// CreateField registers a bookable field with its current hourly price.
func (s *FieldService) CreateField(ctx context.Context, role domain.Role, in CreateFieldInput) (domain.Field, error) {
	if role != domain.RoleVendor && role != domain.RoleAdmin {
		return domain.Field{}, fmt.Errorf("only vendors and admins can create fields: %w", domain.ErrForbiddenRole)
	}
	if in.Name == "" {
		return domain.Field{}, domain.ErrFieldNameRequired
	}
	if in.Price <= 0 {
		return domain.Field{}, domain.ErrInvalidPrice
	}

	field := domain.Field{
		ID:        uuid.New(),
		Name:      in.Name,
		Price:     in.Price,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.InsertField(ctx, field); err != nil {
		return domain.Field{}, err
	}
	return field, nil
}

func (s *FieldService) ListFields(ctx context.Context) ([]domain.Field, error) {
	return s.repo.ListFields(ctx)
}
