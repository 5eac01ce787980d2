package postgres

import (
	"context"
	"fmt"

	"github.com/Dandy22/Arenaku/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FieldRepository struct {
	pool *pgxpool.Pool
}

func NewFieldRepository(pool *pgxpool.Pool) *FieldRepository {
	return &FieldRepository{pool: pool}
}

func (r *FieldRepository) InsertField(ctx context.Context, field domain.Field) error {
	const stmt = `
INSERT INTO fields (id, name, price, created_at)
VALUES ($1, $2, $3, $4)`

	_, err := r.exec(ctx, stmt, field.ID, field.Name, field.Price, field.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert field: %w", err)
	}
	return nil
}

func (r *FieldRepository) ListFields(ctx context.Context) ([]domain.Field, error) {
	const query = `SELECT id, name, price, created_at FROM fields ORDER BY created_at, name`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	defer rows.Close()

	var fields []domain.Field
	for rows.Next() {
		var f domain.Field
		if err := rows.Scan(&f.ID, &f.Name, &f.Price, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

func (r *FieldRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *FieldRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
