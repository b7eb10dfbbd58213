package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/dotcart/internal/store/core"
)

type brandRepo struct{ pool *pgxpool.Pool }

func (r *brandRepo) Create(ctx context.Context, b *core.Brand) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO brand (name) VALUES ($1) RETURNING id`, b.Name,
	).Scan(&b.ID)
	if isUniqueViolation(err) {
		return core.ErrConflict
	}
	return err
}

func (r *brandRepo) GetByID(ctx context.Context, id int64) (*core.Brand, error) {
	var b core.Brand
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM brand WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *brandRepo) ListAll(ctx context.Context) ([]*core.Brand, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM brand ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*core.Brand
	for rows.Next() {
		var b core.Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
