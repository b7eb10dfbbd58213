package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/dotcart/internal/store/core"
)

type addressRepo struct{ pool *pgxpool.Pool }

const addressCols = `id, store_id, line, city, state, zip_code, active`

func scanAddress(row pgx.Row) (*core.Address, error) {
	var a core.Address
	err := row.Scan(&a.ID, &a.StoreID, &a.Line, &a.City, &a.State, &a.ZipCode, &a.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *addressRepo) Create(ctx context.Context, a *core.Address) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO address (store_id, line, city, state, zip_code, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		a.StoreID, a.Line, a.City, a.State, a.ZipCode, a.Active,
	).Scan(&a.ID)
}

func (r *addressRepo) GetByID(ctx context.Context, id int64) (*core.Address, error) {
	return scanAddress(r.pool.QueryRow(ctx,
		`SELECT `+addressCols+` FROM address WHERE id = $1`, id))
}

func (r *addressRepo) ListByStore(ctx context.Context, storeID int64) ([]*core.Address, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+addressCols+` FROM address WHERE store_id = $1 ORDER BY id`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*core.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *addressRepo) Update(ctx context.Context, a *core.Address) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE address
		   SET store_id = $2, line = $3, city = $4, state = $5,
		       zip_code = $6, active = $7
		 WHERE id = $1`,
		a.ID, a.StoreID, a.Line, a.City, a.State, a.ZipCode, a.Active,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *addressRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM address WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}
