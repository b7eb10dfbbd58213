package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/dotcart/internal/store/core"
)

type storeBrandRepo struct{ pool *pgxpool.Pool }

func (r *storeBrandRepo) Get(ctx context.Context, storeID, brandID int64) (*core.StoreBrand, error) {
	var sb core.StoreBrand
	err := r.pool.QueryRow(ctx,
		`SELECT store_id, brand_id FROM store_brand WHERE store_id = $1 AND brand_id = $2`,
		storeID, brandID,
	).Scan(&sb.StoreID, &sb.BrandID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &sb, nil
}

func (r *storeBrandRepo) Create(ctx context.Context, sb *core.StoreBrand) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO store_brand (store_id, brand_id) VALUES ($1, $2)`,
		sb.StoreID, sb.BrandID,
	)
	if isUniqueViolation(err) {
		return core.ErrConflict
	}
	return err
}

func (r *storeBrandRepo) Delete(ctx context.Context, storeID, brandID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM store_brand WHERE store_id = $1 AND brand_id = $2`,
		storeID, brandID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *storeBrandRepo) ListBrandsByStore(ctx context.Context, storeID int64) ([]*core.Brand, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT b.id, b.name
		   FROM brand b
		   JOIN store_brand sb ON sb.brand_id = b.id
		  WHERE sb.store_id = $1
		  ORDER BY b.name`, storeID,
	)
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
