package pg

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/dotcart/internal/store/core"
)

type productRepo struct{ pool *pgxpool.Pool }

const productCols = `id, store_id, brand_id, name, price, image_url, deleted`

func scanProduct(row pgx.Row) (*core.Product, error) {
	var p core.Product
	err := row.Scan(&p.ID, &p.StoreID, &p.BrandID, &p.Name, &p.Price, &p.ImageURL, &p.Deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Create(ctx context.Context, p *core.Product) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO product (store_id, brand_id, name, price, image_url, deleted)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		p.StoreID, p.BrandID, p.Name, p.Price, p.ImageURL, p.Deleted,
	).Scan(&p.ID)
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*core.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productCols+` FROM product WHERE id = $1`, id))
}

// List arma el WHERE dinámicamente según el filtro (hub de filtrado de
// productos: sirve tanto a dueños como a visitantes).
func (r *productRepo) List(ctx context.Context, f core.ProductFilter) ([]*core.Product, error) {
	q := `SELECT p.id, p.store_id, p.brand_id, p.name, p.price, p.image_url, p.deleted
	        FROM product p`
	var (
		args  []any
		where []string
	)
	if f.UserID != nil {
		q += ` JOIN store s ON s.id = p.store_id`
		args = append(args, *f.UserID)
		where = append(where, `s.user_id = $`+strconv.Itoa(len(args)))
	}
	if f.StoreID != nil {
		args = append(args, *f.StoreID)
		where = append(where, `p.store_id = $`+strconv.Itoa(len(args)))
	}
	if f.Deleted != nil {
		args = append(args, *f.Deleted)
		where = append(where, `p.deleted = $`+strconv.Itoa(len(args)))
	}
	for i, w := range where {
		if i == 0 {
			q += ` WHERE ` + w
		} else {
			q += ` AND ` + w
		}
	}
	q += ` ORDER BY p.id`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*core.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *productRepo) Update(ctx context.Context, p *core.Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE product
		   SET store_id = $2, brand_id = $3, name = $4, price = $5,
		       image_url = $6, deleted = $7
		 WHERE id = $1`,
		p.ID, p.StoreID, p.BrandID, p.Name, p.Price, p.ImageURL, p.Deleted,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *productRepo) SetDeleted(ctx context.Context, productID int64, deleted bool, userID int64) (*core.Product, error) {
	// El UPDATE chequea ownership vía el JOIN implícito con store.
	return scanProduct(r.pool.QueryRow(ctx, `
		UPDATE product p
		   SET deleted = $2
		  FROM store s
		 WHERE p.id = $1
		   AND s.id = p.store_id
		   AND s.user_id = $3
		RETURNING p.id, p.store_id, p.brand_id, p.name, p.price, p.image_url, p.deleted`,
		productID, deleted, userID,
	))
}
