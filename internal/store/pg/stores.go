package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/dotcart/internal/store/core"
)

type storeRepo struct{ pool *pgxpool.Pool }

const storeCols = `id, user_id, name, logo_url, active`

func scanStore(row pgx.Row) (*core.Store, error) {
	var s core.Store
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.LogoURL, &s.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func collectStores(rows pgx.Rows) ([]*core.Store, error) {
	defer rows.Close()
	var out []*core.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *storeRepo) Create(ctx context.Context, s *core.Store) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO store (user_id, name, logo_url, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		s.UserID, s.Name, s.LogoURL, s.Active,
	).Scan(&s.ID)
	if isUniqueViolation(err) {
		return core.ErrConflict
	}
	return err
}

func (r *storeRepo) GetByID(ctx context.Context, id int64) (*core.Store, error) {
	return scanStore(r.pool.QueryRow(ctx,
		`SELECT `+storeCols+` FROM store WHERE id = $1`, id))
}

func (r *storeRepo) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM store WHERE name = $1)`, name,
	).Scan(&exists)
	return exists, err
}

func (r *storeRepo) ListByUser(ctx context.Context, userID int64) ([]*core.Store, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+storeCols+` FROM store WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	return collectStores(rows)
}

func (r *storeRepo) ListAll(ctx context.Context) ([]*core.Store, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+storeCols+` FROM store ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectStores(rows)
}

func (r *storeRepo) Update(ctx context.Context, s *core.Store) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE store SET name = $2, logo_url = $3, active = $4 WHERE id = $1`,
		s.ID, s.Name, s.LogoURL, s.Active,
	)
	if isUniqueViolation(err) {
		return core.ErrConflict
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *storeRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM store WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}
