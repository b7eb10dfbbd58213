package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/dotcart/internal/store/core"
)

type userRepo struct{ pool *pgxpool.Pool }

const userCols = `id, email, password_hash, email_confirmed, recovery_token,
       first_name, last_name, avatar_url`

func scanUser(row pgx.Row) (*core.User, error) {
	var u core.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.EmailConfirmed,
		&u.RecoveryToken, &u.FirstName, &u.LastName, &u.AvatarURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *core.User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO app_user (email, password_hash, email_confirmed, recovery_token,
		                      first_name, last_name, avatar_url)
		VALUES (lower($1), $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		u.Email, u.PasswordHash, u.EmailConfirmed, u.RecoveryToken,
		u.FirstName, u.LastName, u.AvatarURL,
	).Scan(&u.ID)
	if isUniqueViolation(err) {
		return core.ErrConflict
	}
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*core.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE id = $1`, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*core.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE email = lower($1)`, email))
}

func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM app_user WHERE email = lower($1))`, email,
	).Scan(&exists)
	return exists, err
}

func (r *userRepo) Update(ctx context.Context, u *core.User) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE app_user
		   SET password_hash   = $2,
		       email_confirmed = $3,
		       recovery_token  = $4,
		       first_name      = $5,
		       last_name       = $6,
		       avatar_url      = $7
		 WHERE id = $1`,
		u.ID, u.PasswordHash, u.EmailConfirmed, u.RecoveryToken,
		u.FirstName, u.LastName, u.AvatarURL,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}
