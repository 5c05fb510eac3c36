package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kirinyoku/showtime/internal/domain"
)

type UserRepo struct {
	pool DB
	db   DB
}

func (r *UserRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const userColumns = `id, name, email, phone, password_hash, created_at, wallet_balance`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.CreatedAt, &u.WalletBalance); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetUser(ctx context.Context, id string) (*domain.User, error) {
	const op = "postgres.UserRepo.GetUser"

	u, err := scanUser(r.handle().QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return u, nil
}

// GetUserByEmail looks a user up by email, ignoring case.
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "postgres.UserRepo.GetUserByEmail"

	u, err := scanUser(r.handle().QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower(trim($1))`,
		email,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return u, nil
}

// CreateUser inserts a user. A taken id or email yields repository.ErrConflict.
func (r *UserRepo) CreateUser(ctx context.Context, u *domain.User) error {
	const op = "postgres.UserRepo.CreateUser"

	_, err := r.handle().Exec(ctx,
		`INSERT INTO users(`+userColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Name, u.Email, u.Phone, u.PasswordHash, u.CreatedAt, u.WalletBalance,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return nil
}
