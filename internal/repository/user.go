package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/deppfellow/placerate/internal/model"
	"github.com/deppfellow/placerate/internal/sqlerr"
)

const usersTable = sqlerr.TablePrefix + "users:"

type UserRepository struct {
	store
}

func NewUserRepository(pool *pgxpool.Pool, timeout time.Duration) *UserRepository {
	return &UserRepository{store{pool: pool, timeout: timeout}}
}

// CreateUser stores the password as given. Hashing is not implemented.
func (r *UserRepository) CreateUser(ctx context.Context, username, email, password string) (userID int64, err error) {
	defer func(start time.Time) { err = observe("create_user", "users", start, err) }(time.Now())

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err = r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password)
		VALUES ($1, $2, $3)
		RETURNING user_id`,
		username, email, password,
	).Scan(&userID)
	if err != nil {
		return 0, errors.Wrap(err, "create user")
	}
	return userID, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (user model.User, err error) {
	defer func(start time.Time) { err = observe("get_user_by_email", "users", start, err) }(time.Now())

	return r.getUser(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) GetUserByID(ctx context.Context, userID int64) (user model.User, err error) {
	defer func(start time.Time) { err = observe("get_user", "users", start, err) }(time.Now())

	return r.getUser(ctx, `WHERE user_id = $1`, userID)
}

func (r *UserRepository) getUser(ctx context.Context, where string, arg any) (model.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT user_id, username, email, password, created_at FROM users `+where, arg)
	if err != nil {
		return model.User{}, errors.Wrap(err, "get user")
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[model.User])
	if err != nil {
		return model.User{}, errors.Wrap(err, usersTable)
	}
	return user, nil
}
