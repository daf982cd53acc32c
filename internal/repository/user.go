package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	inErrors "github.com/teewear/storefront/internal/errors"
)

const (
	insertUserSQL = `INSERT INTO users (id, username, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, email, password, created_at, updated_at`

	findUserByEmailSQL = `SELECT id, username, email, password, created_at, updated_at
		FROM users
		WHERE email = $1`
)

// uniqueViolation is the postgres error code raised by the users email
// unique constraint.
const uniqueViolation = "23505"

type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

type InsertUserParams struct {
	ID       uuid.UUID
	Username string
	Email    string
	Password string
}

func (r *UserRepository) InsertUser(c context.Context, arg InsertUserParams) (User, error) {
	rows, err := r.pool.Query(c, insertUserSQL, arg.ID, arg.Username, arg.Email, arg.Password)
	if err != nil {
		return User{}, fmt.Errorf("failed inserting user with error=%w", err)
	}
	user, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, inErrors.ErrEmailTaken
		}
		return User{}, fmt.Errorf("failed inserting user with error=%w", err)
	}
	return user, nil
}

func (r *UserRepository) FindUserByEmail(c context.Context, email string) (User, error) {
	rows, err := r.pool.Query(c, findUserByEmailSQL, email)
	if err != nil {
		return User{}, fmt.Errorf("failed finding user by email with error=%w", err)
	}
	user, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, inErrors.ErrUserNotFound
		}
		return User{}, fmt.Errorf("failed finding user by email with error=%w", err)
	}
	return user, nil
}

func scanUser(row pgx.CollectableRow) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
