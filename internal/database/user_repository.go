package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/burnoutberni/constellate-realtime/internal/metrics"
)

// ErrUserNotFound is returned when no user exists for the given id.
var ErrUserNotFound = errors.New("user not found")

// User is the account record consulted at connection admission.
type User struct {
	ID          uuid.UUID
	Username    string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserRepo reads user accounts from PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) GetByID(ctx context.Context, userID uuid.UUID) (*User, error) {
	start := time.Now()
	defer func() {
		metrics.DBQueryDuration.WithLabelValues("get_user_by_id").Observe(time.Since(start).Seconds())
	}()

	var user User
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, display_name, created_at, updated_at
		FROM users
		WHERE id = $1
	`, userID).Scan(&user.ID, &user.Username, &user.DisplayName, &user.CreatedAt, &user.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// Exists reports whether a user account exists. Used by the admission layer
// to validate session-resolved user ids before binding them to a stream.
func (r *UserRepo) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	start := time.Now()
	defer func() {
		metrics.DBQueryDuration.WithLabelValues("user_exists").Observe(time.Since(start).Seconds())
	}()

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}
