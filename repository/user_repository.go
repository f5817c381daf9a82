package repository

import (
	"context"
	"fmt"

	"scorebot/database"
	"scorebot/models"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// GetByID retrieves a user by their Slack user ID
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT user_id, user_name, user_handle, banned_until, created_at
		FROM users
		WHERE user_id = $1
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&user.UserID,
		&user.UserName,
		&user.UserHandle,
		&user.BannedUntil,
		&user.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	return &user, nil
}

// GetByHandle retrieves a user by their derived lowercase handle
func (r *UserRepository) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	query := `
		SELECT user_id, user_name, user_handle, banned_until, created_at
		FROM users
		WHERE user_handle = $1
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, handle).Scan(
		&user.UserID,
		&user.UserName,
		&user.UserHandle,
		&user.BannedUntil,
		&user.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by handle %s: %w", handle, err)
	}

	return &user, nil
}

// Create inserts a new user. Two concurrent votes for the same brand-new user
// can both attempt the insert, so the conflict on user_id is ignored rather
// than treated as an error.
func (r *UserRepository) Create(ctx context.Context, userID, userName string) error {
	query := `
		INSERT INTO users (user_id, user_name, user_handle)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, query, userID, userName, models.Handle(userName)); err != nil {
		return fmt.Errorf("failed to create user %s: %w", userID, err)
	}

	return nil
}
