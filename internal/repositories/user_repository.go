package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/learnsphere/backend/internal/models"
	"go.uber.org/zap"
)

type usersRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUsersRepository creates a new instance of the users repository
func NewUsersRepository(db *sql.DB, logger *zap.Logger) *usersRepository {
	return &usersRepository{
		db:     db,
		logger: logger,
	}
}

// Put writes or overwrites the user snapshot keyed by user id
func (r *usersRepository) Put(ctx context.Context, user *models.User) error {
	preferences, err := json.Marshal(user.Preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal user preferences: %w", err)
	}
	progress, err := json.Marshal(user.Progress)
	if err != nil {
		return fmt.Errorf("failed to marshal user progress: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO user_data
			(id, name, email, preferences, progress, joined_at, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		string(preferences),
		string(progress),
		user.JoinedAt,
		time.Now().UTC(),
	)
	if err != nil {
		r.logger.Error("failed to put user", zap.Error(err), zap.String("user_id", user.ID))
		return fmt.Errorf("failed to put user: %w", err)
	}

	return nil
}

// GetByID retrieves the cached user snapshot by id. Returns (nil, nil)
// when no snapshot exists.
func (r *usersRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, email, preferences, progress, joined_at
		FROM user_data
		WHERE id = ?
	`

	var user models.User
	var preferences, progress string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&preferences,
		&progress,
		&user.JoinedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to query user", zap.Error(err), zap.String("user_id", id))
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if err := json.Unmarshal([]byte(preferences), &user.Preferences); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user preferences: %w", err)
	}
	if err := json.Unmarshal([]byte(progress), &user.Progress); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user progress: %w", err)
	}

	return &user, nil
}

// Clear empties the user_data table
func (r *usersRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM user_data"); err != nil {
		return fmt.Errorf("failed to clear user data: %w", err)
	}
	return nil
}
