package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/reviewbot/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// GetByID returns a user by Telegram ID, or nil when unknown
func (r *UserRepository) GetByID(ctx context.Context, telegramID int64) (*models.User, error) {
	query := DB.Rebind(`
		SELECT telegram_id, username, first_name, last_name, is_admin,
		       notification_enabled, notification_hour, reviews_per_day,
		       created_at, updated_at
		FROM users
		WHERE telegram_id = ?
	`)
	var user models.User
	err := DB.GetContext(ctx, &user, query, telegramID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetOrCreate returns the user for a Telegram ID, registering them with
// default settings on first contact
func (r *UserRepository) GetOrCreate(ctx context.Context, telegramID int64, username, firstName, lastName string) (*models.User, error) {
	user, err := r.GetByID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	query := DB.Rebind(`
		INSERT INTO users (telegram_id, username, first_name, last_name)
		VALUES (?, ?, ?, ?)
	`)
	_, err = DB.ExecContext(ctx, query, telegramID, username, firstName, lastName)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return r.GetByID(ctx, telegramID)
}

// GetUsersForNotification returns users who have notifications enabled
// for the given hour of the day
func (r *UserRepository) GetUsersForNotification(ctx context.Context, hour int) ([]models.User, error) {
	query := DB.Rebind(`
		SELECT telegram_id, username, first_name, last_name, is_admin,
		       notification_enabled, notification_hour, reviews_per_day,
		       created_at, updated_at
		FROM users
		WHERE notification_enabled = true AND notification_hour = ?
	`)
	var users []models.User
	err := DB.SelectContext(ctx, &users, query, hour)
	if err != nil {
		return nil, fmt.Errorf("failed to get users for notification: %w", err)
	}
	return users, nil
}

// UpdateSettings persists the user's notification and batch preferences
func (r *UserRepository) UpdateSettings(ctx context.Context, user *models.User) error {
	query := DB.Rebind(`
		UPDATE users SET
			notification_enabled = ?,
			notification_hour = ?,
			reviews_per_day = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE telegram_id = ?
	`)
	result, err := DB.ExecContext(ctx, query,
		user.NotificationEnabled,
		user.NotificationHour,
		user.ReviewsPerDay,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user settings: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %d not found", user.ID)
	}

	return nil
}
