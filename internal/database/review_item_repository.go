package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/reviewbot/pkg/models"
)

// ReviewItemRepository handles database operations for review items.
// It satisfies the review.ItemStore interface.
type ReviewItemRepository struct{}

// NewReviewItemRepository creates a new repository instance
func NewReviewItemRepository() *ReviewItemRepository {
	return &ReviewItemRepository{}
}

// FindItemsByUser returns every review item tracked for a user
func (r *ReviewItemRepository) FindItemsByUser(ctx context.Context, userID int64) ([]models.ReviewItem, error) {
	query := DB.Rebind(`
		SELECT * FROM review_items
		WHERE user_id = ?
		ORDER BY next_review_date ASC
	`)
	var items []models.ReviewItem
	err := DB.SelectContext(ctx, &items, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review items: %w", err)
	}
	return items, nil
}

// FindDueItems returns items whose next review date has arrived and that
// are not retired from scheduling
func (r *ReviewItemRepository) FindDueItems(ctx context.Context, userID int64, asOf time.Time) ([]models.ReviewItem, error) {
	query := DB.Rebind(`
		SELECT * FROM review_items
		WHERE user_id = ?
		AND next_review_date <= ?
		AND is_completed = false
		ORDER BY next_review_date ASC
	`)
	var items []models.ReviewItem
	err := DB.SelectContext(ctx, &items, query, userID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to get due items: %w", err)
	}
	return items, nil
}

// FindItemByID returns one review item, or nil when it does not exist
func (r *ReviewItemRepository) FindItemByID(ctx context.Context, id int64) (*models.ReviewItem, error) {
	query := DB.Rebind("SELECT * FROM review_items WHERE id = ?")
	var item models.ReviewItem
	err := DB.GetContext(ctx, &item, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review item: %w", err)
	}
	return &item, nil
}

// SaveItem inserts a new review item and fills in the assigned ID
func (r *ReviewItemRepository) SaveItem(ctx context.Context, item *models.ReviewItem) error {
	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO review_items (
				user_id, subject, topic, last_study_date, next_review_date,
				review_count, difficulty, understanding, priority,
				forgetting_curve_stage, interval_days, is_completed
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id
		`
		err := DB.QueryRowContext(ctx, query,
			item.UserID,
			item.Subject,
			item.Topic,
			item.LastStudyDate,
			item.NextReviewDate,
			item.ReviewCount,
			item.Difficulty,
			item.Understanding,
			item.Priority,
			item.ForgettingCurveStage,
			item.IntervalDays,
			item.IsCompleted,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create review item: %w", err)
		}
		return nil
	}

	// SQLite не поддерживает RETURNING, используем LastInsertId
	query := `
		INSERT INTO review_items (
			user_id, subject, topic, last_study_date, next_review_date,
			review_count, difficulty, understanding, priority,
			forgetting_curve_stage, interval_days, is_completed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := DB.ExecContext(ctx, query,
		item.UserID,
		item.Subject,
		item.Topic,
		item.LastStudyDate,
		item.NextReviewDate,
		item.ReviewCount,
		item.Difficulty,
		item.Understanding,
		item.Priority,
		item.ForgettingCurveStage,
		item.IntervalDays,
		item.IsCompleted,
	)
	if err != nil {
		return fmt.Errorf("failed to create review item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	item.ID = id

	return nil
}

// UpdateItem persists the scheduling state of an existing review item
func (r *ReviewItemRepository) UpdateItem(ctx context.Context, item *models.ReviewItem) error {
	query := DB.Rebind(`
		UPDATE review_items SET
			last_study_date = ?,
			next_review_date = ?,
			review_count = ?,
			understanding = ?,
			priority = ?,
			forgetting_curve_stage = ?,
			interval_days = ?,
			is_completed = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`)
	result, err := DB.ExecContext(ctx, query,
		item.LastStudyDate,
		item.NextReviewDate,
		item.ReviewCount,
		item.Understanding,
		item.Priority,
		item.ForgettingCurveStage,
		item.IntervalDays,
		item.IsCompleted,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update review item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("review item %d not found", item.ID)
	}

	return nil
}
