package database

import (
	"context"
	"fmt"

	"github.com/example/reviewbot/pkg/models"
	"github.com/google/uuid"
)

// ReviewSessionRepository handles database operations for review sessions
type ReviewSessionRepository struct{}

// NewReviewSessionRepository creates a new repository instance
func NewReviewSessionRepository() *ReviewSessionRepository {
	return &ReviewSessionRepository{}
}

// Create inserts a new session record, assigning an ID if none is set
func (r *ReviewSessionRepository) Create(ctx context.Context, session *models.ReviewSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	query := DB.Rebind(`
		INSERT INTO review_sessions (
			id, user_id, session_date, item_count,
			completed_count, duration_minutes, average_understanding
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := DB.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.SessionDate,
		session.ItemCount,
		session.CompletedCount,
		session.DurationMinutes,
		session.AverageUnderstanding,
	)
	if err != nil {
		return fmt.Errorf("failed to create review session: %w", err)
	}

	return nil
}

// GetRecentByUser returns the latest sessions of a user, newest first
func (r *ReviewSessionRepository) GetRecentByUser(ctx context.Context, userID int64, limit int) ([]models.ReviewSession, error) {
	query := DB.Rebind(`
		SELECT * FROM review_sessions
		WHERE user_id = ?
		ORDER BY session_date DESC
		LIMIT ?
	`)
	var sessions []models.ReviewSession
	err := DB.SelectContext(ctx, &sessions, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get review sessions: %w", err)
	}
	return sessions, nil
}

// CountCompletedReviews returns the total number of reviews a user has
// completed across all recorded sessions
func (r *ReviewSessionRepository) CountCompletedReviews(ctx context.Context, userID int64) (int, error) {
	query := DB.Rebind(`
		SELECT COALESCE(SUM(completed_count), 0) FROM review_sessions
		WHERE user_id = ?
	`)
	var total int
	err := DB.GetContext(ctx, &total, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed reviews: %w", err)
	}
	return total, nil
}
