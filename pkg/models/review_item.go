package models

import "time"

// ReviewItem tracks the memory state for one (user, subject, topic) unit
// on the forgetting curve
type ReviewItem struct {
	ID                   int64     `json:"id" db:"id"`
	UserID               int64     `json:"user_id" db:"user_id"`
	Subject              string    `json:"subject" db:"subject"`
	Topic                string    `json:"topic" db:"topic"`
	LastStudyDate        time.Time `json:"last_study_date" db:"last_study_date"`
	NextReviewDate       time.Time `json:"next_review_date" db:"next_review_date"`
	ReviewCount          int       `json:"review_count" db:"review_count"`                     // Number of completed reviews
	Difficulty           int       `json:"difficulty" db:"difficulty"`                         // 1-5, inverse of understanding at creation
	Understanding        int       `json:"understanding" db:"understanding"`                   // 1-5, latest self-reported comprehension
	Priority             int       `json:"priority" db:"priority"`                             // 0-100 urgency score
	ForgettingCurveStage int       `json:"forgetting_curve_stage" db:"forgetting_curve_stage"` // 1-7
	IntervalDays         int       `json:"interval_days" db:"interval_days"`                   // Current review interval in days
	IsCompleted          bool      `json:"is_completed" db:"is_completed"`                     // Retired from scheduling when true
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}
