package models

import "time"

// ReviewSession is an aggregate record of a batch of reviews performed
// together. It is a reporting artifact and is never consulted by the
// scheduling algorithm itself.
type ReviewSession struct {
	ID                   string    `json:"id" db:"id"`
	UserID               int64     `json:"user_id" db:"user_id"`
	SessionDate          time.Time `json:"session_date" db:"session_date"`
	ItemCount            int       `json:"item_count" db:"item_count"`
	CompletedCount       int       `json:"completed_count" db:"completed_count"`
	DurationMinutes      int       `json:"duration_minutes" db:"duration_minutes"`
	AverageUnderstanding float64   `json:"average_understanding" db:"average_understanding"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
}
