package models

import "time"

// StudyRecord is one historical study event: a subject studied on a date,
// the topics it touched and the self-reported understanding (1-5)
type StudyRecord struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	Subject       string    `json:"subject" db:"subject"`
	Topics        []string  `json:"topics" db:"-"` // Stored as a JSON array in the topics column
	StudyDate     time.Time `json:"study_date" db:"study_date"`
	Understanding int       `json:"understanding" db:"understanding"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
