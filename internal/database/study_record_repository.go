package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/reviewbot/pkg/models"
)

// StudyRecordRepository handles database operations for study records.
// It satisfies the review.StudyEventSource interface.
type StudyRecordRepository struct{}

// NewStudyRecordRepository creates a new repository instance
func NewStudyRecordRepository() *StudyRecordRepository {
	return &StudyRecordRepository{}
}

// studyRecordRow mirrors the study_records table; topics are a JSON array
type studyRecordRow struct {
	ID            int64     `db:"id"`
	UserID        int64     `db:"user_id"`
	Subject       string    `db:"subject"`
	Topics        string    `db:"topics"`
	StudyDate     time.Time `db:"study_date"`
	Understanding int       `db:"understanding"`
	CreatedAt     time.Time `db:"created_at"`
}

// FindStudyRecords returns the study records of a user inside a time window
func (r *StudyRecordRepository) FindStudyRecords(ctx context.Context, userID int64, start, end time.Time) ([]models.StudyRecord, error) {
	query := DB.Rebind(`
		SELECT * FROM study_records
		WHERE user_id = ?
		AND study_date >= ?
		AND study_date <= ?
		ORDER BY study_date ASC
	`)
	var rows []studyRecordRow
	err := DB.SelectContext(ctx, &rows, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get study records: %w", err)
	}

	records := make([]models.StudyRecord, 0, len(rows))
	for _, row := range rows {
		rec := models.StudyRecord{
			ID:            row.ID,
			UserID:        row.UserID,
			Subject:       row.Subject,
			StudyDate:     row.StudyDate,
			Understanding: row.Understanding,
			CreatedAt:     row.CreatedAt,
		}
		// Разбираем JSON-массив тем
		if row.Topics != "" {
			if err := json.Unmarshal([]byte(row.Topics), &rec.Topics); err != nil {
				return nil, fmt.Errorf("failed to parse topics for record %d: %w", row.ID, err)
			}
		}
		records = append(records, rec)
	}

	return records, nil
}

// Create inserts a new study record
func (r *StudyRecordRepository) Create(ctx context.Context, rec *models.StudyRecord) error {
	topicsJSON, err := json.Marshal(rec.Topics)
	if err != nil {
		return fmt.Errorf("failed to encode topics: %w", err)
	}

	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO study_records (user_id, subject, topics, study_date, understanding)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		err := DB.QueryRowContext(ctx, query,
			rec.UserID,
			rec.Subject,
			string(topicsJSON),
			rec.StudyDate,
			rec.Understanding,
		).Scan(&rec.ID)
		if err != nil {
			return fmt.Errorf("failed to create study record: %w", err)
		}
		return nil
	}

	query := `
		INSERT INTO study_records (user_id, subject, topics, study_date, understanding)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := DB.ExecContext(ctx, query,
		rec.UserID,
		rec.Subject,
		string(topicsJSON),
		rec.StudyDate,
		rec.Understanding,
	)
	if err != nil {
		return fmt.Errorf("failed to create study record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	rec.ID = id

	return nil
}
