package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/example/reviewbot/internal/database"
	"github.com/example/reviewbot/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the study-log import configuration
type ImportConfig struct {
	FilePath            string // Path to the Excel or CSV file
	SubjectColumn       string // Column with the subject
	TopicsColumn        string // Column with the topic list (comma or semicolon separated)
	DateColumn          string // Column with the study date
	UnderstandingColumn string // Column with the self-reported understanding (1-5)
	SheetName           string // Name of the sheet to import
	StartRow            int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SubjectColumn:       "A",
		TopicsColumn:        "B",
		DateColumn:          "C",
		UnderstandingColumn: "D",
		SheetName:           "Sheet1",
		StartRow:            2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Supported study-date layouts, tried in order
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"01/02/2006",
	time.RFC3339,
}

// ImportStudyRecords imports a user's study log from an Excel or CSV file
func ImportStudyRecords(ctx context.Context, config ImportConfig, userID int64) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(ctx, config, userID)
	}
	return importFromExcel(ctx, config, userID)
}

// importFromExcel imports study records from an Excel file
func importFromExcel(ctx context.Context, config ImportConfig, userID int64) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %v", config.SheetName, err)
	}

	repo := database.NewStudyRecordRepository()
	result := &ImportResult{}

	for i, row := range rows {
		rowNum := i + 1
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++

		rec, err := parseRecordRow(row, config, userID)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		if err := repo.Create(ctx, rec); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.Created++
	}

	return result, nil
}

// importFromCSV imports study records from a CSV file
func importFromCSV(ctx context.Context, config ImportConfig, userID int64) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	repo := database.NewStudyRecordRepository()
	result := &ImportResult{}
	rowNum := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %v", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++

		rec, err := parseRecordRow(row, config, userID)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		if err := repo.Create(ctx, rec); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.Created++
	}

	return result, nil
}

// parseRecordRow converts one spreadsheet row into a study record
func parseRecordRow(row []string, config ImportConfig, userID int64) (*models.StudyRecord, error) {
	var subject, topics, date, understanding string

	if colIdx := columnToIndex(config.SubjectColumn); colIdx < len(row) {
		subject = strings.TrimSpace(row[colIdx])
	}
	if colIdx := columnToIndex(config.TopicsColumn); colIdx < len(row) {
		topics = strings.TrimSpace(row[colIdx])
	}
	if colIdx := columnToIndex(config.DateColumn); colIdx < len(row) {
		date = strings.TrimSpace(row[colIdx])
	}
	if colIdx := columnToIndex(config.UnderstandingColumn); colIdx < len(row) {
		understanding = strings.TrimSpace(row[colIdx])
	}

	if subject == "" {
		return nil, fmt.Errorf("empty subject")
	}

	topicList := splitTopics(topics)
	if len(topicList) == 0 {
		return nil, fmt.Errorf("no topics listed")
	}

	studyDate, err := parseStudyDate(date)
	if err != nil {
		return nil, err
	}

	// Понимание по умолчанию среднее
	level := 3
	if understanding != "" {
		level, err = strconv.Atoi(understanding)
		if err != nil || level < 1 || level > 5 {
			return nil, fmt.Errorf("invalid understanding %q", understanding)
		}
	}

	return &models.StudyRecord{
		UserID:        userID,
		Subject:       subject,
		Topics:        topicList,
		StudyDate:     studyDate,
		Understanding: level,
	}, nil
}

// splitTopics breaks a topic cell into individual topic names
func splitTopics(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var topics []string
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}

// parseStudyDate tries the supported date layouts in order
func parseStudyDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty study date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// columnToIndex converts a column letter (A, B, ... Z, AA, ...) to a 0-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for _, c := range column {
		index = index*26 + int(c-'A') + 1
	}
	return index - 1
}
