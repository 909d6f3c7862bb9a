package excel

import (
	"testing"
	"time"
)

func TestParseRecordRow(t *testing.T) {
	config := DefaultImportConfig()

	rec, err := parseRecordRow([]string{"Math", "Algebra, Geometry", "2025-06-01", "2"}, config, 7)
	if err != nil {
		t.Fatalf("parseRecordRow failed: %v", err)
	}

	if rec.UserID != 7 {
		t.Errorf("userID = %d, want 7", rec.UserID)
	}
	if rec.Subject != "Math" {
		t.Errorf("subject = %q, want Math", rec.Subject)
	}
	if len(rec.Topics) != 2 || rec.Topics[0] != "Algebra" || rec.Topics[1] != "Geometry" {
		t.Errorf("topics = %v, want [Algebra Geometry]", rec.Topics)
	}
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !rec.StudyDate.Equal(want) {
		t.Errorf("studyDate = %v, want %v", rec.StudyDate, want)
	}
	if rec.Understanding != 2 {
		t.Errorf("understanding = %d, want 2", rec.Understanding)
	}
}

func TestParseRecordRowDefaultsUnderstanding(t *testing.T) {
	rec, err := parseRecordRow([]string{"History", "Rome", "01.06.2025", ""}, DefaultImportConfig(), 1)
	if err != nil {
		t.Fatalf("parseRecordRow failed: %v", err)
	}
	if rec.Understanding != 3 {
		t.Errorf("understanding = %d, want default 3", rec.Understanding)
	}
}

func TestParseRecordRowRejectsBadRows(t *testing.T) {
	config := DefaultImportConfig()

	tests := []struct {
		name string
		row  []string
	}{
		{"empty subject", []string{"", "Algebra", "2025-06-01", "3"}},
		{"no topics", []string{"Math", " ; ", "2025-06-01", "3"}},
		{"bad date", []string{"Math", "Algebra", "June first", "3"}},
		{"understanding out of range", []string{"Math", "Algebra", "2025-06-01", "9"}},
		{"understanding not a number", []string{"Math", "Algebra", "2025-06-01", "high"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseRecordRow(tt.row, config, 1); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSplitTopics(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Algebra", []string{"Algebra"}},
		{"Algebra, Geometry; Trigonometry", []string{"Algebra", "Geometry", "Trigonometry"}},
		{" , ; ", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := splitTopics(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitTopics(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitTopics(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}

func TestColumnToIndex(t *testing.T) {
	tests := []struct {
		column string
		want   int
	}{
		{"A", 0},
		{"B", 1},
		{"Z", 25},
		{"AA", 26},
		{"b", 1},
	}

	for _, tt := range tests {
		if got := columnToIndex(tt.column); got != tt.want {
			t.Errorf("columnToIndex(%q) = %d, want %d", tt.column, got, tt.want)
		}
	}
}
