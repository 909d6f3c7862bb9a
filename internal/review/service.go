package review

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/example/reviewbot/internal/forgetting"
	"github.com/example/reviewbot/pkg/models"
)

// StudyWindowDays is the trailing window of study history scanned for
// topics that are not yet tracked by a review item
const StudyWindowDays = 90

// ItemStore persists per-topic review state
type ItemStore interface {
	FindItemsByUser(ctx context.Context, userID int64) ([]models.ReviewItem, error)
	FindDueItems(ctx context.Context, userID int64, asOf time.Time) ([]models.ReviewItem, error)
	// FindItemByID returns (nil, nil) when no item exists with the ID
	FindItemByID(ctx context.Context, id int64) (*models.ReviewItem, error)
	SaveItem(ctx context.Context, item *models.ReviewItem) error
	UpdateItem(ctx context.Context, item *models.ReviewItem) error
}

// StudyEventSource supplies historical study records for a time window
type StudyEventSource interface {
	FindStudyRecords(ctx context.Context, userID int64, start, end time.Time) ([]models.StudyRecord, error)
}

// Service decides when each studied topic should next be reviewed and in
// what order due topics are presented. It owns no background work: due
// status is evaluated lazily when GenerateSchedule is called, and a failed
// store or source call fails the whole operation without retries.
type Service struct {
	store  ItemStore
	source StudyEventSource
	engine *forgetting.Engine
	scorer *forgetting.Scorer
	now    func() time.Time // заменяется в тестах на фиксированное время
}

// NewService creates a review service on top of the given collaborators
func NewService(store ItemStore, source StudyEventSource) *Service {
	return &Service{
		store:  store,
		source: source,
		engine: forgetting.NewEngine(),
		scorer: forgetting.NewScorer(),
		now:    time.Now,
	}
}

type topicKey struct {
	subject string
	topic   string
}

// GenerateSchedule discovers topics studied in the trailing window that
// are not yet tracked, creates review items for them, and returns the
// items due as of the start of today ordered by priority, highest first.
func (s *Service) GenerateSchedule(ctx context.Context, userID int64) ([]models.ReviewItem, error) {
	now := s.now()

	records, err := s.source.FindStudyRecords(ctx, userID, now.AddDate(0, 0, -StudyWindowDays), now)
	if err != nil {
		return nil, fmt.Errorf("failed to get study records: %w", err)
	}

	existing, err := s.store.FindItemsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review items: %w", err)
	}

	// Набор уже отслеживаемых пар (subject, topic). Пополняется по мере
	// создания, чтобы одна и та же новая тема из двух записей за один
	// проход не породила дубликат.
	tracked := make(map[topicKey]bool, len(existing))
	for _, item := range existing {
		tracked[topicKey{item.Subject, item.Topic}] = true
	}

	for _, rec := range records {
		for _, topic := range rec.Topics {
			key := topicKey{rec.Subject, topic}
			if tracked[key] {
				continue
			}

			item := s.newItem(userID, rec, topic)
			if err := s.store.SaveItem(ctx, item); err != nil {
				return nil, fmt.Errorf("failed to save review item: %w", err)
			}
			tracked[key] = true
		}
	}

	due, err := s.store.FindDueItems(ctx, userID, startOfDay(now))
	if err != nil {
		return nil, fmt.Errorf("failed to get due items: %w", err)
	}

	// Сортировка устойчивая: при равном приоритете сохраняется порядок
	// из хранилища.
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].Priority > due[j].Priority
	})

	return due, nil
}

// CompleteReview applies the outcome of one finished review: the item
// moves along the forgetting curve, gets a fresh interval, next review
// date and priority, and the update is persisted. The stage, interval and
// priority math uses the item's fields as they were BEFORE the update.
//
// studyTime (minutes) is accepted for session telemetry and future use;
// it does not currently influence any stage, interval or priority
// computation.
func (s *Service) CompleteReview(ctx context.Context, itemID int64, understanding, studyTime int) (*models.ReviewItem, error) {
	if understanding < forgetting.UnderstandingNone || understanding > forgetting.UnderstandingFull {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidUnderstanding, understanding)
	}

	item, err := s.store.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, itemID)
	}

	now := s.now()
	newStage := s.engine.NextStage(item.ForgettingCurveStage, understanding)
	newInterval := s.engine.IntervalForStage(newStage)
	newPriority := s.scorer.UpdatedPriority(item.Priority, item.ReviewCount, item.IntervalDays, item.LastStudyDate, understanding, now)

	item.LastStudyDate = now
	item.NextReviewDate = now.AddDate(0, 0, newInterval)
	item.ReviewCount++
	item.Understanding = understanding
	item.ForgettingCurveStage = newStage
	item.IntervalDays = newInterval
	item.Priority = newPriority
	// Difficulty фиксируется при создании и не пересчитывается

	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update review item: %w", err)
	}

	return item, nil
}

// newItem builds the initial review item for a topic first seen in the
// study history: stage 1, due the following day
func (s *Service) newItem(userID int64, rec models.StudyRecord, topic string) *models.ReviewItem {
	interval := s.engine.IntervalForStage(forgetting.MinStage)
	return &models.ReviewItem{
		UserID:               userID,
		Subject:              rec.Subject,
		Topic:                topic,
		LastStudyDate:        rec.StudyDate,
		NextReviewDate:       rec.StudyDate.AddDate(0, 0, interval),
		ReviewCount:          0,
		Difficulty:           s.scorer.Difficulty(rec.Understanding),
		Understanding:        rec.Understanding,
		Priority:             s.scorer.InitialPriority(rec.Understanding),
		ForgettingCurveStage: forgetting.MinStage,
		IntervalDays:         interval,
		IsCompleted:          false,
	}
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
