package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/reviewbot/pkg/models"
	"github.com/go-co-op/gocron"
)

// Константы для настроек уведомлений по умолчанию
const (
	DefaultNotificationStartHour = 8  // Время начала уведомлений
	DefaultNotificationEndHour   = 22 // Время окончания уведомлений
)

// Notifier sends a due-review reminder to a user
type Notifier interface {
	SendReminder(userID int64, count int) error
}

// UserDirectory lists users whose notification hour has arrived
type UserDirectory interface {
	GetUsersForNotification(ctx context.Context, hour int) ([]models.User, error)
}

// DueLister reports the items currently due for a user
type DueLister interface {
	FindDueItems(ctx context.Context, userID int64, asOf time.Time) ([]models.ReviewItem, error)
}

// Scheduler periodically checks for overdue reviews and pushes reminders
// through the notifier. The review core itself stays lazy; this is the
// only place that polls.
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	users     UserDirectory
	items     DueLister
	now       func() time.Time
}

// New creates a new scheduler instance
func New(notifier Notifier, users UserDirectory, items DueLister) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		notifier:  notifier,
		users:     users,
		items:     items,
		now:       time.Now,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Hourly check for users whose notification hour has arrived
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders checks for users who need reminders and sends them
func (s *Scheduler) checkAndSendReminders() {
	currentHour := s.now().Hour()

	startHour := envHour("NOTIFICATION_START_HOUR", DefaultNotificationStartHour)
	endHour := envHour("NOTIFICATION_END_HOUR", DefaultNotificationEndHour)

	// Ночью не беспокоим
	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminders",
			currentHour, startHour, endHour)
		return
	}

	ctx := context.Background()
	users, err := s.users.GetUsersForNotification(ctx, currentHour)
	if err != nil {
		log.Printf("Error getting users for notification: %v", err)
		return
	}

	for _, user := range users {
		count, err := s.dueCount(ctx, user.ID)
		if err != nil {
			log.Printf("Error getting due items for user %d: %v", user.ID, err)
			continue
		}
		if count == 0 {
			continue
		}

		// Don't announce more than the user's daily preference
		if user.ReviewsPerDay > 0 && count > user.ReviewsPerDay {
			count = user.ReviewsPerDay
		}

		if err := s.notifier.SendReminder(user.ID, count); err != nil {
			log.Printf("Error sending reminder to user %d: %v", user.ID, err)
		}
	}
}

// RunManualCheck forces a reminder check for a specific user
func (s *Scheduler) RunManualCheck(ctx context.Context, userID int64) error {
	count, err := s.dueCount(ctx, userID)
	if err != nil {
		return err
	}
	if count > 0 {
		return s.notifier.SendReminder(userID, count)
	}
	return nil
}

func (s *Scheduler) dueCount(ctx context.Context, userID int64) (int, error) {
	now := s.now()
	year, month, day := now.Date()
	startOfDay := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	due, err := s.items.FindDueItems(ctx, userID, startOfDay)
	if err != nil {
		return 0, err
	}
	return len(due), nil
}

// envHour reads an hour override from the environment
func envHour(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return def
}
