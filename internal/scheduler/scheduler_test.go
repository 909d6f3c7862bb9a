package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/reviewbot/pkg/models"
)

type fakeNotifier struct {
	reminders map[int64]int
	err       error
}

func (f *fakeNotifier) SendReminder(userID int64, count int) error {
	if f.err != nil {
		return f.err
	}
	if f.reminders == nil {
		f.reminders = map[int64]int{}
	}
	f.reminders[userID] = count
	return nil
}

type fakeDirectory struct {
	users []models.User
}

func (f *fakeDirectory) GetUsersForNotification(_ context.Context, hour int) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.NotificationEnabled && u.NotificationHour == hour {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeDueLister struct {
	due map[int64][]models.ReviewItem
	err error
}

func (f *fakeDueLister) FindDueItems(_ context.Context, userID int64, _ time.Time) ([]models.ReviewItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.due[userID], nil
}

func dueItems(n int) []models.ReviewItem {
	items := make([]models.ReviewItem, n)
	return items
}

func TestCheckAndSendReminders(t *testing.T) {
	notifier := &fakeNotifier{}
	directory := &fakeDirectory{users: []models.User{
		{ID: 1, NotificationEnabled: true, NotificationHour: 10, ReviewsPerDay: 10},
		{ID: 2, NotificationEnabled: true, NotificationHour: 10, ReviewsPerDay: 3},
		{ID: 3, NotificationEnabled: true, NotificationHour: 15, ReviewsPerDay: 10},
		{ID: 4, NotificationEnabled: false, NotificationHour: 10, ReviewsPerDay: 10},
	}}
	lister := &fakeDueLister{due: map[int64][]models.ReviewItem{
		1: dueItems(5),
		2: dueItems(7), // capped at the user's reviews-per-day preference
		3: dueItems(2),
	}}

	s := New(notifier, directory, lister)
	s.now = func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) }

	s.checkAndSendReminders()

	if got := notifier.reminders[1]; got != 5 {
		t.Errorf("user 1 reminder count = %d, want 5", got)
	}
	if got := notifier.reminders[2]; got != 3 {
		t.Errorf("user 2 reminder count = %d, want capped 3", got)
	}
	if _, ok := notifier.reminders[3]; ok {
		t.Error("user 3 notified outside their notification hour")
	}
	if _, ok := notifier.reminders[4]; ok {
		t.Error("user 4 notified despite notifications disabled")
	}
}

func TestCheckAndSendRemindersQuietHours(t *testing.T) {
	notifier := &fakeNotifier{}
	directory := &fakeDirectory{users: []models.User{
		{ID: 1, NotificationEnabled: true, NotificationHour: 3, ReviewsPerDay: 10},
	}}
	lister := &fakeDueLister{due: map[int64][]models.ReviewItem{1: dueItems(4)}}

	s := New(notifier, directory, lister)
	s.now = func() time.Time { return time.Date(2025, 6, 15, 3, 0, 0, 0, time.UTC) }

	s.checkAndSendReminders()

	if len(notifier.reminders) != 0 {
		t.Errorf("sent %d reminders during quiet hours, want 0", len(notifier.reminders))
	}
}

func TestRunManualCheck(t *testing.T) {
	notifier := &fakeNotifier{}
	lister := &fakeDueLister{due: map[int64][]models.ReviewItem{7: dueItems(2)}}

	s := New(notifier, &fakeDirectory{}, lister)

	if err := s.RunManualCheck(context.Background(), 7); err != nil {
		t.Fatalf("RunManualCheck failed: %v", err)
	}
	if got := notifier.reminders[7]; got != 2 {
		t.Errorf("reminder count = %d, want 2", got)
	}

	// No due items - no reminder
	if err := s.RunManualCheck(context.Background(), 8); err != nil {
		t.Fatalf("RunManualCheck failed: %v", err)
	}
	if _, ok := notifier.reminders[8]; ok {
		t.Error("reminder sent for a user with nothing due")
	}
}

func TestRunManualCheckPropagatesStoreError(t *testing.T) {
	boom := errors.New("store down")
	s := New(&fakeNotifier{}, &fakeDirectory{}, &fakeDueLister{err: boom})

	if err := s.RunManualCheck(context.Background(), 1); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
