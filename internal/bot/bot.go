package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/example/reviewbot/internal/database"
	"github.com/example/reviewbot/internal/review"
	"github.com/example/reviewbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// reviewRun is a user's ongoing review session: the due items being
// worked through and the running totals for the session record
type reviewRun struct {
	Items            []models.ReviewItem
	CurrentIdx       int
	Completed        int
	UnderstandingSum int
	StartedAt        time.Time
}

// Bot represents the Telegram bot application
type Bot struct {
	api      *tgbotapi.BotAPI
	service  *review.Service
	users    *database.UserRepository
	sessions *database.ReviewSessionRepository
	config   *BotConfig
	runs     map[int64]*reviewRun
}

// New creates a new bot instance
func New(service *review.Service) (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %v", err)
	}

	return &Bot{
		api:      api,
		service:  service,
		users:    database.NewUserRepository(),
		sessions: database.NewReviewSessionRepository(),
		config:   DefaultConfig(),
		runs:     make(map[int64]*reviewRun),
	}, nil
}

// Start begins polling for updates until the context is cancelled
func (b *Bot) Start(ctx context.Context) error {
	log.Printf("Authorized on account %s", b.api.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			if update.Message != nil {
				b.handleMessage(ctx, update.Message)
			} else if update.CallbackQuery != nil {
				b.handleCallback(ctx, update.CallbackQuery)
			}
		}
	}
}

// Stop shuts down the update polling
func (b *Bot) Stop(ctx context.Context) error {
	b.api.StopReceivingUpdates()
	return nil
}

// SendReminder notifies a user about due reviews. Satisfies the
// scheduler.Notifier interface.
func (b *Bot) SendReminder(userID int64, count int) error {
	text := fmt.Sprintf("⏰ You have %d topic(s) due for review. Send /review to start.", count)
	msg := tgbotapi.NewMessage(userID, text)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %v", err)
	}
	return nil
}

// send is a small helper that logs delivery failures instead of
// propagating them into the update loop
func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}
