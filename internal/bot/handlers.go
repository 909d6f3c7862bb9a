package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/example/reviewbot/internal/review"
	"github.com/example/reviewbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleMessage dispatches an incoming message to a command handler
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if !message.IsCommand() {
		return
	}

	user, err := b.users.GetOrCreate(ctx, message.Chat.ID,
		message.From.UserName, message.From.FirstName, message.From.LastName)
	if err != nil {
		log.Printf("Failed to register user %d: %v", message.Chat.ID, err)
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Something went wrong, try again later."))
		return
	}

	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "review":
		b.handleReview(ctx, user)
	case "skip":
		b.handleSkip(ctx, user)
	case "stats":
		b.handleStats(ctx, user)
	default:
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Unknown command. Try /review or /stats."))
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	text := "Hi! I keep track of what you've studied and remind you to review " +
		"each topic right before you'd forget it.\n\n" +
		"/review — go through the topics due today\n" +
		"/stats — your review history"
	b.send(tgbotapi.NewMessage(message.Chat.ID, text))
}

// handleReview builds today's schedule and starts a review session
func (b *Bot) handleReview(ctx context.Context, user *models.User) {
	due, err := b.service.GenerateSchedule(ctx, user.ID)
	if err != nil {
		log.Printf("Failed to generate schedule for user %d: %v", user.ID, err)
		b.send(tgbotapi.NewMessage(user.ID, "Could not build your schedule, try again later."))
		return
	}

	if len(due) == 0 {
		b.send(tgbotapi.NewMessage(user.ID, "🎉 Nothing due today. Come back tomorrow!"))
		return
	}

	// Ограничиваем сессию дневной нормой пользователя
	limit := user.ReviewsPerDay
	if limit <= 0 {
		limit = b.config.DefaultReviewsPerBatch
	}
	if len(due) > limit {
		due = due[:limit]
	}

	b.runs[user.ID] = &reviewRun{
		Items:     due,
		StartedAt: time.Now(),
	}

	b.send(tgbotapi.NewMessage(user.ID,
		fmt.Sprintf("You have %d topic(s) to review. Rate how well you remember each one.", len(due))))
	b.presentCurrentItem(user.ID)
}

// handleSkip moves past the current item without completing a review
func (b *Bot) handleSkip(ctx context.Context, user *models.User) {
	run, ok := b.runs[user.ID]
	if !ok {
		b.send(tgbotapi.NewMessage(user.ID, "No review in progress. Send /review to start."))
		return
	}
	run.CurrentIdx++
	if run.CurrentIdx >= len(run.Items) {
		b.finishRun(ctx, user.ID, run)
		return
	}
	b.presentCurrentItem(user.ID)
}

// handleStats shows the user's recent session history
func (b *Bot) handleStats(ctx context.Context, user *models.User) {
	total, err := b.sessions.CountCompletedReviews(ctx, user.ID)
	if err != nil {
		log.Printf("Failed to count reviews for user %d: %v", user.ID, err)
		b.send(tgbotapi.NewMessage(user.ID, "Could not load your stats, try again later."))
		return
	}

	recent, err := b.sessions.GetRecentByUser(ctx, user.ID, 5)
	if err != nil {
		log.Printf("Failed to get sessions for user %d: %v", user.ID, err)
		b.send(tgbotapi.NewMessage(user.ID, "Could not load your stats, try again later."))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Reviews completed in total: %d\n", total)
	if len(recent) > 0 {
		sb.WriteString("\nRecent sessions:\n")
		for _, s := range recent {
			fmt.Fprintf(&sb, "• %s — %d/%d done, avg understanding %.1f\n",
				s.SessionDate.Format("02.01.2006"), s.CompletedCount, s.ItemCount, s.AverageUnderstanding)
		}
	}
	b.send(tgbotapi.NewMessage(user.ID, sb.String()))
}

// presentCurrentItem shows the current topic with a 1-5 rating keyboard
func (b *Bot) presentCurrentItem(chatID int64) {
	run := b.runs[chatID]
	item := run.Items[run.CurrentIdx]

	text := fmt.Sprintf("(%d/%d) %s — %s\n\nHow well do you remember this topic?",
		run.CurrentIdx+1, len(run.Items), item.Subject, item.Topic)

	var buttons []tgbotapi.InlineKeyboardButton
	for u := 1; u <= 5; u++ {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(
			strconv.Itoa(u), fmt.Sprintf("rate:%d:%d", item.ID, u)))
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(buttons...))
	b.send(msg)
}

// handleCallback processes a rating button press
func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Убираем "часики" на кнопке
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("Failed to answer callback: %v", err)
	}

	parts := strings.Split(query.Data, ":")
	if len(parts) != 3 || parts[0] != "rate" {
		return
	}

	itemID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return
	}
	understanding, err := strconv.Atoi(parts[2])
	if err != nil {
		return
	}

	chatID := query.Message.Chat.ID
	run, ok := b.runs[chatID]
	if !ok || time.Since(run.StartedAt) > b.config.SessionTimeout {
		delete(b.runs, chatID)
		b.send(tgbotapi.NewMessage(chatID, "That session has expired. Send /review to start a new one."))
		return
	}

	minutes := int(time.Since(run.StartedAt).Minutes())
	item, err := b.service.CompleteReview(ctx, itemID, understanding, minutes)
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			b.send(tgbotapi.NewMessage(chatID, "That topic no longer exists."))
		} else {
			log.Printf("Failed to complete review %d: %v", itemID, err)
			b.send(tgbotapi.NewMessage(chatID, "Could not record that review, try again."))
			return
		}
	} else {
		run.Completed++
		run.UnderstandingSum += understanding
		b.send(tgbotapi.NewMessage(chatID,
			fmt.Sprintf("Got it. Next review of %s — %s in %d day(s).",
				item.Subject, item.Topic, item.IntervalDays)))
	}

	run.CurrentIdx++
	if run.CurrentIdx >= len(run.Items) {
		b.finishRun(ctx, chatID, run)
		return
	}
	b.presentCurrentItem(chatID)
}

// finishRun records the finished session and clears the run state
func (b *Bot) finishRun(ctx context.Context, chatID int64, run *reviewRun) {
	delete(b.runs, chatID)

	session := &models.ReviewSession{
		UserID:          chatID,
		SessionDate:     run.StartedAt,
		ItemCount:       len(run.Items),
		CompletedCount:  run.Completed,
		DurationMinutes: int(time.Since(run.StartedAt).Minutes()),
	}
	if run.Completed > 0 {
		session.AverageUnderstanding = float64(run.UnderstandingSum) / float64(run.Completed)
	}

	if err := b.sessions.Create(ctx, session); err != nil {
		log.Printf("Failed to record session for user %d: %v", chatID, err)
	}

	b.send(tgbotapi.NewMessage(chatID,
		fmt.Sprintf("✅ Session finished: %d of %d topics reviewed.", run.Completed, len(run.Items))))
}
