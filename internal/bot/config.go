package bot

import (
	"time"
)

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Default number of review items presented per session
	DefaultReviewsPerBatch int
	// How long an unfinished review session is kept before it is dropped
	SessionTimeout time.Duration
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		DefaultReviewsPerBatch: 10,
		SessionTimeout:         time.Hour * 1,
	}
}
