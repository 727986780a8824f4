package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultThreshold is the fund return (in percent) at or below which an
// alert fires when RETURN_THRESHOLD is not set.
const DefaultThreshold = -1.0

// Config holds application configuration loaded from environment variables.
// It is built once at process start and passed down explicitly; nothing
// reads the environment after Load returns.
type Config struct {
	TelegramToken  string
	TelegramChatID string
	Threshold      float64
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first if present. Telegram credentials are
// optional; without them the run still computes, it just cannot notify.
func Load() (*Config, error) {
	// Best effort; absence of a .env file is the normal case in CI.
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID: os.Getenv("TELEGRAM_CHAT_ID"),
		Threshold:      DefaultThreshold,
	}

	if v := os.Getenv("RETURN_THRESHOLD"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RETURN_THRESHOLD %q: %w", v, err)
		}
		cfg.Threshold = threshold
	}

	return cfg, nil
}
