package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultBaseURL      = "https://api.taostats.io/api"
	defaultNetwork      = "finney"
	defaultLookbackDays = 1
)

// Config carries everything a single reporting run needs. It is built once
// at process start and passed into each component.
type Config struct {
	WebhookURL   string
	APIBaseURL   string
	APIKey       string
	Coldkeys     []string
	LookbackDays int
	Network      string
}

// Load reads the environment (plus an optional .env file for local runs)
// and validates the required settings.
func Load() (*Config, error) {
	// .env is a local convenience; in production everything comes from the
	// scheduler's environment.
	_ = godotenv.Load()

	cfg := &Config{
		WebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),
		APIBaseURL: getEnv("TAOSTATS_BASE_URL", defaultBaseURL),
		APIKey:     os.Getenv("TAOSTATS_API_KEY"),
		Coldkeys:   splitColdkeys(os.Getenv("MINER_COLDKEYS")),
		Network:    getEnv("TAO_NETWORK", defaultNetwork),
	}

	if cfg.WebhookURL == "" {
		return nil, fmt.Errorf("DISCORD_WEBHOOK_URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("TAOSTATS_API_KEY is required")
	}
	if len(cfg.Coldkeys) == 0 {
		return nil, fmt.Errorf("MINER_COLDKEYS is required")
	}

	lookback := getEnv("TAO_LOOKBACK_DAYS", "")
	if lookback == "" {
		cfg.LookbackDays = defaultLookbackDays
	} else {
		days, err := strconv.Atoi(lookback)
		if err != nil {
			return nil, fmt.Errorf("TAO_LOOKBACK_DAYS must be an integer: %w", err)
		}
		if days < 0 {
			return nil, fmt.Errorf("TAO_LOOKBACK_DAYS must not be negative, got %d", days)
		}
		cfg.LookbackDays = days
	}

	return cfg, nil
}

// getEnv treats an empty value the same as an unset one.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitColdkeys(raw string) []string {
	var keys []string
	for _, part := range strings.Split(raw, ",") {
		if key := strings.TrimSpace(part); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
