package main

import (
	"os"

	"github.com/bittensor-ops/taoreporter/internal/config"
	"github.com/bittensor-ops/taoreporter/internal/logging"
	"github.com/bittensor-ops/taoreporter/internal/notify"
	"github.com/bittensor-ops/taoreporter/internal/reporter"
	"github.com/bittensor-ops/taoreporter/internal/taostats"
)

func main() {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	client := taostats.NewClient(cfg.APIBaseURL, cfg.APIKey, logger)
	webhook := notify.NewWebhook(cfg.WebhookURL)

	os.Exit(reporter.New(cfg, client, webhook, logger).Run())
}
