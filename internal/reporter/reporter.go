// Package reporter runs one report cycle: fetch, format, notify.
package reporter

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/bittensor-ops/taoreporter/internal/config"
	"github.com/bittensor-ops/taoreporter/internal/report"
	"github.com/bittensor-ops/taoreporter/internal/taostats"
)

// FetchError marks a failure in the data-acquisition stage. It feeds the
// fallback message instead of aborting the run.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "fetch earnings: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Fetcher interface {
	FetchEarnings(coldkeys []string, dr taostats.DateRange, network string) ([]taostats.Earning, error)
}

type Notifier interface {
	Send(message string) (int, error)
}

type Reporter struct {
	cfg      *config.Config
	fetcher  Fetcher
	notifier Notifier
	now      func() time.Time
	log      zerolog.Logger
}

func New(cfg *config.Config, fetcher Fetcher, notifier Notifier, log zerolog.Logger) *Reporter {
	return &Reporter{
		cfg:      cfg,
		fetcher:  fetcher,
		notifier: notifier,
		now:      time.Now,
		log:      log.With().Str("component", "reporter").Logger(),
	}
}

// Run executes one cycle and returns the process exit code. A fetch failure
// is absorbed into a fallback message and still delivered; only a delivery
// failure makes the run itself fail.
func (r *Reporter) Run() int {
	status, err := r.notifier.Send(r.buildMessage())
	if err != nil {
		r.log.Error().Err(err).Msg("failed to deliver report")
		return 1
	}
	r.log.Info().Int("status", status).Msg("✅ report delivered")
	return 0
}

func (r *Reporter) buildMessage() string {
	dr := taostats.ResolveDateRange(r.now(), r.cfg.LookbackDays)

	earnings, err := r.fetcher.FetchEarnings(r.cfg.Coldkeys, dr, r.cfg.Network)
	if err != nil {
		r.log.Warn().Err(err).Msg("earnings unavailable, sending fallback")
		return report.Fallback(&FetchError{Err: err})
	}
	return report.Build(earnings, dr, r.cfg.Network)
}
