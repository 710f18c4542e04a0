// Package report renders earnings into the Discord message body.
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bittensor-ops/taoreporter/internal/taostats"
)

const (
	noDataLine     = "No earnings data available for the configured coldkeys."
	fallbackHeader = "⚠️ Daily TAO Earnings — data unavailable"
)

// Build renders the earnings summary. Output is deterministic for identical
// inputs: a header, the network line, one bullet per earning and a total, or
// a no-data sentence when nothing was earned.
func Build(earnings []taostats.Earning, dr taostats.DateRange, network string) string {
	lines := []string{header(dr), "Network: " + network}

	if len(earnings) == 0 {
		lines = append(lines, noDataLine)
		return strings.Join(lines, "\n")
	}

	total := decimal.Zero
	for _, earning := range earnings {
		total = total.Add(earning.Amount)
		lines = append(lines, fmt.Sprintf("• %s: %s TAO", earning.Coldkey, earning.Amount.StringFixed(6)))
	}
	lines = append(lines, fmt.Sprintf("Total: %s TAO across %d coldkey(s)", total.StringFixed(6), len(earnings)))

	return strings.Join(lines, "\n")
}

// Fallback builds the notification body sent when earnings could not be
// fetched, so the channel still hears from the job.
func Fallback(err error) string {
	return fallbackHeader + "\nReason: " + err.Error()
}

func header(dr taostats.DateRange) string {
	if dr.SingleDay() {
		return "📊 Daily TAO Earnings — " + dr.EndDate()
	}
	return fmt.Sprintf("📊 TAO Earnings — %s to %s", dr.StartDate(), dr.EndDate())
}
