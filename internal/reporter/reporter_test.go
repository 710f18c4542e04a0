package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/bittensor-ops/taoreporter/internal/config"
	"github.com/bittensor-ops/taoreporter/internal/notify"
	"github.com/bittensor-ops/taoreporter/internal/taostats"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func captureWebhook(messages *[]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		*messages = append(*messages, payload.Content)
		w.WriteHeader(http.StatusNoContent)
	}))
}

func newTestReporter(t *testing.T, apiURL, webhookURL string) *Reporter {
	t.Helper()
	cfg := &config.Config{
		WebhookURL:   webhookURL,
		APIBaseURL:   apiURL,
		APIKey:       "secret",
		Coldkeys:     []string{"key1", "key2"},
		LookbackDays: 1,
		Network:      "finney",
	}
	client := taostats.NewClient(cfg.APIBaseURL, cfg.APIKey, zerolog.Nop())
	r := New(cfg, client, notify.NewWebhook(cfg.WebhookURL), zerolog.Nop())
	r.now = fixedNow
	return r
}

func TestRunDeliversReport(t *testing.T) {
	incomes := map[string]string{"key1": "1234500000", "key2": "567800000"}
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data":[{"income":%s}]}`, incomes[r.URL.Query().Get("coldkey")])
	}))
	defer api.Close()

	var messages []string
	webhook := captureWebhook(&messages)
	defer webhook.Close()

	code := newTestReporter(t, api.URL, webhook.URL).Run()
	require.Equal(t, 0, code)

	require.Len(t, messages, 1, "exactly one webhook POST per run")
	content := messages[0]
	require.Contains(t, content, "• key1: 1.234500 TAO")
	require.Contains(t, content, "• key2: 0.567800 TAO")
	require.Contains(t, content, "Total: 1.802300 TAO across 2 coldkey(s)")
}

func TestRunSendsFallbackOnFetchFailure(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer api.Close()

	var messages []string
	webhook := captureWebhook(&messages)
	defer webhook.Close()

	code := newTestReporter(t, api.URL, webhook.URL).Run()
	require.Equal(t, 0, code, "fallback delivery still counts as success")

	require.Len(t, messages, 1)
	require.True(t, strings.HasPrefix(messages[0], "⚠️ Daily TAO Earnings — data unavailable\n"))
	require.Contains(t, messages[0], "status 502")
}

func TestRunFailsWhenDeliveryFails(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer api.Close()

	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer webhook.Close()

	code := newTestReporter(t, api.URL, webhook.URL).Run()
	require.Equal(t, 1, code)
}

func TestFetchErrorUnwraps(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := &FetchError{Err: cause}

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "fetch earnings: boom")
}
