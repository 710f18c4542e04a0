// Package notify delivers report messages to a Discord-style webhook.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const requestTimeout = 30 * time.Second

type Webhook struct {
	url  string
	http *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:  url,
		http: &http.Client{Timeout: requestTimeout},
	}
}

type messagePayload struct {
	Content string `json:"content"`
}

// Send posts the message and returns the webhook's status code. There are no
// retries; a transport error or non-2xx status is the caller's problem.
func (w *Webhook) Send(message string) (int, error) {
	body, err := json.Marshal(messagePayload{Content: message})
	if err != nil {
		return 0, fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send webhook message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp.StatusCode, fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}
