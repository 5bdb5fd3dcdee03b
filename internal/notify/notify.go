// Package notify delivers the availability summary. Delivery is a sink
// chosen at startup: LINE push when credentials are configured, plain
// console output otherwise.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Sink interface {
	Push(ctx context.Context, message string) error
}

// Console prints the message instead of delivering it. This is the
// documented fallback when LINE credentials are not set, not an error path.
type Console struct{}

func (Console) Push(_ context.Context, message string) error {
	fmt.Println("[WARN] LINE credentials not set; printing message instead:")
	fmt.Println(message)
	return nil
}

const defaultPushEndpoint = "https://api.line.me/v2/bot/message/push"

// LINE pushes text messages through the LINE Messaging API.
type LINE struct {
	hc    *http.Client
	token string
	to    string

	// Endpoint is the push URL, overridable in tests.
	Endpoint string
}

func NewLINE(token, toUserID string) *LINE {
	return &LINE{
		hc:       &http.Client{Timeout: 10 * time.Second},
		token:    token,
		to:       toUserID,
		Endpoint: defaultPushEndpoint,
	}
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (l *LINE) Push(ctx context.Context, message string) error {
	body, err := json.Marshal(pushRequest{
		To:       l.to,
		Messages: []textMessage{{Type: "text", Text: message}},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+l.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.hc.Do(req)
	if err != nil {
		return fmt.Errorf("line push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("line push: status=%d body=%s", resp.StatusCode, b)
	}
	return nil
}

// FromConfig picks the sink: LINE when both credentials are present,
// Console otherwise.
func FromConfig(token, toUserID string) Sink {
	if token == "" || toUserID == "" {
		return Console{}
	}
	return NewLINE(token, toUserID)
}
