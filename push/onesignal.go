// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the OneSignal REST API root
const DefaultBaseURL = "https://onesignal.com/api/v1"

// Button is one actionable choice on a notification
type Button struct {
	ID    string
	Label string
	URL   string
}

// Notification is a scheduled, addressed push with action buttons
type Notification struct {
	PlayerIDs []string
	Title     string
	Body      string
	Buttons   []Button
	SendAfter time.Time
}

// Receipt is the provider's acknowledgement of a scheduled notification
type Receipt struct {
	ID string `json:"id"`
}

// Dispatcher delivers a scheduled notification to specific devices
type Dispatcher interface {
	Schedule(ctx context.Context, n Notification) (Receipt, error)
}

// StatusError carries a non-success provider response. The status code and
// body are preserved verbatim so callers can pass them through.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("push provider returned %d: %s", e.StatusCode, e.Body)
}

// OneSignalClient dispatches notifications through the OneSignal REST API
type OneSignalClient struct {
	appID   string
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOneSignalClient(appID, apiKey, baseURL string) *OneSignalClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OneSignalClient{
		appID:   appID,
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type oneSignalButton struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	URL  string `json:"url"`
}

type oneSignalPayload struct {
	AppID            string            `json:"app_id"`
	IncludePlayerIDs []string          `json:"include_player_ids"`
	Headings         map[string]string `json:"headings"`
	Contents         map[string]string `json:"contents"`
	Buttons          []oneSignalButton `json:"buttons,omitempty"`
	SendAfter        string            `json:"send_after"`
	IOSBadgeType     string            `json:"ios_badgeType"`
	IOSBadgeCount    int               `json:"ios_badgeCount"`
}

// Schedule posts the notification to OneSignal. A non-2xx response is
// returned as *StatusError with the provider's body intact.
func (c *OneSignalClient) Schedule(ctx context.Context, n Notification) (Receipt, error) {
	payload := oneSignalPayload{
		AppID:            c.appID,
		IncludePlayerIDs: n.PlayerIDs,
		Headings:         map[string]string{"en": n.Title},
		Contents:         map[string]string{"en": n.Body},
		SendAfter:        n.SendAfter.UTC().Format(time.RFC3339),
		IOSBadgeType:     "Increase",
		IOSBadgeCount:    1,
	}
	for _, b := range n.Buttons {
		payload.Buttons = append(payload.Buttons, oneSignalButton{ID: b.ID, Text: b.Label, URL: b.URL})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/notifications", bytes.NewReader(body))
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to reach push provider: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Receipt{}, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var receipt Receipt
	if err := json.Unmarshal(respBody, &receipt); err != nil {
		return Receipt{}, fmt.Errorf("failed to decode provider response: %w", err)
	}
	return receipt, nil
}
