package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jojoob/pollbot/internal/core/ports"
)

// Client sends replies and reactions through the transport bridge's HTTP
// API. Every send carries a fresh transaction id so the bridge can
// deduplicate retries.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) ports.Messenger {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type replyRequest struct {
	InReplyTo string `json:"in_reply_to,omitempty"`
	Body      string `json:"body"`
	TxnID     string `json:"txn_id"`
}

type replyResponse struct {
	EventID string `json:"event_id"`
}

type reactRequest struct {
	EventID string `json:"event_id"`
	Key     string `json:"key"`
	TxnID   string `json:"txn_id"`
}

func (c *Client) Reply(ctx context.Context, roomID string, inReplyTo string, text string) (string, error) {
	var resp replyResponse
	err := c.post(ctx, fmt.Sprintf("/rooms/%s/reply", url.PathEscape(roomID)), replyRequest{
		InReplyTo: inReplyTo,
		Body:      text,
		TxnID:     uuid.NewString(),
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.EventID, nil
}

func (c *Client) React(ctx context.Context, roomID string, eventID string, key string) error {
	return c.post(ctx, fmt.Sprintf("/rooms/%s/react", url.PathEscape(roomID)), reactRequest{
		EventID: eventID,
		Key:     key,
		TxnID:   uuid.NewString(),
	}, nil)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call transport bridge: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("transport bridge returned status %d", res.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
