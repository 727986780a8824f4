package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// Client is an HTTP client for the Telegram Bot API, used to deliver
// investment alerts. Delivery is best-effort: callers treat send failures
// as warnings, never as run failures.
type Client struct {
	token      string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Telegram client
func NewClient(token, chatID string) *Client {
	return NewClientWithBaseURL(token, chatID, defaultBaseURL)
}

// NewClientWithBaseURL creates a new Telegram client with a custom base URL (for testing)
func NewClientWithBaseURL(token, chatID, baseURL string) *Client {
	return &Client{
		token:   token,
		chatID:  chatID,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Configured reports whether both credentials are present. When false,
// SendMessage would be pointless and callers skip it with a warning.
func (c *Client) Configured() bool {
	return c.token != "" && c.chatID != ""
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage posts an HTML-formatted message to the configured chat.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	reqURL := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var msgResp sendMessageResponse
	if err := json.Unmarshal(body, &msgResp); err != nil {
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
	if !msgResp.OK {
		return fmt.Errorf("API rejected message: %s", msgResp.Description)
	}

	return nil
}
