package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://api.telegram.org"

// maxAttempts bounds delivery retries. Failures past the last attempt are
// swallowed by the caller; no retry state is persisted anywhere.
const maxAttempts = 3

// Client sends messages through the Telegram Bot API
type Client struct {
	client  *http.Client
	baseURL string
	token   string
	chatID  string
	log     zerolog.Logger
}

// NewClient creates a new Telegram client. Empty credentials are allowed;
// Configured() reports whether sends can be attempted.
func NewClient(token, chatID string, log zerolog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: defaultBaseURL,
		token:   token,
		chatID:  chatID,
		log:     log.With().Str("client", "telegram").Logger(),
	}
}

// SetBaseURL overrides the API endpoint. Used in tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// Configured reports whether bot credentials are present
func (c *Client) Configured() bool {
	return c.token != "" && c.chatID != ""
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage delivers a message, retrying transport errors and non-200
// responses up to maxAttempts times. Returns the error of the last attempt.
func (c *Client) SendMessage(text string) error {
	if !c.Configured() {
		return fmt.Errorf("telegram credentials not configured")
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = c.post(url, payload)
		if lastErr == nil {
			return nil
		}

		c.log.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Msg("Telegram send attempt failed")
	}

	return fmt.Errorf("telegram send failed after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) post(url string, payload []byte) error {
	resp, err := c.client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return nil
}
