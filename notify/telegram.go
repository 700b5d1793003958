package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dnldd/trendwatch/shared"
)

const (
	// BaseURL is the telegram bot api base url.
	BaseURL = "https://api.telegram.org"
	// requestTimeout bounds every send request.
	requestTimeout = time.Second * 15
)

// TelegramConfig represents the configuration for the telegram client.
type TelegramConfig struct {
	// Token is the telegram bot token.
	Token string
	// ChatID is the fixed destination chat id.
	ChatID string
	// BaseURL is the telegram bot api base url.
	BaseURL string
}

// TelegramClient represents the telegram bot api client. Alerts request an
// audible notification, summaries are delivered silently.
type TelegramClient struct {
	cfg   *TelegramConfig
	httpc http.Client
}

// Ensure the telegram client implements the Notifier interface.
var _ shared.Notifier = (*TelegramClient)(nil)

// NewTelegramClient instantiates a new telegram client.
func NewTelegramClient(cfg *TelegramConfig) *TelegramClient {
	return &TelegramClient{
		cfg:   cfg,
		httpc: http.Client{Timeout: requestTimeout},
	}
}

// formURL creates the full url for the provided bot api method.
func (c *TelegramClient) formURL(method string) string {
	buf := bytes.NewBuffer(make([]byte, 0, 128))
	buf.WriteString(c.cfg.BaseURL)
	buf.WriteString("/bot")
	buf.WriteString(c.cfg.Token)
	buf.WriteString("/")
	buf.WriteString(method)

	return buf.String()
}

// sendMessage delivers the provided html formatted text to the configured
// chat.
func (c *TelegramClient) sendMessage(ctx context.Context, message string, silent bool) error {
	params := url.Values{}
	params.Add("chat_id", c.cfg.ChatID)
	params.Add("text", message)
	params.Add("parse_mode", "HTML")
	params.Add("disable_notification", strconv.FormatBool(silent))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.formURL("sendMessage"),
		bytes.NewBufferString(params.Encode()))
	if err != nil {
		return fmt.Errorf("creating send message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sending telegram message: unexpected status %s", resp.Status)
	}

	return nil
}

// SendAlert delivers the provided message with an audible notification.
func (c *TelegramClient) SendAlert(ctx context.Context, message string) error {
	return c.sendMessage(ctx, message, false)
}

// SendSummary delivers the provided message silently.
func (c *TelegramClient) SendSummary(ctx context.Context, message string) error {
	return c.sendMessage(ctx, message, true)
}
