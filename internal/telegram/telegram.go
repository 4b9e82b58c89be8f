// Package telegram wraps the Bot API client: sending replies, registering
// the webhook and decoding inbound updates.
package telegram

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client talks to the Telegram Bot API.
type Client struct {
	api *tgbotapi.BotAPI
}

// New authenticates against the Bot API with the given token.
func New(token string) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("New: creating bot api client: %w", err)
	}
	return &Client{api: api}, nil
}

// Username returns the authenticated bot account name.
func (c *Client) Username() string {
	return c.api.Self.UserName
}

// Send delivers one text reply to a chat.
func (c *Client) Send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("Send: delivering message: %w", err)
	}
	return nil
}

// RegisterWebhook points the bot at the given public URL and verifies the
// registration took effect.
func (c *Client) RegisterWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("RegisterWebhook: building webhook config: %w", err)
	}
	if _, err := c.api.Request(wh); err != nil {
		return fmt.Errorf("RegisterWebhook: registering webhook: %w", err)
	}

	info, err := c.api.GetWebhookInfo()
	if err != nil {
		return fmt.Errorf("RegisterWebhook: reading webhook info: %w", err)
	}
	if info.LastErrorDate != 0 {
		return fmt.Errorf("RegisterWebhook: telegram reports callback failure: %s", info.LastErrorMessage)
	}
	return nil
}

// Inbound is one decoded chat message.
type Inbound struct {
	ChatID    int64
	UserID    string
	Text      string
	IsCommand bool
	Command   string
	Args      string
}

// DecodeUpdate parses one webhook request body. Updates without a text
// message (edits, channel posts, member events) decode to nil without error.
func DecodeUpdate(body io.Reader) (*Inbound, error) {
	var update tgbotapi.Update
	if err := json.NewDecoder(body).Decode(&update); err != nil {
		return nil, fmt.Errorf("DecodeUpdate: decoding update: %w", err)
	}

	msg := update.Message
	if msg == nil || msg.From == nil || msg.Text == "" {
		return nil, nil
	}

	in := &Inbound{
		ChatID: msg.Chat.ID,
		UserID: strconv.FormatInt(msg.From.ID, 10),
		Text:   msg.Text,
	}
	if msg.IsCommand() {
		in.IsCommand = true
		in.Command = msg.Command()
		in.Args = msg.CommandArguments()
	}
	return in, nil
}
