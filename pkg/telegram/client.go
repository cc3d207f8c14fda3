package telegram

import (
	"context"
	"errors"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends formatted text to a single chat.
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
}

type client struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	maxRetry int
}

// NewClient authenticates the bot and targets chatID. Messages are sent as
// legacy Markdown.
func NewClient(botToken string, chatID int64) (Notifier, error) {
	if chatID == 0 {
		return nil, errors.New("telegram chat id is required")
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &client{bot: bot, chatID: chatID, maxRetry: 2}, nil
}

// SendMessage delivers text, waiting out Telegram flood control up to maxRetry times.
func (c *client) SendMessage(ctx context.Context, text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := c.bot.Send(msg)
		wait, retry := retryAfter(err)
		if !retry || attempt >= c.maxRetry {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// retryAfter reports how long Telegram asked us to back off, if at all.
func retryAfter(err error) (time.Duration, bool) {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) || apiErr.RetryAfter <= 0 {
		return 0, false
	}
	return time.Duration(apiErr.RetryAfter) * time.Second, true
}
