package service

import (
	"context"

	"trading-journal/pkg/logger"
	"trading-journal/pkg/telegram"
)

type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "info"
	NotificationSuccess NotificationLevel = "success"
	NotificationWarning NotificationLevel = "warning"
	NotificationError   NotificationLevel = "error"
)

// Notification is a user-visible message. Sticky notifications must not be
// auto-dismissed.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
	Sticky  bool              `json:"sticky"`
}

// Notifier delivers notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Notification) {}

type logNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier writes notifications to the application log.
func NewLogNotifier(log *logger.Logger) Notifier {
	return &logNotifier{logger: log}
}

func (n *logNotifier) Notify(ctx context.Context, note Notification) {
	switch note.Level {
	case NotificationError:
		n.logger.ErrorContext(ctx, note.Title, logger.StringField("message", note.Message), logger.Field("sticky", note.Sticky))
	case NotificationWarning:
		n.logger.WarnContext(ctx, note.Title, logger.StringField("message", note.Message))
	default:
		n.logger.InfoContext(ctx, note.Title, logger.StringField("message", note.Message))
	}
}

type telegramNotifier struct {
	client telegram.Notifier
	logger *logger.Logger
}

// NewTelegramNotifier sends notifications to a Telegram chat. Delivery
// failures are logged, never returned.
func NewTelegramNotifier(client telegram.Notifier, log *logger.Logger) Notifier {
	return &telegramNotifier{client: client, logger: log}
}

func (n *telegramNotifier) Notify(ctx context.Context, note Notification) {
	text := telegram.FormatNotification(string(note.Level), note.Title, note.Message, note.Sticky)
	if err := n.client.SendMessage(ctx, text); err != nil {
		n.logger.ErrorContext(ctx, "Failed to send telegram notification", logger.ErrorField(err), logger.StringField("title", note.Title))
	}
}

// MultiNotifier fans a notification out to several notifiers.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, n Notification) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}
