// Package notify carries user-facing diagnostics out of the editing
// session: validation rejections, upload failures, integrity warnings, and
// transport errors all surface here instead of being swallowed at their
// origin.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topic is the in-process channel notifications travel on.
const Topic = "coursedesk.notifications"

// Level grades a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is one user-facing message.
type Notification struct {
	Level     Level  `json:"level"`
	Source    string `json:"source"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

// Handler consumes notifications.
type Handler func(ctx context.Context, n Notification) error

// Bus is an in-process notification bus on watermill's gochannel pub/sub.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

// NewBus creates the bus.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger)),
		logger: logger.With("module", "notify"),
	}
}

// Publish emits one notification. Publishing never fails the operation
// that raised it; marshal or transport problems are logged and dropped.
func (b *Bus) Publish(ctx context.Context, n Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to marshal notification", "error", err)

		return
	}

	msg := message.NewMessage(watermill.NewULID(), payload)
	if err := b.pubsub.Publish(Topic, msg); err != nil {
		b.logger.ErrorContext(ctx, "failed to publish notification", "error", err)
	}
}

// Subscribe routes notifications to the handler until ctx is cancelled.
func (b *Bus) Subscribe(ctx context.Context, handler Handler) error {
	messages, err := b.pubsub.Subscribe(ctx, Topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var n Notification
			if err := json.Unmarshal(msg.Payload, &n); err != nil {
				b.logger.Error("failed to decode notification", "error", err)
				msg.Nack()

				continue
			}

			if err := handler(ctx, n); err != nil {
				b.logger.Error("notification handler failed", "error", err)
				msg.Nack()

				continue
			}

			msg.Ack()
		}
	}()

	return nil
}

// Close shuts the bus down.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
