// Package events is the in-process publish/subscribe bus that decouples writes
// from their side effects (notifications, identity change listeners).
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	TopicGameRecorded = "game.recorded"
	TopicGameDeleted  = "game.deleted"
	TopicSignedIn     = "identity.signed_in"
	TopicSignedOut    = "identity.signed_out"
	TopicAdminChanged = "admin.changed"
)

type GameRecorded struct {
	ID     int64  `json:"id"`
	Winner string `json:"winner"`
	Loser  string `json:"loser"`
	Score  string `json:"score"`
	Bonus  int    `json:"bonus"`
}

type GameDeleted struct {
	ID int64 `json:"id"`
}

type IdentityChanged struct {
	Subject  string `json:"subject"`
	Provider string `json:"provider"`
}

type AdminChanged struct {
	AdminID    string `json:"admin_id"`
	Registered bool   `json:"registered"`
}

type Bus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
	return &Bus{pubsub: pubsub, logger: logger}
}

// Publish encodes payload as JSON and hands it to every current subscriber of topic.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)

	b.logger.Debug("Publishing event", "topic", topic, "uuid", msg.UUID)
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", topic, err)
	}
	return nil
}

// Subscribe returns the raw message stream of topic. The stream closes when ctx is
// cancelled; every message must be acked before the next one is delivered.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// Handle runs fn for every message of topic until ctx is cancelled. Handler errors
// are logged and the message is acked anyway: events are never redelivered.
func (b *Bus) Handle(ctx context.Context, topic string, fn func(ctx context.Context, msg *message.Message) error) error {
	messages, err := b.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	go func() {
		for msg := range messages {
			if err := fn(ctx, msg); err != nil {
				b.logger.Error("Event handler failed", "topic", topic, "uuid", msg.UUID, "error", err)
			}
			msg.Ack()
		}
	}()
	return nil
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// Decode unmarshals the JSON payload of msg.
func Decode[T any](msg *message.Message) (T, error) {
	var v T
	err := json.Unmarshal(msg.Payload, &v)
	return v, err
}
