package notifier

import (
	"context"
	"log/slog"

	"github.com/AdamBeresnev/billiards-league/internal/events"
	"github.com/AdamBeresnev/billiards-league/internal/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Notifier announces league events outside the app.
type Notifier interface {
	NotifyGameRecorded(ctx context.Context, game events.GameRecorded) error
}

// Noop drops every notification.
type Noop struct{}

func (Noop) NotifyGameRecorded(context.Context, events.GameRecorded) error { return nil }

// Listen forwards every recorded game on bus to n until ctx is cancelled.
// Delivery failures are counted and logged, never retried.
func Listen(ctx context.Context, bus *events.Bus, n Notifier, m metrics.Metrics) error {
	return bus.Handle(ctx, events.TopicGameRecorded, func(ctx context.Context, msg *message.Message) error {
		game, err := events.Decode[events.GameRecorded](msg)
		if err != nil {
			return err
		}
		if err := n.NotifyGameRecorded(ctx, game); err != nil {
			m.IncNotifications(false)
			return err
		}
		m.IncNotifications(true)
		slog.Debug("Game result announced", "game_id", game.ID)
		return nil
	})
}
