package refresh

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ChannelRoomEvents carries room-change notifications: the payload is the
// room ID that mutated (check-in, checkout, manual status, folio change).
const ChannelRoomEvents = "frontdesk:room_events"

// Publisher fans room-change events out to push consumers. A nil Publisher
// (or nil client) is a no-op so tests and minimal deployments can skip redis
// entirely.
type Publisher struct {
	RDB *redis.Client
	Log *zap.Logger
}

func (p *Publisher) RoomChanged(ctx context.Context, roomID string) {
	if p == nil || p.RDB == nil {
		return
	}
	if err := p.RDB.Publish(ctx, ChannelRoomEvents, roomID).Err(); err != nil && p.Log != nil {
		p.Log.Warn("room event publish failed", zap.String("room_id", roomID), zap.Error(err))
	}
}

// Listener subscribes to room-change events and funnels them through a
// Debouncer, so downstream recomputation sees one trigger per burst.
type Listener struct {
	RDB      *redis.Client
	Debounce *Debouncer
	Log      *zap.Logger
}

// Run blocks until ctx is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	sub := l.RDB.Subscribe(ctx, ChannelRoomEvents)
	defer func() { _ = sub.Close() }()

	log := l.Log
	if log == nil {
		log = zap.NewNop()
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			l.Debounce.Stop()
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				l.Debounce.Stop()
				return nil
			}
			log.Debug("room event received", zap.String("room_id", msg.Payload))
			l.Debounce.Trigger(ctx)
		}
	}
}
