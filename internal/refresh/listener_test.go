package refresh

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestListener_RoomEventTriggersRecompute(t *testing.T) {
	mr, client := testClient(t)

	var runs int64
	l := &Listener{
		RDB: client,
		Debounce: &Debouncer{
			Window: 20 * time.Millisecond,
			Fn:     func(context.Context) { atomic.AddInt64(&runs, 1) },
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	// Give the subscription a moment to register before publishing.
	require.Eventually(t, func() bool {
		mr.Publish(ChannelRoomEvents, "room-101")
		return atomic.LoadInt64(&runs) >= 1
	}, 2*time.Second, 25*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop on context cancel")
	}
}

func TestListener_BurstCoalesces(t *testing.T) {
	mr, client := testClient(t)

	var runs int64
	l := &Listener{
		RDB: client,
		Debounce: &Debouncer{
			Window: 60 * time.Millisecond,
			Fn:     func(context.Context) { atomic.AddInt64(&runs, 1) },
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	time.Sleep(50 * time.Millisecond) // let the subscription register
	for i := 0; i < 8; i++ {
		mr.Publish(ChannelRoomEvents, "room-101")
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&runs) >= 1
	}, 2*time.Second, 10*time.Millisecond)

	time.Sleep(150 * time.Millisecond)
	require.EqualValues(t, 1, atomic.LoadInt64(&runs), "burst should coalesce into one recompute")
}

func TestPublisher_NilSafe(t *testing.T) {
	var p *Publisher
	p.RoomChanged(context.Background(), "room-101") // must not panic
}
