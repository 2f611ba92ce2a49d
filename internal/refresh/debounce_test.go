package refresh

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var runs int64
	d := &Debouncer{
		Window: 40 * time.Millisecond,
		Fn:     func(context.Context) { atomic.AddInt64(&runs, 1) },
	}
	defer d.Stop()

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		d.Trigger(ctx)
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&runs) == 1
	}, time.Second, 10*time.Millisecond, "burst should collapse to one recompute")

	time.Sleep(100 * time.Millisecond)
	require.EqualValues(t, 1, atomic.LoadInt64(&runs), "no extra recomputes after the burst")
}

func TestDebouncer_NewEventRestartsWindow(t *testing.T) {
	var runs int64
	d := &Debouncer{
		Window: 80 * time.Millisecond,
		Fn:     func(context.Context) { atomic.AddInt64(&runs, 1) },
	}
	defer d.Stop()

	ctx := context.Background()
	d.Trigger(ctx)
	time.Sleep(40 * time.Millisecond)
	d.Trigger(ctx) // supersedes the first timer

	time.Sleep(60 * time.Millisecond) // 100ms after first trigger, 60ms after second
	require.EqualValues(t, 0, atomic.LoadInt64(&runs), "superseded timer must not fire")

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&runs) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var runs int64
	d := &Debouncer{
		Window: 30 * time.Millisecond,
		Fn:     func(context.Context) { atomic.AddInt64(&runs, 1) },
	}

	d.Trigger(context.Background())
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	require.EqualValues(t, 0, atomic.LoadInt64(&runs))
}

func TestDebouncer_CancelledContextSkipsRecompute(t *testing.T) {
	var runs int64
	d := &Debouncer{
		Window: 20 * time.Millisecond,
		Fn:     func(context.Context) { atomic.AddInt64(&runs, 1) },
	}
	defer d.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	d.Trigger(ctx)
	cancel()

	time.Sleep(60 * time.Millisecond)
	require.EqualValues(t, 0, atomic.LoadInt64(&runs))
}
