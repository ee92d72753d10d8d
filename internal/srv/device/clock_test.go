package device

import (
	"testing"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/jypelle/vekimeteo/internal/srv/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockTicks(t *testing.T) {
	clock := newClock(func(s *gocron.Scheduler) *gocron.Scheduler {
		return s.Every(20).Milliseconds()
	})
	require.NoError(t, clock.Start())

	for i := 0; i < 2; i++ {
		select {
		case ev := <-clock.EventChannel():
			assert.IsType(t, event.TickerEventTimeTickData{}, ev.Data)
		case <-time.After(5 * time.Second):
			t.Fatal("no tick received")
		}
	}

	// nobody listens anymore: stopping must not block on a pending tick
	done := make(chan struct{})
	go func() {
		clock.StopSendingEvent()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("clock did not stop")
	}
}
