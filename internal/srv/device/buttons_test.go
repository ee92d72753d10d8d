package device

import (
	"testing"
	"time"

	"github.com/jypelle/vekimeteo/internal/srv/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestButtonPressAndRelease(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO16", L: gpio.High}
	button := &Button{buttonId: event.VISIBILITY_BUTTON, pin: pin}
	events := make(chan event.ButtonEvent, 10)

	button.Refresh(events)
	assert.Empty(t, events)

	// pull up: pressed reads low
	pin.L = gpio.Low
	button.Refresh(events)
	require.Len(t, events, 1)
	assert.Equal(t, event.ButtonEvent{ButtonId: event.VISIBILITY_BUTTON, ButtonEventType: event.PRESS_EVENT_TYPE, PressStepCount: 1}, <-events)

	// held within the same step
	button.Refresh(events)
	assert.Empty(t, events)

	button.lastChange = time.Now().Add(-2 * pressStepDuration)
	button.Refresh(events)
	require.Len(t, events, 1)
	assert.Equal(t, int64(2), (<-events).PressStepCount)

	pin.L = gpio.High
	button.Refresh(events)
	require.Len(t, events, 1)
	assert.Equal(t, event.ButtonEvent{ButtonId: event.VISIBILITY_BUTTON, ButtonEventType: event.RELEASE_EVENT_TYPE, PressStepCount: 2}, <-events)
	assert.Equal(t, int64(0), button.pressStepCount)
}
