package event

import (
	"github.com/jypelle/vekimeteo/apimodel"
)

// Internal
type InternalEvent struct {
	Data interface{}
}

type InternalEventStartData struct{}

// InternalEventRedrawTickData is posted by the redraw timer. Ticks from a
// cancelled timer carry an outdated generation.
type InternalEventRedrawTickData struct {
	Generation uint64
}

// Ticker
type TickerEvent struct {
	Data interface{}
}

type TickerEventTimeTickData struct{}

// Time zone
type TimeZoneEvent struct {
	Data interface{}
}

type TimeZoneEventChangedData struct{}

// Buttons
type ButtonId int

const (
	VISIBILITY_BUTTON ButtonId = iota
	AMBIENT_BUTTON
)

type ButtonEventType int

const (
	PRESS_EVENT_TYPE ButtonEventType = iota
	RELEASE_EVENT_TYPE
)

type ButtonEvent struct {
	ButtonId        ButtonId
	ButtonEventType ButtonEventType
	PressStepCount  int64
}

// Api
type ApiEvent struct {
	Result chan error
	Data   interface{}
}

type ApiEventVisibilityData struct {
	Visible bool
}

type ApiEventAmbientData struct {
	Ambient bool
}

type ApiEventLowBitAmbientData struct {
	LowBitAmbient bool
}

type ApiEventShapeData struct {
	Round bool
}

type ApiEventTimeZoneData struct {
	Zone string
}

type ApiEventTapData struct{}

// Queries answer on Reply before Result is sent
type ApiEventWeatherQueryData struct {
	Reply chan apimodel.WeatherInfo
}

type ApiEventModeQueryData struct {
	Reply chan apimodel.ModeInfo
}
