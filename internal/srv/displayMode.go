package srv

import (
	"time"

	"github.com/jypelle/vekimeteo/internal/face"
	"github.com/jypelle/vekimeteo/internal/srv/event"
	"github.com/sirupsen/logrus"
)

const redrawInterval = time.Second

type DisplayMode struct {
	Visible                    bool
	Ambient                    bool
	LowBitAmbient              bool
	TimeZoneReceiverRegistered bool
}

type DataChannel interface {
	Connect()
	Disconnect() <-chan struct{}
}

type TimeZoneReceiver interface {
	Register() error
	Unregister() error
}

type tickTimer interface {
	Stop() bool
}

// DisplayModeController reacts to lifecycle callbacks and owns the redraw
// timer. The timer is running iff the face is visible and not ambient.
// All methods must be called from the event loop.
type DisplayModeController struct {
	mode          DisplayMode
	round         bool
	timeAntiAlias bool

	channel          DataChannel
	timeZoneReceiver TimeZoneReceiver
	clock            *ClockSource
	redraw           func()
	post             func(event.InternalEvent)

	now       func() time.Time
	afterFunc func(time.Duration, func()) tickTimer

	timer           tickTimer
	timerGeneration uint64
}

func NewDisplayModeController(
	channel DataChannel,
	timeZoneReceiver TimeZoneReceiver,
	clock *ClockSource,
	redraw func(),
	post func(event.InternalEvent)) *DisplayModeController {

	return &DisplayModeController{
		timeAntiAlias:    true,
		channel:          channel,
		timeZoneReceiver: timeZoneReceiver,
		clock:            clock,
		redraw:           redraw,
		post:             post,
		now:              time.Now,
		afterFunc: func(d time.Duration, f func()) tickTimer {
			return time.AfterFunc(d, f)
		},
	}
}

func (c *DisplayModeController) Mode() DisplayMode {
	return c.mode
}

func (c *DisplayModeController) Round() bool {
	return c.round
}

func (c *DisplayModeController) RenderMode() face.Mode {
	return face.Mode{Ambient: c.mode.Ambient, TimeAntiAlias: c.timeAntiAlias}
}

func (c *DisplayModeController) TimerRunning() bool {
	return c.timer != nil
}

func (c *DisplayModeController) OnVisibilityChanged(visible bool) {
	lifecycleEventCount.WithLabelValues("visibility").Inc()
	logrus.Debugf("Visibility changed: %t", visible)
	c.mode.Visible = visible

	if visible {
		c.channel.Connect()
		c.registerReceiver()
		c.clock.Reset()
	} else {
		c.unregisterReceiver()
		c.channel.Disconnect()
	}

	c.updateTimer()
}

func (c *DisplayModeController) OnAmbientModeChanged(ambient bool) {
	lifecycleEventCount.WithLabelValues("ambient").Inc()
	if c.mode.Ambient != ambient {
		logrus.Debugf("Ambient mode changed: %t", ambient)
		c.mode.Ambient = ambient
		if c.mode.LowBitAmbient {
			c.timeAntiAlias = !ambient
		}
		c.requestRedraw()
	}

	c.updateTimer()
}

func (c *DisplayModeController) OnLowBitAmbientCapabilityChanged(lowBitAmbient bool) {
	lifecycleEventCount.WithLabelValues("low_bit_ambient").Inc()
	c.mode.LowBitAmbient = lowBitAmbient
}

func (c *DisplayModeController) OnWindowInsets(round bool) {
	lifecycleEventCount.WithLabelValues("window_insets").Inc()
	c.round = round
	c.requestRedraw()
}

// OnTimeTick is the once per minute tick, the only one received in ambient mode.
func (c *DisplayModeController) OnTimeTick() {
	lifecycleEventCount.WithLabelValues("time_tick").Inc()
	c.requestRedraw()
}

func (c *DisplayModeController) OnTap() {
	lifecycleEventCount.WithLabelValues("tap").Inc()
	c.requestRedraw()
}

func (c *DisplayModeController) OnDataChanged() {
	c.requestRedraw()
}

func (c *DisplayModeController) OnTimeZoneChanged() {
	lifecycleEventCount.WithLabelValues("time_zone").Inc()
	c.clock.Reset()
	c.requestRedraw()
}

func (c *DisplayModeController) SetTimeZone(zone string) error {
	if err := c.clock.SetZone(zone); err != nil {
		return err
	}
	c.requestRedraw()
	return nil
}

// HandleRedrawTick redraws and re-arms the timer on the next interval boundary.
func (c *DisplayModeController) HandleRedrawTick(generation uint64) {
	if c.timer == nil || generation != c.timerGeneration {
		return
	}
	c.timer = nil

	c.requestRedraw()

	if c.shouldTimerBeRunning() {
		c.schedule(nextTickDelay(c.now()))
	}
}

// Teardown cancels the redraw timer, unregisters the time zone receiver and
// disconnects the data channel. The returned channel is closed once the data
// session is released.
func (c *DisplayModeController) Teardown() <-chan struct{} {
	c.cancelTimer()
	c.unregisterReceiver()
	return c.channel.Disconnect()
}

func (c *DisplayModeController) shouldTimerBeRunning() bool {
	return c.mode.Visible && !c.mode.Ambient
}

// updateTimer restarts the timer, with an immediate first tick, when it
// should be running.
func (c *DisplayModeController) updateTimer() {
	c.cancelTimer()
	if c.shouldTimerBeRunning() {
		c.schedule(0)
	}
}

func (c *DisplayModeController) cancelTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerGeneration++
}

func (c *DisplayModeController) schedule(delay time.Duration) {
	generation := c.timerGeneration
	c.timer = c.afterFunc(delay, func() {
		c.post(event.InternalEvent{Data: event.InternalEventRedrawTickData{Generation: generation}})
	})
}

func (c *DisplayModeController) requestRedraw() {
	if c.mode.Visible {
		c.redraw()
	}
}

func (c *DisplayModeController) registerReceiver() {
	if c.mode.TimeZoneReceiverRegistered {
		return
	}
	if err := c.timeZoneReceiver.Register(); err != nil {
		logrus.Warnf("Unable to watch time zone changes: %v", err)
		return
	}
	c.mode.TimeZoneReceiverRegistered = true
}

func (c *DisplayModeController) unregisterReceiver() {
	if !c.mode.TimeZoneReceiverRegistered {
		return
	}
	c.mode.TimeZoneReceiverRegistered = false
	if err := c.timeZoneReceiver.Unregister(); err != nil {
		logrus.Warnf("Unable to stop watching time zone changes: %v", err)
	}
}

// nextTickDelay aligns ticks on whole intervals.
func nextTickDelay(now time.Time) time.Duration {
	return redrawInterval - time.Duration(now.UnixNano()%int64(redrawInterval))
}
