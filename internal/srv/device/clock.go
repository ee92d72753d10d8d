package device

import (
	"github.com/go-co-op/gocron"
	"github.com/jypelle/vekimeteo/internal/srv/event"
	"github.com/sirupsen/logrus"
	"sync"
	"time"
)

// Clock sends a time tick at the start of every minute.
type Clock struct {
	lock         sync.Mutex
	eventChannel chan event.TickerEvent

	scheduler *gocron.Scheduler
	schedule  func(*gocron.Scheduler) *gocron.Scheduler

	stopped chan struct{}
}

func NewClock() *Clock {
	return newClock(func(s *gocron.Scheduler) *gocron.Scheduler {
		return s.Cron("* * * * *")
	})
}

func newClock(schedule func(*gocron.Scheduler) *gocron.Scheduler) *Clock {
	return &Clock{
		eventChannel: make(chan event.TickerEvent),
		schedule:     schedule,
		stopped:      make(chan struct{}),
	}
}

func (d *Clock) Start() error {
	logrus.Infof("Start clock device")
	d.lock.Lock()
	defer d.lock.Unlock()

	d.scheduler = gocron.NewScheduler(time.Local)
	d.scheduler.SingletonModeAll()
	if _, err := d.schedule(d.scheduler).Do(d.tick); err != nil {
		return err
	}
	d.scheduler.StartAsync()
	return nil
}

func (d *Clock) StopSendingEvent() {
	logrus.Infof("Stop clock device")
	d.lock.Lock()
	defer d.lock.Unlock()

	close(d.stopped)
	if d.scheduler != nil {
		d.scheduler.Stop()
	}
}

func (d *Clock) EventChannel() chan event.TickerEvent {
	return d.eventChannel
}

func (d *Clock) tick() {
	select {
	case d.eventChannel <- event.TickerEvent{Data: event.TickerEventTimeTickData{}}:
	case <-d.stopped:
	}
}
