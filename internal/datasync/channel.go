package datasync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jypelle/vekimeteo/internal/weather"
	"github.com/sirupsen/logrus"
)

type ConnectionState int64

const (
	DISCONNECTED_STATE ConnectionState = iota
	CONNECTING_STATE
	CONNECTED_STATE
)

func (s ConnectionState) String() string {
	switch s {
	case CONNECTING_STATE:
		return "connecting"
	case CONNECTED_STATE:
		return "connected"
	}
	return "disconnected"
}

type SyncEventKind int64

const (
	CONNECTED_SYNC_EVENT SyncEventKind = iota
	CONNECTION_FAILED_SYNC_EVENT
	CONNECTION_SUSPENDED_SYNC_EVENT
	DATA_CHANGED_SYNC_EVENT
)

func (k SyncEventKind) String() string {
	switch k {
	case CONNECTED_SYNC_EVENT:
		return "connected"
	case CONNECTION_FAILED_SYNC_EVENT:
		return "connection_failed"
	case CONNECTION_SUSPENDED_SYNC_EVENT:
		return "connection_suspended"
	}
	return "data_changed"
}

// SyncEvent is posted by the connection goroutines and handled on the
// owner's event loop.
type SyncEvent struct {
	Generation uint64
	Kind       SyncEventKind
	Session    Session
	Events     []DataEvent
	Err        error
}

const unsubscribeTimeout = 2 * time.Second

// Channel keeps the weather snapshot in sync with the remote data source.
// Connect, Disconnect and HandleEvent must be called from a single goroutine.
type Channel struct {
	eventChannel chan SyncEvent

	backend     Backend
	path        string
	dialTimeout time.Duration
	snapshot    *weather.Snapshot

	state      ConnectionState
	subscribed bool
	generation uint64
	clientId   string
	session    Session
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewChannel(backend Backend, path string, dialTimeout time.Duration, snapshot *weather.Snapshot) *Channel {
	return &Channel{
		eventChannel: make(chan SyncEvent),
		backend:      backend,
		path:         path,
		dialTimeout:  dialTimeout,
		snapshot:     snapshot,
		state:        DISCONNECTED_STATE,
	}
}

func (c *Channel) EventChannel() chan SyncEvent {
	return c.eventChannel
}

func (c *Channel) State() ConnectionState {
	return c.state
}

func (c *Channel) Subscribed() bool {
	return c.subscribed
}

func (c *Channel) ClientId() string {
	return c.clientId
}

// Connect starts a connection attempt unless one is already running or established.
func (c *Channel) Connect() {
	if c.state != DISCONNECTED_STATE {
		logrus.Debugf("Data channel already %s", c.state)
		return
	}

	c.generation++
	c.state = CONNECTING_STATE
	c.clientId = uuid.NewString()

	c.ctx, c.cancel = context.WithCancel(context.Background())

	logrus.Infof("Connecting data channel %s via %s", c.clientId, c.backend.Name())
	connectionAttempts.WithLabelValues(c.backend.Name()).Inc()

	go c.dial(c.ctx, c.generation, c.clientId)
}

// Disconnect unsubscribes, then closes the session. Calling it while already
// disconnected does nothing.
// Disconnect drops the connection right away and releases the session in the
// background, unsubscribing first. The returned channel is closed once the
// session is released.
func (c *Channel) Disconnect() <-chan struct{} {
	done := make(chan struct{})
	if c.state == DISCONNECTED_STATE {
		close(done)
		return done
	}

	logrus.Infof("Disconnecting data channel %s", c.clientId)
	session, subscribed, cancel := c.session, c.subscribed, c.cancel
	c.reset()

	go func() {
		defer close(done)
		if session != nil {
			if subscribed {
				ctx, cancelUnsubscribe := context.WithTimeout(context.Background(), unsubscribeTimeout)
				if err := session.Unsubscribe(ctx); err != nil {
					logrus.Debugf("Unable to unsubscribe: %v", err)
				}
				cancelUnsubscribe()
			}
			if err := session.Close(); err != nil {
				logrus.Debugf("Unable to close data session: %v", err)
			}
		}
		cancel()
	}()
	return done
}

// HandleEvent applies an event posted by the connection goroutines and
// reports whether the snapshot changed.
func (c *Channel) HandleEvent(ev SyncEvent) bool {
	if ev.Generation != c.generation {
		logrus.Debugf("Drop stale %s sync event", ev.Kind)
		if ev.Kind == CONNECTED_SYNC_EVENT && ev.Session != nil {
			go ev.Session.Close()
		}
		return false
	}

	syncEvents.WithLabelValues(ev.Kind.String()).Inc()

	switch ev.Kind {
	case CONNECTED_SYNC_EVENT:
		c.onConnected(ev.Session)
	case CONNECTION_FAILED_SYNC_EVENT:
		logrus.Warnf("Data channel connection failed: %v", ev.Err)
		c.cancel()
		c.reset()
	case CONNECTION_SUSPENDED_SYNC_EVENT:
		logrus.Warnf("Data channel connection suspended: %v", ev.Err)
		session, cancel := c.session, c.cancel
		c.reset()
		go func() {
			if session != nil {
				session.Close()
			}
			cancel()
		}()
	case DATA_CHANGED_SYNC_EVENT:
		if c.state != CONNECTED_STATE {
			return false
		}
		return c.onDataChanged(ev.Events)
	}
	return false
}

func (c *Channel) onConnected(session Session) {
	logrus.Infof("Data channel %s connected, subscribing to %s", c.clientId, c.path)
	c.state = CONNECTED_STATE
	c.session = session
	c.subscribed = true

	go c.listen(c.ctx, c.generation, session)
}

func (c *Channel) onDataChanged(events []DataEvent) bool {
	changed := false
	for _, ev := range events {
		if ev.Type != CHANGED_EVENT {
			continue
		}
		if ev.Path != c.path {
			logrus.Infof("Ignore data event for unknown path %s", ev.Path)
			continue
		}

		update, err := DecodeWeather(ev)
		if err != nil {
			logrus.Warnf("Unable to decode weather payload: %v", err)
			decodeFailures.Inc()
			c.snapshot.Clear()
			changed = true
			continue
		}
		c.snapshot.Apply(update)
		changed = true
	}
	return changed
}

func (c *Channel) reset() {
	c.generation++
	c.state = DISCONNECTED_STATE
	c.subscribed = false
	c.session = nil
	c.ctx = nil
	c.cancel = nil
}

func (c *Channel) dial(ctx context.Context, generation uint64, clientId string) {
	dialCtx, cancel := context.WithTimeout(ctx, c.dialTimeout)
	session, err := c.backend.Connect(dialCtx, clientId)
	cancel()

	if err != nil {
		c.post(ctx, SyncEvent{Generation: generation, Kind: CONNECTION_FAILED_SYNC_EVENT, Err: err})
		return
	}
	if !c.post(ctx, SyncEvent{Generation: generation, Kind: CONNECTED_SYNC_EVENT, Session: session}) {
		session.Close()
	}
}

func (c *Channel) listen(ctx context.Context, generation uint64, session Session) {
	err := session.Listen(ctx, c.path, func(events []DataEvent) {
		c.post(ctx, SyncEvent{Generation: generation, Kind: DATA_CHANGED_SYNC_EVENT, Events: events})
	})
	c.post(ctx, SyncEvent{Generation: generation, Kind: CONNECTION_SUSPENDED_SYNC_EVENT, Err: err})
}

func (c *Channel) post(ctx context.Context, ev SyncEvent) bool {
	select {
	case c.eventChannel <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
