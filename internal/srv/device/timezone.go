package device

import (
	"fmt"
	"github.com/fsnotify/fsnotify"
	"github.com/jypelle/vekimeteo/internal/srv/event"
	"github.com/sirupsen/logrus"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	timezoneFilename  = "timezone"
	localtimeFilename = "localtime"
)

// TimeZoneWatcher notifies system time zone changes while registered.
type TimeZoneWatcher struct {
	lock         sync.Mutex
	eventChannel chan event.TimeZoneEvent

	watchDir string
	watcher  *fsnotify.Watcher
	closing  chan struct{}
	done     chan bool
}

func NewTimeZoneWatcher(watchDir string) *TimeZoneWatcher {
	return &TimeZoneWatcher{
		eventChannel: make(chan event.TimeZoneEvent),
		watchDir:     watchDir,
	}
}

func (d *TimeZoneWatcher) EventChannel() chan event.TimeZoneEvent {
	return d.eventChannel
}

func (d *TimeZoneWatcher) Register() error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(d.watchDir); err != nil {
		watcher.Close()
		return fmt.Errorf("unable to watch %s: %w", d.watchDir, err)
	}
	logrus.Debugf("Watch time zone changes in %s", d.watchDir)

	d.watcher = watcher
	d.closing = make(chan struct{})
	d.done = make(chan bool)
	go d.watch(watcher, d.closing, d.done)
	return nil
}

func (d *TimeZoneWatcher) Unregister() error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.watcher == nil {
		return nil
	}

	close(d.closing)
	err := d.watcher.Close()
	<-d.done
	d.watcher = nil
	logrus.Debugf("Stop watching time zone changes")
	return err
}

// LoadLocation reads the current system time zone.
func (d *TimeZoneWatcher) LoadLocation() (*time.Location, error) {
	return LoadSystemLocation(d.watchDir)
}

func (d *TimeZoneWatcher) watch(watcher *fsnotify.Watcher, closing chan struct{}, done chan bool) {
	defer func() { done <- true }()

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			name := filepath.Base(ev.Name)
			if name != timezoneFilename && name != localtimeFilename {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logrus.Debugf("Time zone file event: %s", ev)
			select {
			case d.eventChannel <- event.TimeZoneEvent{Data: event.TimeZoneEventChangedData{}}:
			case <-closing:
				return
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logrus.Warnf("Time zone watcher error: %v", err)
		case <-closing:
			return
		}
	}
}

// LoadSystemLocation looks up the zone name in <dir>/timezone, then in the
// <dir>/localtime symlink target, then parses <dir>/localtime itself.
func LoadSystemLocation(dir string) (*time.Location, error) {
	if raw, err := os.ReadFile(filepath.Join(dir, timezoneFilename)); err == nil {
		if name := strings.TrimSpace(string(raw)); name != "" {
			return time.LoadLocation(name)
		}
	}

	localtime := filepath.Join(dir, localtimeFilename)
	if target, err := os.Readlink(localtime); err == nil {
		if i := strings.LastIndex(target, "zoneinfo/"); i >= 0 {
			if location, err := time.LoadLocation(target[i+len("zoneinfo/"):]); err == nil {
				return location, nil
			}
		}
	}

	tzData, err := os.ReadFile(localtime)
	if err != nil {
		return nil, fmt.Errorf("no time zone found in %s: %w", dir, err)
	}
	return time.LoadLocationFromTZData("Local", tzData)
}
