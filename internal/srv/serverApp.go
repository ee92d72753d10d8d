package srv

import (
	"github.com/jypelle/vekimeteo/internal/datasync"
	"github.com/jypelle/vekimeteo/internal/srv/config"
	"github.com/jypelle/vekimeteo/internal/srv/device"
	"github.com/jypelle/vekimeteo/internal/srv/event"
	"github.com/jypelle/vekimeteo/internal/version"
	"github.com/jypelle/vekimeteo/internal/weather"
	"github.com/sirupsen/logrus"
	"os"
	"os/exec"
	"time"
)

type ServerApp struct {
	*config.ServerConfig
	displayDevice  *device.Display
	clockDevice    *device.Clock
	buttonsDevice  *device.Buttons
	timeZoneDevice *device.TimeZoneWatcher
	apiDevice      *device.Api

	snapshot    *weather.Snapshot
	dataChannel *datasync.Channel
	clockSource *ClockSource
	displayMode *DisplayModeController
	layouts     *faceLayouts

	currentScreen Screen

	internalEventChannel chan event.InternalEvent
	stopping             chan struct{}

	eventLoopAskDone chan bool
	eventLoopDone    chan bool
}

// Upper bound on the data session release when stopping
const teardownTimeout = 5 * time.Second

type Screen int64

const (
	INTRO_SCREEN Screen = iota
	FACE_SCREEN
	END_SCREEN
)

func NewServerApp(configDir string, debugMode bool, simulationMode bool) *ServerApp {

	logrus.Debugf("Creation of vekimeteo server %s ...", version.AppVersion.String())

	app := &ServerApp{
		currentScreen:        INTRO_SCREEN,
		internalEventChannel: make(chan event.InternalEvent),
		stopping:             make(chan struct{}),
		eventLoopAskDone:     make(chan bool),
		eventLoopDone:        make(chan bool),
		ServerConfig:         config.NewServerConfig(configDir, debugMode, simulationMode),
	}

	var err error
	app.layouts, err = newFaceLayouts(app.Layout, app.Theme)
	if err != nil {
		logrus.Fatalf("Unable to load face layouts: %v\n", err)
	}

	app.displayDevice = device.NewDisplay(app.SimulationMode, app.Display)
	app.clockDevice = device.NewClock()
	app.buttonsDevice = device.NewButtons(app.SimulationMode, app.Buttons)
	app.timeZoneDevice = device.NewTimeZoneWatcher(app.TimeZone.WatchDir)
	app.apiDevice = device.NewApi(app.ServerConfig)

	app.snapshot = &weather.Snapshot{}
	app.dataChannel = datasync.NewChannel(
		NewBackend(app.Sync),
		app.Sync.Path,
		time.Duration(app.Sync.DialTimeout)*time.Second,
		app.snapshot)
	app.clockSource = NewClockSource(app.timeZoneDevice.LoadLocation)
	app.displayMode = NewDisplayModeController(
		app.dataChannel,
		app.timeZoneDevice,
		app.clockSource,
		app.refreshDisplay,
		app.postInternalEvent)
	app.displayMode.OnLowBitAmbientCapabilityChanged(app.Display.LowBitAmbient)

	logrus.Debugln("Server created")

	return app
}

// NewBackend picks the data sync transport.
func NewBackend(syncParam config.SyncParam) datasync.Backend {
	switch syncParam.Backend {
	case "redis":
		return datasync.NewRedisBackend(syncParam.Url, syncParam.ChannelPrefix)
	default:
		return datasync.NewWebsocketBackend(syncParam.Url)
	}
}

func (s *ServerApp) Start() {
	logrus.Printf("Starting vekimeteo server ...")

	logrus.Printf("Starting devices ...")

	// Start display device
	s.displayDevice.Start()

	// Display startup screen
	s.refreshDisplay()
	time.Sleep(2 * time.Second)

	// Start event loop
	go s.eventLoop()

	// Start clock device
	if err := s.clockDevice.Start(); err != nil {
		logrus.Fatalf("Unable to start clock device: %v\n", err)
	}

	// Start buttons device
	s.buttonsDevice.Start()

	// Start api device
	s.apiDevice.Start()

	// Show the face
	s.postInternalEvent(event.InternalEvent{Data: event.InternalEventStartData{}})
}

func (s *ServerApp) Stop(halt bool) {
	logrus.Printf("Stopping vekimeteo server ...")

	// Stop api
	s.apiDevice.StopSendingEvent()

	// Stop buttons device
	s.buttonsDevice.StopSendingEvent()

	// Stop clock device
	s.clockDevice.StopSendingEvent()

	// Stop event loop
	logrus.Infof("Stop event loop")
	close(s.stopping)
	s.eventLoopAskDone <- true
	<-s.eventLoopDone

	// Cancel redraw timer, stop watching time zone, disconnect data channel
	select {
	case <-s.displayMode.Teardown():
	case <-time.After(teardownTimeout):
		logrus.Warnf("Data channel still disconnecting after %v", teardownTimeout)
	}

	// Display end screen
	s.currentScreen = END_SCREEN
	s.refreshDisplay()

	// Stop display device
	s.displayDevice.Stop()

	logrus.Printf("Server stopped")

	if halt {
		logrus.Printf("System halt")
		haltCmd := exec.Command("sudo", "halt")
		err := haltCmd.Run()
		if err != nil {
			logrus.Panicf("Unable to halt the system: %v", err)
		}
	}
	os.Exit(0)
}

func (s *ServerApp) postInternalEvent(ev event.InternalEvent) {
	select {
	case s.internalEventChannel <- ev:
	case <-s.stopping:
	}
}
