package srv

import (
	"fmt"
	"github.com/jypelle/vekimeteo/apimodel"
	"github.com/jypelle/vekimeteo/internal/srv/event"
	"github.com/jypelle/vekimeteo/internal/weather"
	"github.com/sirupsen/logrus"
	"syscall"
)

// Long press on the visibility button powers the device off
const poweroffPressStepCount = 20

func (s *ServerApp) eventLoop() {
	for loop := true; loop; {
		select {
		case ev := <-s.internalEventChannel:
			switch data := ev.Data.(type) {
			case event.InternalEventStartData:
				s.currentScreen = FACE_SCREEN
				s.displayMode.OnWindowInsets(s.Display.Round)
				s.onVisibilityChanged(true)
			case event.InternalEventRedrawTickData:
				s.displayMode.HandleRedrawTick(data.Generation)
			}
		case <-s.clockDevice.EventChannel():
			logrus.Debugf("Receive time tick event")
			s.displayMode.OnTimeTick()
		case <-s.timeZoneDevice.EventChannel():
			logrus.Infof("Receive time zone changed event")
			s.displayMode.OnTimeZoneChanged()
		case ev := <-s.dataChannel.EventChannel():
			if s.dataChannel.HandleEvent(ev) {
				s.displayMode.OnDataChanged()
			}
		case ev := <-s.buttonsDevice.EventChannel():
			logrus.Debugf("Receive button event: %d, %d, %d", ev.ButtonId, ev.ButtonEventType, ev.PressStepCount)
			switch ev.ButtonId {
			case event.VISIBILITY_BUTTON:
				if ev.ButtonEventType == event.RELEASE_EVENT_TYPE && ev.PressStepCount < poweroffPressStepCount {
					s.onVisibilityChanged(!s.displayMode.Mode().Visible)
				} else if ev.ButtonEventType == event.PRESS_EVENT_TYPE && ev.PressStepCount == poweroffPressStepCount {
					logrus.Debugf("See you!")
					syscall.Kill(syscall.Getpid(), syscall.SIGUSR1)
				}
			case event.AMBIENT_BUTTON:
				if ev.ButtonEventType == event.RELEASE_EVENT_TYPE {
					s.displayMode.OnAmbientModeChanged(!s.displayMode.Mode().Ambient)
				}
			}
		case ev := <-s.apiDevice.EventChannel():
			ev.Result <- s.handleApiEvent(ev.Data)
		case <-s.eventLoopAskDone:
			loop = false
		}
	}
	s.eventLoopDone <- true
}

func (s *ServerApp) onVisibilityChanged(visible bool) {
	if visible {
		s.displayDevice.SetOn()
	}
	s.displayMode.OnVisibilityChanged(visible)
	if !visible {
		s.displayDevice.SetOff()
	}
}

func (s *ServerApp) handleApiEvent(data interface{}) error {
	switch data := data.(type) {
	case event.ApiEventVisibilityData:
		s.onVisibilityChanged(data.Visible)
	case event.ApiEventAmbientData:
		s.displayMode.OnAmbientModeChanged(data.Ambient)
	case event.ApiEventLowBitAmbientData:
		s.displayMode.OnLowBitAmbientCapabilityChanged(data.LowBitAmbient)
	case event.ApiEventShapeData:
		s.displayMode.OnWindowInsets(data.Round)
	case event.ApiEventTapData:
		s.displayMode.OnTap()
	case event.ApiEventTimeZoneData:
		if err := s.displayMode.SetTimeZone(data.Zone); err != nil {
			errorMessage := apimodel.UnknownTimeZoneErrorMessage
			errorMessage.ErrMessage += ": " + data.Zone
			return &errorMessage
		}
	case event.ApiEventWeatherQueryData:
		data.Reply <- weatherInfo(s.snapshot)
	case event.ApiEventModeQueryData:
		data.Reply <- s.modeInfo()
	default:
		return fmt.Errorf("unsupported api event %T", data)
	}
	return nil
}

func weatherInfo(snapshot *weather.Snapshot) apimodel.WeatherInfo {
	info := apimodel.WeatherInfo{}
	if snapshot.High != nil {
		high := *snapshot.High
		info.High = &high
	}
	if snapshot.Low != nil {
		low := *snapshot.Low
		info.Low = &low
	}
	if snapshot.Icon != nil {
		category := snapshot.Icon.String()
		info.Category = &category
	}
	return info
}

func (s *ServerApp) modeInfo() apimodel.ModeInfo {
	mode := s.displayMode.Mode()
	return apimodel.ModeInfo{
		Visible:         mode.Visible,
		Ambient:         mode.Ambient,
		LowBitAmbient:   mode.LowBitAmbient,
		Round:           s.displayMode.Round(),
		TimerRunning:    s.displayMode.TimerRunning(),
		TimeZone:        s.clockSource.Location().String(),
		ConnectionState: s.dataChannel.State().String(),
		Subscribed:      s.dataChannel.Subscribed(),
	}
}
