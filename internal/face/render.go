package face

import (
	"image"
	"image/color"

	"github.com/jypelle/vekimeteo/internal/images"
	"github.com/jypelle/vekimeteo/internal/weather"
	"golang.org/x/image/font"
)

// Mode is the part of the display state the renderer depends on.
type Mode struct {
	Ambient       bool
	TimeAntiAlias bool
}

// Layout holds the shape dependent metrics and the theme of the face.
type Layout struct {
	XOffset int
	YOffset int

	TimeFace     font.Face
	TimeTextSize int
	DateFace     font.Face
	TempFace     font.Face
	TempTextSize int

	Background color.Color
	Foreground color.Color
}

var ambientBackground = color.RGBA{0, 0, 0, 255}

// Render draws one frame of the face. It never fails: missing weather data
// is drawn as placeholders, and the placeholders are written back into the
// snapshot.
func Render(s Surface, clock ClockReading, mode Mode, snapshot *weather.Snapshot, layout Layout) {
	bounds := s.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// Background
	if mode.Ambient {
		s.FillRect(bounds, ambientBackground)
	} else {
		s.FillRect(bounds, layout.Background)
	}

	// Time
	timePaint := Paint{Color: layout.Foreground, Face: layout.TimeFace, AntiAlias: mode.TimeAntiAlias}
	timeText := clock.TimeText()
	s.DrawText(timeText, centeredX(s, timeText, timePaint), bounds.Min.Y+layout.YOffset, timePaint)

	if mode.Ambient {
		return
	}

	// Date
	datePaint := Paint{Color: layout.Foreground, Face: layout.DateFace, AntiAlias: true}
	dateText := clock.DateText()
	dateY := bounds.Min.Y + layout.YOffset + layout.TimeTextSize*3/4
	s.DrawText(dateText, centeredX(s, dateText, datePaint), dateY, datePaint)

	// Divider
	dividerY := bounds.Min.Y + height/2 + 10
	s.DrawLine(
		image.Pt(bounds.Min.X+width/2-30, dividerY),
		image.Pt(bounds.Min.X+width/2+30, dividerY),
		layout.Foreground)

	// Temperatures
	if !snapshot.HasTemperatures() {
		snapshot.MarkMissingTemperatures()
	}
	tempPaint := Paint{Color: layout.Foreground, Face: layout.TempFace, AntiAlias: true}
	tempY := bounds.Min.Y + height/2 + layout.XOffset + layout.TempTextSize + 10
	s.DrawText(*snapshot.High, bounds.Min.X+width*45/100, tempY, tempPaint)
	s.DrawText(*snapshot.Low, bounds.Min.X+width*71/100, tempY, tempPaint)

	// Icon
	s.DrawBitmap(weatherIcon(snapshot), image.Pt(bounds.Min.X+width/10, bounds.Min.Y+height/2+layout.XOffset))
}

func weatherIcon(snapshot *weather.Snapshot) image.Image {
	if snapshot.Icon != nil {
		if icon := images.WeatherIcon(*snapshot.Icon); icon != nil {
			return icon
		}
	}
	return images.FallbackImage
}

func centeredX(s Surface, text string, paint Paint) int {
	bounds := s.Bounds()
	return bounds.Min.X + (bounds.Dx()-s.MeasureText(text, paint))/2
}
