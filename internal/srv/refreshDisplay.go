package srv

import (
	"github.com/hajimehoshi/bitmapfont/v2"
	"github.com/jypelle/vekimeteo/internal/face"
	"github.com/jypelle/vekimeteo/internal/images"
	"github.com/sirupsen/logrus"
	"image"
	"image/color"
)

func (s *ServerApp) refreshDisplay() {
	var imgToDisplay image.Image

	switch s.currentScreen {
	case INTRO_SCREEN:
		imgToDisplay = images.IntroImage
	case FACE_SCREEN:
		imgToDisplay = s.renderFace()
	case END_SCREEN:
		imgToDisplay = renderMessage(s.displayDevice.Bounds(), "See you!")
	}
	s.displayDevice.ShowImage(imgToDisplay)
}

func (s *ServerApp) renderFace() image.Image {
	logrus.Debugf("Display face")
	redrawCount.Inc()

	bounds := s.displayDevice.Bounds()
	surface := face.NewImageSurface(bounds.Dx(), bounds.Dy())
	face.Render(
		surface,
		s.clockSource.Reading(),
		s.displayMode.RenderMode(),
		s.snapshot,
		s.layouts.forShape(s.displayMode.Round()))
	return surface.Image()
}

func renderMessage(bounds image.Rectangle, message string) image.Image {
	surface := face.NewImageSurface(bounds.Dx(), bounds.Dy())
	surface.FillRect(surface.Bounds(), color.Black)

	paint := face.Paint{Color: color.White, Face: bitmapfont.Face, AntiAlias: true}
	x := (bounds.Dx() - surface.MeasureText(message, paint)) / 2
	surface.DrawText(message, x, (bounds.Dy()+face.BitmapTextSize)/2, paint)
	return surface.Image()
}
