package srv

import (
	"fmt"
	"image/color"

	"github.com/jypelle/vekimeteo/internal/face"
	"github.com/jypelle/vekimeteo/internal/srv/config"
	"golang.org/x/image/font"
)

type shapeLayout struct {
	param    config.LayoutParam
	timeFace font.Face
	dateFace font.Face
	tempFace font.Face
}

// faceLayouts holds the fonts of both screen shapes, loaded once.
type faceLayouts struct {
	rect       shapeLayout
	round      shapeLayout
	background color.Color
	foreground color.Color
}

func newFaceLayouts(layoutsParam config.LayoutsParam, themeParam config.ThemeParam) (*faceLayouts, error) {
	background, err := themeParam.BackgroundColor()
	if err != nil {
		return nil, err
	}
	foreground, err := themeParam.ForegroundColor()
	if err != nil {
		return nil, err
	}

	rect, err := newShapeLayout(layoutsParam.Rect)
	if err != nil {
		return nil, fmt.Errorf("rect layout: %w", err)
	}
	round, err := newShapeLayout(layoutsParam.Round)
	if err != nil {
		return nil, fmt.Errorf("round layout: %w", err)
	}

	return &faceLayouts{rect: rect, round: round, background: background, foreground: foreground}, nil
}

func newShapeLayout(param config.LayoutParam) (shapeLayout, error) {
	var err error
	layout := shapeLayout{param: param}
	if layout.timeFace, err = face.LoadFace(param.TimeTextSize); err != nil {
		return layout, err
	}
	if layout.dateFace, err = face.LoadFace(param.DateTextSize); err != nil {
		return layout, err
	}
	if layout.tempFace, err = face.LoadFace(param.TempTextSize); err != nil {
		return layout, err
	}
	return layout, nil
}

func (l *faceLayouts) forShape(round bool) face.Layout {
	shape := l.rect
	if round {
		shape = l.round
	}
	return face.Layout{
		XOffset:      shape.param.XOffset,
		YOffset:      shape.param.YOffset,
		TimeFace:     shape.timeFace,
		TimeTextSize: face.TextSize(shape.param.TimeTextSize),
		DateFace:     shape.dateFace,
		TempFace:     shape.tempFace,
		TempTextSize: face.TextSize(shape.param.TempTextSize),
		Background:   l.background,
		Foreground:   l.foreground,
	}
}
