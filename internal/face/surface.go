package face

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// Paint describes how a piece of text is drawn.
type Paint struct {
	Color     color.Color
	Face      font.Face
	AntiAlias bool
}

// Surface is the drawing collaborator the face is rendered onto. Text
// coordinates are baseline origins.
type Surface interface {
	Bounds() image.Rectangle
	FillRect(r image.Rectangle, c color.Color)
	DrawLine(from, to image.Point, c color.Color)
	MeasureText(text string, paint Paint) int
	DrawText(text string, x, y int, paint Paint)
	DrawBitmap(img image.Image, at image.Point)
}
