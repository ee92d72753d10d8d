package face

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ImageSurface renders onto an in-memory RGBA image, ready to be pushed to a
// display device.
type ImageSurface struct {
	img *image.RGBA
}

func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

func (s *ImageSurface) Bounds() image.Rectangle {
	return s.img.Bounds()
}

func (s *ImageSurface) FillRect(r image.Rectangle, c color.Color) {
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// DrawLine draws a one pixel wide segment (Bresenham).
func (s *ImageSurface) DrawLine(from, to image.Point, c color.Color) {
	dx, dy := abs(to.X-from.X), -abs(to.Y-from.Y)
	sx, sy := sign(to.X-from.X), sign(to.Y-from.Y)
	e := dx + dy
	for x, y := from.X, from.Y; ; {
		s.img.Set(x, y, c)
		if x == to.X && y == to.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func (s *ImageSurface) MeasureText(text string, paint Paint) int {
	return font.MeasureString(paint.Face, text).Ceil()
}

func (s *ImageSurface) DrawText(text string, x, y int, paint Paint) {
	src := image.NewUniform(paint.Color)
	dot := fixed.P(x, y)

	if paint.AntiAlias {
		d := &font.Drawer{Dst: s.img, Src: src, Face: paint.Face, Dot: dot}
		d.DrawString(text)
		return
	}

	// Render coverage into a mask, then keep only fully on or off pixels
	mask := image.NewAlpha(s.img.Bounds())
	d := &font.Drawer{Dst: mask, Src: image.Opaque, Face: paint.Face, Dot: dot}
	d.DrawString(text)
	for i, a := range mask.Pix {
		if a >= 0x80 {
			mask.Pix[i] = 0xff
		} else {
			mask.Pix[i] = 0
		}
	}
	draw.DrawMask(s.img, s.img.Bounds(), src, image.Point{}, mask, s.img.Bounds().Min, draw.Over)
}

func (s *ImageSurface) DrawBitmap(img image.Image, at image.Point) {
	r := img.Bounds()
	draw.Draw(s.img, r.Sub(r.Min).Add(at), img, r.Min, draw.Over)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
