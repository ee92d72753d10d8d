package face

import (
	"fmt"

	"github.com/hajimehoshi/bitmapfont/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// BitmapTextSize is the pixel height of the bitmap face.
const BitmapTextSize = 12

// LoadFace returns the Go Regular face at size pixels, or the bitmap face
// when size is not positive. Tiny displays read better with the latter.
func LoadFace(size float64) (font.Face, error) {
	if size <= 0 {
		return bitmapfont.Face, nil
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("unable to parse go regular font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create %.0fpx face: %w", size, err)
	}
	return face, nil
}

// TextSize returns the pixel size LoadFace uses for size.
func TextSize(size float64) int {
	if size <= 0 {
		return BitmapTextSize
	}
	return int(size)
}
