package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

//go:embed param_default.yaml
var ParamDefaultFile []byte

const WeatherPath = "/weather-info"

type ServerParam struct {
	Display  DisplayParam  `yaml:"display"`
	Layout   LayoutsParam  `yaml:"layout"`
	Theme    ThemeParam    `yaml:"theme"`
	Sync     SyncParam     `yaml:"sync"`
	TimeZone TimeZoneParam `yaml:"timezone"`
	Buttons  ButtonsParam  `yaml:"buttons"`
	ApiParam ApiParam      `yaml:"api"`
}

type DisplayParam struct {
	Width         int  `yaml:"width"`
	Height        int  `yaml:"height"`
	Round         bool `yaml:"round"`
	LowBitAmbient bool `yaml:"low_bit_ambient"`
	Contrast      byte `yaml:"contrast"`
}

type LayoutsParam struct {
	Rect  LayoutParam `yaml:"rect"`
	Round LayoutParam `yaml:"round"`
}

// LayoutParam holds offsets in pixels. A text size of 0 selects the
// built-in bitmap font.
type LayoutParam struct {
	XOffset      int     `yaml:"x_offset"`
	YOffset      int     `yaml:"y_offset"`
	TimeTextSize float64 `yaml:"time_text_size"`
	DateTextSize float64 `yaml:"date_text_size"`
	TempTextSize float64 `yaml:"temp_text_size"`
}

func (l LayoutsParam) ForShape(round bool) LayoutParam {
	if round {
		return l.Round
	}
	return l.Rect
}

type ThemeParam struct {
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
}

func (t ThemeParam) BackgroundColor() (color.RGBA, error) {
	return ParseHexColor(t.Background)
}

func (t ThemeParam) ForegroundColor() (color.RGBA, error) {
	return ParseHexColor(t.Foreground)
}

type SyncParam struct {
	Backend       string `yaml:"backend"`
	Url           string `yaml:"url"`
	Path          string `yaml:"path"`
	ChannelPrefix string `yaml:"channel_prefix"`
	DialTimeout   int64  `yaml:"dial_timeout"`
}

type TimeZoneParam struct {
	WatchDir string `yaml:"watch_dir"`
}

type ButtonsParam struct {
	Enabled       bool   `yaml:"enabled"`
	VisibilityPin string `yaml:"visibility_pin"`
	AmbientPin    string `yaml:"ambient_pin"`
}

type ApiParam struct {
	Enabled bool   `yaml:"enabled"`
	SslPort int64  `yaml:"ssl_port"`
	ApiKey  string `yaml:"api_key"`
}

// ParseHexColor reads "#rrggbb" or "rrggbb".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
