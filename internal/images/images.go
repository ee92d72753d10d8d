package images

import (
	"bytes"
	"embed"
	"github.com/jypelle/vekimeteo/internal/weather"
	"github.com/sirupsen/logrus"
	"image"
	_ "image/png"
)

//go:embed intro.png
var IntroImgFile []byte

var IntroImage image.Image

//go:embed ic_fallback.png
var FallbackImgFile []byte

// FallbackImage is drawn when no weather icon is known yet.
var FallbackImage image.Image

//go:embed ic_*.png
var weatherIconFiles embed.FS

var weatherIconFilenames = map[weather.Category]string{
	weather.STORM_CATEGORY:         "ic_storm.png",
	weather.LIGHT_RAIN_CATEGORY:    "ic_light_rain.png",
	weather.RAIN_CATEGORY:          "ic_rain.png",
	weather.SNOW_CATEGORY:          "ic_snow.png",
	weather.FOG_CATEGORY:           "ic_fog.png",
	weather.CLEAR_CATEGORY:         "ic_clear.png",
	weather.PARTLY_CLOUDY_CATEGORY: "ic_light_clouds.png",
	weather.CLOUDY_CATEGORY:        "ic_cloudy.png",
}

var weatherIcons = make(map[weather.Category]image.Image)

// WeatherIcon returns the bitmap of a category, or nil for unknown categories.
func WeatherIcon(category weather.Category) image.Image {
	return weatherIcons[category]
}

func init() {
	// Load images
	var err error

	IntroImage, _, err = image.Decode(bytes.NewReader(IntroImgFile))
	if err != nil {
		logrus.Panicf("Can't load intro image: %v", err)
	}

	FallbackImage, _, err = image.Decode(bytes.NewReader(FallbackImgFile))
	if err != nil {
		logrus.Panicf("Can't load fallback image: %v", err)
	}

	for category, filename := range weatherIconFilenames {
		rawImg, err := weatherIconFiles.ReadFile(filename)
		if err != nil {
			logrus.Panicf("Can't read %s icon: %v", category, err)
		}
		weatherIcons[category], _, err = image.Decode(bytes.NewReader(rawImg))
		if err != nil {
			logrus.Panicf("Can't load %s icon: %v", category, err)
		}
	}
}
