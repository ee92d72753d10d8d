package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRanges(t *testing.T) {
	expectations := []struct {
		from, to int
		category Category
	}{
		{200, 232, STORM_CATEGORY},
		{300, 321, LIGHT_RAIN_CATEGORY},
		{500, 504, RAIN_CATEGORY},
		{520, 531, RAIN_CATEGORY},
		{511, 511, SNOW_CATEGORY},
		{600, 622, SNOW_CATEGORY},
		{701, 760, FOG_CATEGORY},
		{800, 800, CLEAR_CATEGORY},
		{801, 801, PARTLY_CLOUDY_CATEGORY},
		{802, 804, CLOUDY_CATEGORY},
	}

	for _, e := range expectations {
		for code := e.from; code <= e.to; code++ {
			assert.Equal(t, e.category, Classify(code), "code %d", code)
		}
	}
}

func TestClassifyStormSpecialCodes(t *testing.T) {
	assert.Equal(t, STORM_CATEGORY, Classify(761))
	assert.Equal(t, STORM_CATEGORY, Classify(781))
}

func TestClassifyUnknown(t *testing.T) {
	for _, code := range []int{-1, 0, 199, 233, 299, 322, 505, 510, 512, 519, 532, 599, 623, 700, 762, 780, 782, 799, 805, 1000} {
		assert.Equal(t, UNKNOWN_CATEGORY, Classify(code), "code %d", code)
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "storm", STORM_CATEGORY.String())
	assert.Equal(t, "partly_cloudy", PARTLY_CLOUDY_CATEGORY.String())
	assert.Equal(t, "unknown", Category(42).String())
}
