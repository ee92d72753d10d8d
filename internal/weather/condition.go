package weather

// Category is the visual family a weather condition code is drawn with.
type Category int64

const (
	UNKNOWN_CATEGORY Category = iota
	STORM_CATEGORY
	LIGHT_RAIN_CATEGORY
	RAIN_CATEGORY
	SNOW_CATEGORY
	FOG_CATEGORY
	CLEAR_CATEGORY
	PARTLY_CLOUDY_CATEGORY
	CLOUDY_CATEGORY
)

var categoryNames = map[Category]string{
	UNKNOWN_CATEGORY:       "unknown",
	STORM_CATEGORY:         "storm",
	LIGHT_RAIN_CATEGORY:    "light_rain",
	RAIN_CATEGORY:          "rain",
	SNOW_CATEGORY:          "snow",
	FOG_CATEGORY:           "fog",
	CLEAR_CATEGORY:         "clear",
	PARTLY_CLOUDY_CATEGORY: "partly_cloudy",
	CLOUDY_CATEGORY:        "cloudy",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[UNKNOWN_CATEGORY]
}

type codeRange struct {
	from, to int
	category Category
}

// Ranges are inclusive and checked in order: 761 and 781 are storms even
// though 761 sits at the end of the fog block.
var conditionRanges = []codeRange{
	{200, 232, STORM_CATEGORY},
	{761, 761, STORM_CATEGORY},
	{781, 781, STORM_CATEGORY},
	{300, 321, LIGHT_RAIN_CATEGORY},
	{500, 504, RAIN_CATEGORY},
	{520, 531, RAIN_CATEGORY},
	{511, 511, SNOW_CATEGORY},
	{600, 622, SNOW_CATEGORY},
	{701, 761, FOG_CATEGORY},
	{800, 800, CLEAR_CATEGORY},
	{801, 801, PARTLY_CLOUDY_CATEGORY},
	{802, 804, CLOUDY_CATEGORY},
}

// Classify maps an OpenWeatherMap condition code to its icon category.
// Codes outside every known range yield UNKNOWN_CATEGORY.
func Classify(code int) Category {
	for _, r := range conditionRanges {
		if code >= r.from && code <= r.to {
			return r.category
		}
	}
	return UNKNOWN_CATEGORY
}
