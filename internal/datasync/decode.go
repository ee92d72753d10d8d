package datasync

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jypelle/vekimeteo/internal/weather"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	HIGH_KEY       = "high"
	LOW_KEY        = "low"
	WEATHER_ID_KEY = "weatherId"
)

var (
	ErrNotMap       = errors.New("payload is not a key/value map")
	ErrTypeMismatch = errors.New("payload value has an unexpected type")
)

// DecodeWeather turns a weather payload into an update. Keys other than
// high, low and weatherId are ignored, null values count as absent.
func DecodeWeather(ev DataEvent) (weather.Update, error) {
	values, err := decodeMap(ev)
	if err != nil {
		return weather.Update{}, err
	}

	var update weather.Update

	if update.High, err = stringValue(values, HIGH_KEY); err != nil {
		return weather.Update{}, err
	}
	if update.Low, err = stringValue(values, LOW_KEY); err != nil {
		return weather.Update{}, err
	}
	if update.WeatherId, err = intValue(values, WEATHER_ID_KEY); err != nil {
		return weather.Update{}, err
	}

	return update, nil
}

func decodeMap(ev DataEvent) (map[string]interface{}, error) {
	var raw interface{}

	switch ev.Codec {
	case MSGPACK_CODEC:
		dec := msgpack.NewDecoder(bytes.NewReader(ev.Payload))
		dec.UseLooseInterfaceDecoding(true)
		v, err := dec.DecodeInterfaceLoose()
		if err != nil {
			return nil, fmt.Errorf("invalid msgpack payload: %w", err)
		}
		raw = v
	default:
		dec := json.NewDecoder(bytes.NewReader(ev.Payload))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid json payload: %w", err)
		}
	}

	values, ok := raw.(map[string]interface{})
	if !ok || values == nil {
		return nil, fmt.Errorf("%w: got %T", ErrNotMap, raw)
	}
	return values, nil
}

func stringValue(values map[string]interface{}, key string) (*string, error) {
	v, ok := values[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T", ErrTypeMismatch, key, v)
	}
	return &s, nil
}

func intValue(values map[string]interface{}, key string) (*int, error) {
	v, ok := values[key]
	if !ok || v == nil {
		return nil, nil
	}

	var i int
	switch n := v.(type) {
	case json.Number:
		i64, err := n.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: %s is %q", ErrTypeMismatch, key, n.String())
		}
		i = int(i64)
	case int64:
		i = int(n)
	case uint64:
		i = int(n)
	default:
		return nil, fmt.Errorf("%w: %s is %T", ErrTypeMismatch, key, v)
	}
	return &i, nil
}
