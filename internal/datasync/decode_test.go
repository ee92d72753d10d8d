package datasync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func jsonEvent(path string, payload string) DataEvent {
	return DataEvent{Type: CHANGED_EVENT, Path: path, Payload: []byte(payload), Codec: JSON_CODEC}
}

func TestDecodeWeatherJSON(t *testing.T) {
	update, err := DecodeWeather(jsonEvent(testPath, `{"high":"75","low":"58","weatherId":500,"humidity":40}`))
	require.NoError(t, err)

	require.NotNil(t, update.High)
	require.NotNil(t, update.Low)
	require.NotNil(t, update.WeatherId)
	assert.Equal(t, "75", *update.High)
	assert.Equal(t, "58", *update.Low)
	assert.Equal(t, 500, *update.WeatherId)
}

func TestDecodeWeatherPartial(t *testing.T) {
	update, err := DecodeWeather(jsonEvent(testPath, `{"low":"50","high":null}`))
	require.NoError(t, err)

	assert.Nil(t, update.High)
	assert.Nil(t, update.WeatherId)
	require.NotNil(t, update.Low)
	assert.Equal(t, "50", *update.Low)
}

func TestDecodeWeatherMsgpack(t *testing.T) {
	payload, err := msgpack.Marshal(map[string]interface{}{"high": "12", "weatherId": 800})
	require.NoError(t, err)

	update, err := DecodeWeather(DataEvent{Type: CHANGED_EVENT, Path: testPath, Payload: payload, Codec: MSGPACK_CODEC})
	require.NoError(t, err)

	require.NotNil(t, update.High)
	require.NotNil(t, update.WeatherId)
	assert.Equal(t, "12", *update.High)
	assert.Equal(t, 800, *update.WeatherId)
	assert.Nil(t, update.Low)
}

func TestDecodeWeatherErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		payload string
		target  error
	}{
		{"array", `[1,2]`, ErrNotMap},
		{"string", `"sunny"`, ErrNotMap},
		{"null", `null`, ErrNotMap},
		{"numeric high", `{"high":75}`, ErrTypeMismatch},
		{"numeric low", `{"low":58.5}`, ErrTypeMismatch},
		{"text weather id", `{"weatherId":"800"}`, ErrTypeMismatch},
		{"fractional weather id", `{"weatherId":800.5}`, ErrTypeMismatch},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeWeather(jsonEvent(testPath, tc.payload))
			assert.ErrorIs(t, err, tc.target)
		})
	}

	_, err := DecodeWeather(jsonEvent(testPath, `{"high":`))
	assert.Error(t, err)

	_, err = DecodeWeather(DataEvent{Type: CHANGED_EVENT, Path: testPath, Payload: []byte{0xc1}, Codec: MSGPACK_CODEC})
	assert.Error(t, err)
}
