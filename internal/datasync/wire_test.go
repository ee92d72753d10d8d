package datasync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestParseJSONFrame(t *testing.T) {
	events, err := ParseJSONFrame([]byte(`{"type":"changed","path":"/weather-info","data":{"high":"75"}}`))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, CHANGED_EVENT, events[0].Type)
	assert.Equal(t, "/weather-info", events[0].Path)
	assert.JSONEq(t, `{"high":"75"}`, string(events[0].Payload))
	assert.Equal(t, JSON_CODEC, events[0].Codec)

	events, err = ParseJSONFrame([]byte(` [{"type":"deleted","path":"/a"},{"type":"changed","path":"/b","data":{}}]`))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, DELETED_EVENT, events[0].Type)
	assert.Equal(t, "/b", events[1].Path)

	_, err = ParseJSONFrame([]byte("  "))
	assert.Error(t, err)
	_, err = ParseJSONFrame([]byte(`{"type":`))
	assert.Error(t, err)
}

func TestParseMsgpackFrame(t *testing.T) {
	single, err := msgpack.Marshal(map[string]interface{}{
		"type": "changed",
		"path": "/weather-info",
		"data": map[string]interface{}{"weatherId": 500},
	})
	require.NoError(t, err)

	events, err := ParseMsgpackFrame(single)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, CHANGED_EVENT, events[0].Type)
	assert.Equal(t, MSGPACK_CODEC, events[0].Codec)

	update, err := DecodeWeather(events[0])
	require.NoError(t, err)
	require.NotNil(t, update.WeatherId)
	assert.Equal(t, 500, *update.WeatherId)

	batch, err := msgpack.Marshal([]map[string]interface{}{
		{"type": "changed", "path": "/a", "data": map[string]interface{}{}},
		{"type": "deleted", "path": "/b"},
	})
	require.NoError(t, err)

	events, err = ParseMsgpackFrame(batch)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "/a", events[0].Path)
	assert.Equal(t, DELETED_EVENT, events[1].Type)

	_, err = ParseMsgpackFrame([]byte{0xc1})
	assert.Error(t, err)
}
