package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParam(t *testing.T) {
	serverParam, err := ParseServerParam(ParamDefaultFile)
	require.NoError(t, err)

	assert.Equal(t, 128, serverParam.Display.Width)
	assert.Equal(t, 64, serverParam.Display.Height)
	assert.Equal(t, "websocket", serverParam.Sync.Backend)
	assert.Equal(t, WeatherPath, serverParam.Sync.Path)
	assert.Equal(t, 2, serverParam.Layout.ForShape(true).XOffset)
	assert.Equal(t, 0, serverParam.Layout.ForShape(false).XOffset)
}

func TestParamOverridesDefaults(t *testing.T) {
	serverParam, err := ParseServerParam([]byte("sync:\n  backend: redis\n  url: redis://localhost:6379/0\n  path: \"\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "redis", serverParam.Sync.Backend)
	assert.Equal(t, "redis://localhost:6379/0", serverParam.Sync.Url)
	assert.Equal(t, WeatherPath, serverParam.Sync.Path)
	assert.Equal(t, 128, serverParam.Display.Width)
}

func TestParamValidation(t *testing.T) {
	_, err := ParseServerParam([]byte("sync:\n  backend: carrier-pigeon\n"))
	assert.Error(t, err)

	_, err = ParseServerParam([]byte("display:\n  width: 0\n"))
	assert.Error(t, err)

	_, err = ParseServerParam([]byte("theme:\n  background: blue\n"))
	assert.Error(t, err)

	_, err = ParseServerParam([]byte("display: [\n"))
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#1a237e")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0x1a, 0x23, 0x7e, 0xff}, c)

	c, err = ParseHexColor("FFFFFF")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, c)

	_, err = ParseHexColor("#12345g")
	assert.Error(t, err)
}

func TestNewServerConfigCreatesDefaultParamFile(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "vekimeteo")

	serverConfig := NewServerConfig(configDir, false, true)

	assert.True(t, serverConfig.SimulationMode)
	assert.Equal(t, "websocket", serverConfig.Sync.Backend)
	_, err := os.Stat(filepath.Join(configDir, paramFilename))
	assert.NoError(t, err)

	// a second start reads the saved file back
	reloaded := NewServerConfig(configDir, false, false)
	assert.Equal(t, serverConfig.ServerParam, reloaded.ServerParam)
}
