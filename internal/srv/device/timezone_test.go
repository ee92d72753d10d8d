package device

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSystemLocationFromTimezoneFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "timezone"), []byte("Europe/Paris\n"), 0644))

	location, err := LoadSystemLocation(dir)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", location.String())
}

func TestLoadSystemLocationFromLocaltimeLink(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Symlink("/usr/share/zoneinfo/Asia/Tokyo", filepath.Join(dir, "localtime")))

	location, err := LoadSystemLocation(dir)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", location.String())
}

func TestLoadSystemLocationMissing(t *testing.T) {
	_, err := LoadSystemLocation(t.TempDir())
	assert.Error(t, err)
}

func TestTimeZoneWatcher(t *testing.T) {
	dir := t.TempDir()
	watcher := NewTimeZoneWatcher(dir)

	require.NoError(t, watcher.Register())
	require.NoError(t, watcher.Register())

	// unrelated files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hostname"), []byte("watch"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "timezone"), []byte("UTC\n"), 0644))

	select {
	case <-watcher.EventChannel():
	case <-time.After(5 * time.Second):
		t.Fatal("no time zone event received")
	}

	location, err := watcher.LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, "UTC", location.String())

	assert.NoError(t, watcher.Unregister())
	assert.NoError(t, watcher.Unregister())
}

func TestTimeZoneWatcherUnknownDir(t *testing.T) {
	watcher := NewTimeZoneWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, watcher.Register())
	assert.NoError(t, watcher.Unregister())
}
