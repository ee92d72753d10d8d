package device

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jypelle/vekimeteo/apimodel"
	"github.com/jypelle/vekimeteo/internal/srv/config"
	"github.com/jypelle/vekimeteo/internal/srv/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testApiKey = "secret"

// fakeLoop answers api events the way the server event loop does.
func fakeLoop(api *Api, received chan<- interface{}) func() {
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case ev := <-api.EventChannel():
				received <- ev.Data
				var err error
				switch data := ev.Data.(type) {
				case event.ApiEventTimeZoneData:
					if data.Zone != "UTC" {
						errorMessage := apimodel.UnknownTimeZoneErrorMessage
						err = &errorMessage
					}
				case event.ApiEventWeatherQueryData:
					high := "75"
					data.Reply <- apimodel.WeatherInfo{High: &high}
				case event.ApiEventModeQueryData:
					data.Reply <- apimodel.ModeInfo{Visible: true, TimeZone: "UTC", ConnectionState: "connected"}
				}
				ev.Result <- err
			case <-stop:
				return
			}
		}
	}()
	return func() { close(stop) }
}

func newTestApi(t *testing.T) (*httptest.Server, chan interface{}) {
	serverParam, err := config.ParseServerParam([]byte("api:\n  api_key: " + testApiKey + "\n"))
	require.NoError(t, err)

	api := NewApi(&config.ServerConfig{ConfigDir: t.TempDir(), ServerParam: serverParam})
	received := make(chan interface{}, 10)
	t.Cleanup(fakeLoop(api, received))

	server := httptest.NewServer(api.Handler())
	t.Cleanup(server.Close)
	return server, received
}

func doRequest(t *testing.T, server *httptest.Server, method, path, body string) (*http.Response, apimodel.ErrorMessage) {
	t.Helper()
	request, err := http.NewRequest(method, server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	request.Header.Set(apiKeyHeader, testApiKey)

	response, err := server.Client().Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	var message apimodel.ErrorMessage
	require.NoError(t, json.NewDecoder(response.Body).Decode(&message))
	return response, message
}

func TestApiRequiresKey(t *testing.T) {
	server, _ := newTestApi(t)

	response, err := server.Client().Get(server.URL + "/api/is_alive")
	require.NoError(t, err)
	defer response.Body.Close()
	assert.Equal(t, http.StatusForbidden, response.StatusCode)
}

func TestApiIsAlive(t *testing.T) {
	server, _ := newTestApi(t)

	response, message := doRequest(t, server, "GET", "/api/is_alive", "")
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "Ok", message.ErrMessage)
}

func TestApiLifecycleCallbacks(t *testing.T) {
	server, received := newTestApi(t)

	tests := []struct {
		path     string
		expected interface{}
	}{
		{"/api/visibility/on", event.ApiEventVisibilityData{Visible: true}},
		{"/api/visibility/off", event.ApiEventVisibilityData{Visible: false}},
		{"/api/ambient/on", event.ApiEventAmbientData{Ambient: true}},
		{"/api/lowbit/on", event.ApiEventLowBitAmbientData{LowBitAmbient: true}},
		{"/api/shape/round", event.ApiEventShapeData{Round: true}},
		{"/api/tap", event.ApiEventTapData{}},
	}

	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			response, _ := doRequest(t, server, "POST", test.path, "")
			assert.Equal(t, http.StatusOK, response.StatusCode)
			assert.Equal(t, test.expected, <-received)
		})
	}
}

func TestApiRejectsUnknownRoutes(t *testing.T) {
	server, received := newTestApi(t)

	response, _ := doRequest(t, server, "POST", "/api/visibility/maybe", "")
	assert.Equal(t, http.StatusNotFound, response.StatusCode)

	response, _ = doRequest(t, server, "GET", "/api/tap", "")
	assert.Equal(t, http.StatusMethodNotAllowed, response.StatusCode)
	assert.Empty(t, received)
}

func TestApiTimeZone(t *testing.T) {
	server, received := newTestApi(t)

	response, message := doRequest(t, server, "POST", "/api/timezone", "{not json")
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, apimodel.WrongParametersErrorMessage.ErrMessage, message.ErrMessage)
	assert.Empty(t, received)

	response, message = doRequest(t, server, "POST", "/api/timezone", `{"zone":"Mars/Olympus_Mons"}`)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, apimodel.UnknownTimeZoneErrorMessage.ErrMessage, message.ErrMessage)
	assert.Equal(t, event.ApiEventTimeZoneData{Zone: "Mars/Olympus_Mons"}, <-received)

	response, _ = doRequest(t, server, "POST", "/api/timezone", `{"zone":"UTC"}`)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, event.ApiEventTimeZoneData{Zone: "UTC"}, <-received)
}

func TestApiQueries(t *testing.T) {
	server, _ := newTestApi(t)

	request, err := http.NewRequest("GET", server.URL+"/api/weather", nil)
	require.NoError(t, err)
	request.Header.Set(apiKeyHeader, testApiKey)
	response, err := server.Client().Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	var weatherInfo apimodel.WeatherInfo
	require.NoError(t, json.NewDecoder(response.Body).Decode(&weatherInfo))
	require.NotNil(t, weatherInfo.High)
	assert.Equal(t, "75", *weatherInfo.High)
	assert.Nil(t, weatherInfo.Category)

	request, err = http.NewRequest("GET", server.URL+"/api/mode", nil)
	require.NoError(t, err)
	request.Header.Set(apiKeyHeader, testApiKey)
	response, err = server.Client().Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	var modeInfo apimodel.ModeInfo
	require.NoError(t, json.NewDecoder(response.Body).Decode(&modeInfo))
	assert.True(t, modeInfo.Visible)
	assert.Equal(t, "connected", modeInfo.ConnectionState)
}

func TestApiMetrics(t *testing.T) {
	server, _ := newTestApi(t)

	response, err := server.Client().Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer response.Body.Close()
	assert.Equal(t, http.StatusOK, response.StatusCode)

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}
