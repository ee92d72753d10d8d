package device

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jypelle/vekimeteo/apimodel"
	"github.com/jypelle/vekimeteo/internal/srv/config"
	"github.com/jypelle/vekimeteo/internal/srv/event"
	"github.com/jypelle/vekimeteo/internal/tool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"net/http"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"time"
)

const apiKeyHeader = "x-api-key"

type Api struct {
	eventChannel chan event.ApiEvent

	router    *mux.Router
	apiRouter *mux.Router
	server    *http.Server

	config *config.ServerConfig
}

func NewApi(config *config.ServerConfig) *Api {
	api := Api{
		config:       config,
		eventChannel: make(chan event.ApiEvent),
	}

	api.router = mux.NewRouter().StrictSlash(false)
	api.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API Routes
	api.apiRouter = api.router.PathPrefix("/api").Subrouter()
	api.apiRouter.NotFoundHandler = http.HandlerFunc(ErrorNotFoundAction)
	api.apiRouter.MethodNotAllowedHandler = http.HandlerFunc(ErrorMethodNotAllowedAction)

	// Auth middleware
	api.apiRouter.Use(
		func(handler http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				defer func() {
					if rec := recover(); rec != nil {
						logrus.Warningf("recovered from panic : [%v] - stack trace : \n [%s]", rec, debug.Stack())
						strMessage := fmt.Sprintf("%v", rec)
						GlobalErrorAction(w, strMessage, http.StatusInternalServerError)
					}
				}()

				// Check API Key
				apiKey := r.Header.Get(apiKeyHeader)
				if apiKey != config.ServerParam.ApiParam.ApiKey {
					ErrorStatusAction(w, r, http.StatusForbidden)
					return
				}

				logrus.Debugf("PATH: %s %s", r.Host, r.URL.Path)

				handler.ServeHTTP(w, r)
			})
		})

	// Server check endpoint
	api.apiRouter.HandleFunc("/is_alive",
		func(w http.ResponseWriter, r *http.Request) {
			ErrorStatusAction(w, r, http.StatusOK)
		}).Methods("GET")

	// Lifecycle callbacks
	api.apiRouter.HandleFunc("/visibility/{state:on|off}",
		func(w http.ResponseWriter, r *http.Request) {
			api.sendAction(w, r, event.ApiEventVisibilityData{Visible: isOn(r)})
		}).Methods("POST")
	api.apiRouter.HandleFunc("/ambient/{state:on|off}",
		func(w http.ResponseWriter, r *http.Request) {
			api.sendAction(w, r, event.ApiEventAmbientData{Ambient: isOn(r)})
		}).Methods("POST")
	api.apiRouter.HandleFunc("/lowbit/{state:on|off}",
		func(w http.ResponseWriter, r *http.Request) {
			api.sendAction(w, r, event.ApiEventLowBitAmbientData{LowBitAmbient: isOn(r)})
		}).Methods("POST")
	api.apiRouter.HandleFunc("/shape/{shape:round|rect}",
		func(w http.ResponseWriter, r *http.Request) {
			api.sendAction(w, r, event.ApiEventShapeData{Round: mux.Vars(r)["shape"] == "round"})
		}).Methods("POST")
	api.apiRouter.HandleFunc("/tap",
		func(w http.ResponseWriter, r *http.Request) {
			api.sendAction(w, r, event.ApiEventTapData{})
		}).Methods("POST")
	api.apiRouter.HandleFunc("/timezone",
		func(w http.ResponseWriter, r *http.Request) {
			var request apimodel.TimeZoneRequest
			if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Zone == "" {
				apimodel.WrongParametersErrorMessage.SendError(w)
				return
			}
			api.sendAction(w, r, event.ApiEventTimeZoneData{Zone: request.Zone})
		}).Methods("POST")

	// Diagnostics
	api.apiRouter.HandleFunc("/weather",
		func(w http.ResponseWriter, r *http.Request) {
			reply := make(chan apimodel.WeatherInfo, 1)
			if err := api.dispatch(r, event.ApiEventWeatherQueryData{Reply: reply}); err != nil {
				GlobalErrorAction(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
			JsonAction(w, <-reply)
		}).Methods("GET")
	api.apiRouter.HandleFunc("/mode",
		func(w http.ResponseWriter, r *http.Request) {
			reply := make(chan apimodel.ModeInfo, 1)
			if err := api.dispatch(r, event.ApiEventModeQueryData{Reply: reply}); err != nil {
				GlobalErrorAction(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
			JsonAction(w, <-reply)
		}).Methods("GET")

	headersOk := handlers.AllowedHeaders([]string{apiKeyHeader, "Content-Type"})
	originsOk := handlers.AllowedOrigins([]string{"*"})
	methodsOk := handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"})

	api.server = &http.Server{
		Addr:         ":" + strconv.FormatInt(config.ServerParam.ApiParam.SslPort, 10),
		Handler:      handlers.CompressHandler(handlers.CORS(originsOk, headersOk, methodsOk)(api.router)),
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 240,
	}

	return &api
}

func (d *Api) Start() {
	if !d.config.ServerParam.ApiParam.Enabled {
		logrus.Infof("Api device disabled")
		return
	}
	logrus.Infof("Start api device")

	generated, err := tool.EnsureTlsCertificate(
		tool.CertificateRequest{Organization: "jypelle", CommonName: "Vekimeteo Server"},
		d.selfSignedKeyFilename(),
		d.selfSignedCertFilename())
	if err != nil {
		logrus.Fatalf("Unable to prepare cert and key files: %v\n", err)
	}
	if generated {
		logrus.Info("Self-signed cert and key files generated")
	}

	// Launch https server
	go func() {
		err := d.server.ListenAndServeTLS(d.selfSignedCertFilename(), d.selfSignedKeyFilename())
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Error(err)
		}
	}()
}

func (d *Api) StopSendingEvent() {
	if !d.config.ServerParam.ApiParam.Enabled {
		return
	}
	logrus.Infof("Stop api device")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	d.server.Shutdown(ctx)
}

func (d *Api) EventChannel() chan event.ApiEvent {
	return d.eventChannel
}

func (d *Api) Handler() http.Handler {
	return d.router
}

// dispatch hands data to the event loop and waits for its verdict.
func (d *Api) dispatch(r *http.Request, data interface{}) error {
	result := make(chan error, 1)
	select {
	case d.eventChannel <- event.ApiEvent{Result: result, Data: data}:
	case <-r.Context().Done():
		return r.Context().Err()
	}
	return <-result
}

func (d *Api) sendAction(w http.ResponseWriter, r *http.Request, data interface{}) {
	if err := d.dispatch(r, data); err != nil {
		var errorMessage *apimodel.ErrorMessage
		if errors.As(err, &errorMessage) {
			errorMessage.SendError(w)
		} else {
			GlobalErrorAction(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	ErrorStatusAction(w, r, http.StatusOK)
}

func isOn(r *http.Request) bool {
	return mux.Vars(r)["state"] == "on"
}

func (d *Api) selfSignedKeyFilename() string {
	return filepath.Join(d.config.ConfigDir, "key.pem")
}

func (d *Api) selfSignedCertFilename() string {
	return filepath.Join(d.config.ConfigDir, "cert.pem")
}

func JsonAction(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("Unable to encode response: %v", err)
	}
}

func ErrorNotFoundAction(w http.ResponseWriter, r *http.Request) {
	ErrorStatusAction(w, r, http.StatusNotFound)
}

func ErrorMethodNotAllowedAction(w http.ResponseWriter, r *http.Request) {
	ErrorStatusAction(w, r, http.StatusMethodNotAllowed)
}

func ErrorStatusAction(w http.ResponseWriter, r *http.Request, status int) {
	ErrorMessageAction(w, "", status)
}

func GlobalErrorAction(w http.ResponseWriter, message string, status int) {
	ErrorMessageAction(w, message, status)
}

func ErrorMessageAction(w http.ResponseWriter, title string, status int) {
	errorMessage := apimodel.ErrorMessage{
		ErrStatusCode: status,
		ErrMessage:    title,
	}
	if title == "" && status == http.StatusOK {
		errorMessage.ErrMessage = "Ok"
	}
	errorMessage.SendError(w)
}
