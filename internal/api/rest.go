package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pinky3d/pinkyd/internal/configuration"
	"github.com/pinky3d/pinkyd/internal/control"
	"github.com/pinky3d/pinkyd/internal/devices"
	"github.com/prometheus/client_golang/prometheus"
)

// Custom HTTP methods that may be used on the device resource paths instead of
// a POST to the matching sub path, e.g. "ON /power/" instead of "POST /power/on/".
const (
	MethodOn     = "ON"
	MethodOff    = "OFF"
	MethodStart  = "START"
	MethodStop   = "STOP"
	MethodUpdate = "UPDATE"
)

type Options struct {
	Surface  *control.Surface
	Registry *devices.Registry
	Config   configuration.Configuration
	Version  string
	// Registerer receives the request metrics, nil disables them
	Registerer prometheus.Registerer
}

type restHandler struct {
	surface  *control.Surface
	registry *devices.Registry
	config   configuration.Configuration
	version  string
}

func CreateRestService(options Options) *echo.Echo {
	echoRest := CreateWebserver()
	echoRest.Use(middleware.Logger())

	if options.Registerer != nil {
		echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "pinkyd",
			Subsystem:  "api",
			Registerer: options.Registerer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/alive/"
			},
		}))
	}

	h := &restHandler{
		surface:  options.Surface,
		registry: options.Registry,
		config:   options.Config,
		version:  options.Version,
	}

	echoRest.GET("/", h.index)
	echoRest.GET("/alive/", isAlive)
	echoRest.GET("/status/", h.getStatus)
	echoRest.GET("/config/", h.getConfig)

	registerDeviceEndpoints(echoRest, h)
	registerSwitchEndpoints(echoRest, h)
	registerFanEndpoints(echoRest, h)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (h *restHandler) index(c echo.Context) error {
	return returnOk(c, map[string]string{
		"message": "hello",
		"version": h.version,
	})
}
