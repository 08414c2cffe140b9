package api

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/pinky3d/pinkyd/internal/configuration"
	"github.com/qdm12/reprint"
)

const redacted = "********"

var errUnexpectedConfig = errors.New("unable to copy configuration")

func registerDeviceEndpoints(rest *echo.Echo, h *restHandler) {
	group := rest.Group("/device")

	group.GET("/", h.getDevices)
	group.GET("/:"+urlParamId+"/", h.getDevice)
}

func (h *restHandler) getStatus(c echo.Context) error {
	return returnOk(c, h.surface.GetStatus())
}

// returns the running configuration without secrets
func (h *restHandler) getConfig(c echo.Context) error {
	config := reprint.This(h.config)
	sanitized, ok := config.(configuration.Configuration)
	if !ok {
		return returnError(c, errUnexpectedConfig)
	}
	if sanitized.Events.Password != "" {
		sanitized.Events.Password = redacted
	}
	return returnOk(c, sanitized)
}

// returns a snapshot of all known devices
func (h *restHandler) getDevices(c echo.Context) error {
	return returnOk(c, h.registry.Snapshots())
}

func (h *restHandler) getDevice(c echo.Context) error {
	id := c.Param(urlParamId)
	device, exists := h.registry.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}
	return returnOk(c, device.Snapshot())
}
