package api

import (
	"github.com/labstack/echo/v4"
	"github.com/pinky3d/pinkyd/internal/devices"
)

func registerFanEndpoints(rest *echo.Echo, h *restHandler) {
	group := rest.Group("/" + devices.IdFan)

	group.GET("/", h.getFan)
	group.POST("/start/", h.startFan)
	group.POST("/stop/", h.stopFan)
	group.POST("/update/", h.updateFan)
	group.Add(MethodStart, "/", h.startFan)
	group.Add(MethodStop, "/", h.stopFan)
	group.Add(MethodUpdate, "/", h.updateFan)
}

func (h *restHandler) getFan(c echo.Context) error {
	return returnOk(c, h.surface.FanStatus())
}

// starts the fan, an optional speed parameter is applied before starting
func (h *restHandler) startFan(c echo.Context) error {
	if value := c.FormValue(paramSpeed); value != "" {
		if _, err := h.surface.FanSetSpeed(value); err != nil {
			return returnError(c, err)
		}
	}
	return returnOk(c, h.surface.FanStart())
}

func (h *restHandler) stopFan(c echo.Context) error {
	return returnOk(c, h.surface.FanStop())
}

func (h *restHandler) updateFan(c echo.Context) error {
	status, err := h.surface.FanSetSpeed(c.FormValue(paramSpeed))
	if err != nil {
		return returnError(c, err)
	}
	return returnOk(c, status)
}
