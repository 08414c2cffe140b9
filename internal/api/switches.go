package api

import (
	"github.com/labstack/echo/v4"
	"github.com/pinky3d/pinkyd/internal/devices"
)

type relayEndpoints struct {
	status func() devices.RelayStatus
	on     func() devices.RelayStatus
	off    func() devices.RelayStatus
}

func registerSwitchEndpoints(rest *echo.Echo, h *restHandler) {
	registerRelayEndpoints(rest.Group("/"+devices.IdPower), relayEndpoints{
		status: h.surface.PowerStatus,
		on:     h.surface.PowerOn,
		off:    h.surface.PowerOff,
	})
	registerRelayEndpoints(rest.Group("/"+devices.IdLight), relayEndpoints{
		status: h.surface.LightStatus,
		on:     h.surface.LightOn,
		off:    h.surface.LightOff,
	})
}

func registerRelayEndpoints(group *echo.Group, endpoints relayEndpoints) {
	status := func(c echo.Context) error {
		return returnOk(c, endpoints.status())
	}
	on := func(c echo.Context) error {
		return returnOk(c, endpoints.on())
	}
	off := func(c echo.Context) error {
		return returnOk(c, endpoints.off())
	}

	group.GET("/", status)
	group.POST("/on/", on)
	group.POST("/off/", off)
	group.Add(MethodOn, "/", on)
	group.Add(MethodOff, "/", off)
}
