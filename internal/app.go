package internal

import (
	"errors"
	"fmt"

	"github.com/pinky3d/pinkyd/internal/automation"
	"github.com/pinky3d/pinkyd/internal/configuration"
	"github.com/pinky3d/pinkyd/internal/control"
	"github.com/pinky3d/pinkyd/internal/devices"
	"github.com/pinky3d/pinkyd/internal/events"
	"github.com/pinky3d/pinkyd/internal/gpio"
	"github.com/pinky3d/pinkyd/internal/statistics"
	"github.com/pinky3d/pinkyd/internal/ui"
	"github.com/prometheus/client_golang/prometheus"
)

// App holds every object of a running daemon. It is created once at startup
// and handed to the components that need it.
type App struct {
	Config configuration.Configuration

	chip gpio.Chip

	Power  *devices.Relay
	Light  *devices.Relay
	Fan    *devices.Fan
	Sensor *devices.InputSensor

	Registry *devices.Registry
	Loop     *automation.Loop
	Surface  *control.Surface
}

// NewApp claims all configured lines of the chip and creates the devices.
// Sensor and loop are only created when automation is enabled.
func NewApp(config configuration.Configuration, chip gpio.Chip, sink events.Sink) (*App, error) {
	app := &App{
		Config: config,
		chip:   chip,
	}

	var err error
	app.Power, err = createRelay(chip, devices.IdPower, config.Devices.Power)
	if err != nil {
		return nil, err
	}
	app.Light, err = createRelay(chip, devices.IdLight, config.Devices.Light)
	if err != nil {
		return nil, err
	}
	app.Fan, err = createFan(chip, config.Devices.Fan)
	if err != nil {
		return nil, err
	}
	app.Registry = devices.NewRegistry(app.Power, app.Light, app.Fan)

	if config.Automation.Enabled {
		app.Sensor, err = createSensor(chip, config.Automation.Sensor)
		if err != nil {
			return nil, err
		}
		app.Registry.Register(app.Sensor)
		app.Loop = automation.NewLoop(config.Automation, app.Sensor, app.Power, app.Light, app.Fan, sink)
	} else {
		ui.Warning("Automation is disabled, devices are only switched on request")
	}

	app.Surface = control.NewSurface(app.Power, app.Light, app.Fan, app.Loop)
	return app, nil
}

// Collectors returns the prometheus collectors exposing the state of the app
func (a *App) Collectors() []prometheus.Collector {
	result := []prometheus.Collector{
		statistics.NewDeviceCollector([]*devices.Relay{a.Power, a.Light}, a.Fan),
	}
	if a.Loop != nil {
		result = append(result, statistics.NewAutomationCollector(a.Loop))
	}
	return result
}

// Close switches every load off and releases all claimed lines.
// Released lines keep their last level, so the active-low relays stay off.
func (a *App) Close() error {
	var result error
	for _, relay := range []*devices.Relay{a.Power, a.Light} {
		if err := relay.Off(); err != nil {
			result = errors.Join(result, fmt.Errorf("switch off %s: %w", relay.GetId(), err))
		}
	}
	if err := a.Fan.Off(); err != nil {
		result = errors.Join(result, fmt.Errorf("stop fan: %w", err))
	}
	if err := a.chip.Close(); err != nil {
		result = errors.Join(result, fmt.Errorf("close gpio chip: %w", err))
	}
	return result
}

func createRelay(chip gpio.Chip, id string, config configuration.RelayConfig) (*devices.Relay, error) {
	port, err := chip.Port(int(config.Line))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	relay, err := devices.NewRelay(id, port, config.InitialOn)
	if err != nil {
		return nil, err
	}
	ui.Debug("Relay %s on gpio line %d, initially on: %v", id, config.Line, config.InitialOn)
	return relay, nil
}

func createFan(chip gpio.Chip, config configuration.FanConfig) (*devices.Fan, error) {
	port, pwm, err := chip.PWMPort(int(config.Line), config.Frequency)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", devices.IdFan, err)
	}
	fan, err := devices.NewFan(devices.IdFan, port, pwm, config)
	if err != nil {
		return nil, err
	}
	ui.Debug("Fan on gpio line %d, frequency: %.1fHz, speed: %d", config.Line, config.Frequency, config.Speed)
	return fan, nil
}

func createSensor(chip gpio.Chip, config configuration.SensorConfig) (*devices.InputSensor, error) {
	pull, err := gpio.ParsePull(config.Pull)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", devices.IdSensor, err)
	}
	port, err := chip.Port(int(config.Line))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", devices.IdSensor, err)
	}
	sensor, err := devices.NewInputSensor(devices.IdSensor, port, pull)
	if err != nil {
		return nil, err
	}
	ui.Debug("Sensor on gpio line %d, pull: %s", config.Line, pull)
	return sensor, nil
}
