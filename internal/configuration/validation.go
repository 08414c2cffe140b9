package configuration

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/pinky3d/pinkyd/internal/gpio"
	"github.com/pinky3d/pinkyd/internal/ui"
	"golang.org/x/exp/slices"
)

func Validate(configPath string) error {
	if len(configPath) > 0 {
		ui.Debug("Validating configuration file: %s", configPath)
	}
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	err := validateGpio(config)
	if err != nil {
		return err
	}
	err = validateDevices(config)
	if err != nil {
		return err
	}
	err = validateAutomation(config)
	if err != nil {
		return err
	}
	err = validateServers(config)
	if err != nil {
		return err
	}
	return validateEvents(config)
}

func validateGpio(config *Configuration) error {
	if !config.Gpio.Fake && len(strings.TrimSpace(config.Gpio.Chip)) <= 0 {
		return errors.New("gpio: missing chip name")
	}

	type namedLine struct {
		name string
		line GpioLine
	}
	lines := []namedLine{
		{"power", config.Devices.Power.Line},
		{"light", config.Devices.Light.Line},
		{"fan", config.Devices.Fan.Line},
	}
	if config.Automation.Enabled {
		lines = append(lines, namedLine{"sensor", config.Automation.Sensor.Line})
	}

	var used []GpioLine
	for _, l := range lines {
		if l.line < 0 || l.line > MaxGpioLine {
			return fmt.Errorf("%s: invalid gpio line %d, must be in [0..%d]", l.name, l.line, MaxGpioLine)
		}
		if slices.Contains(used, l.line) {
			return fmt.Errorf("%s: gpio line %d is used more than once", l.name, l.line)
		}
		used = append(used, l.line)
	}

	return nil
}

func validateDevices(config *Configuration) error {
	fan := config.Devices.Fan
	if fan.Frequency <= 0 {
		return fmt.Errorf("fan: invalid frequency %.2f, must be > 0", fan.Frequency)
	}
	if fan.Speed < 0 || fan.Speed > 100 {
		return fmt.Errorf("fan: invalid speed %d, must be in [0..100]", fan.Speed)
	}
	return nil
}

func validateAutomation(config *Configuration) error {
	automation := config.Automation
	if !automation.Enabled {
		return nil
	}
	if _, err := gpio.ParsePull(automation.Sensor.Pull); err != nil {
		return fmt.Errorf("sensor: %v", err)
	}
	if automation.PollInterval <= 0 {
		return fmt.Errorf("automation: invalid pollInterval %v, must be > 0", automation.PollInterval)
	}
	if automation.ShutdownDelay < 0 {
		return fmt.Errorf("automation: invalid shutdownDelay %v, must be >= 0", automation.ShutdownDelay)
	}
	if automation.SensorWindowSize < 1 {
		return fmt.Errorf("automation: invalid sensorWindowSize %d, must be >= 1", automation.SensorWindowSize)
	}
	if automation.ShutdownDelay > 0 && automation.ShutdownDelay < automation.PollInterval {
		ui.Warning("automation: shutdownDelay (%v) is shorter than pollInterval (%v), shutdown will happen on the next tick", automation.ShutdownDelay, automation.PollInterval)
	}
	return nil
}

func validateServers(config *Configuration) error {
	if config.Api.Enabled {
		if config.Api.Port <= 0 || config.Api.Port >= 65535 {
			return fmt.Errorf("api: invalid port %d", config.Api.Port)
		}
	}
	if config.Statistics.Enabled {
		if config.Statistics.Port <= 0 || config.Statistics.Port >= 65535 {
			return fmt.Errorf("statistics: invalid port %d", config.Statistics.Port)
		}
		if config.Api.Enabled && config.Api.Port == config.Statistics.Port {
			return fmt.Errorf("statistics: port %d is already used by the api", config.Statistics.Port)
		}
	}
	return nil
}

func validateEvents(config *Configuration) error {
	events := config.Events
	if !events.Enabled {
		return nil
	}
	if len(events.Broker) <= 0 {
		return errors.New("events: missing broker address")
	}
	if _, err := url.Parse(events.Broker); err != nil {
		return fmt.Errorf("events: invalid broker address '%s': %v", events.Broker, err)
	}
	if len(events.Topic) <= 0 {
		return errors.New("events: missing topic")
	}
	if events.QueueSize < 1 {
		return fmt.Errorf("events: invalid queueSize %d, must be >= 1", events.QueueSize)
	}
	return nil
}
