package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Configuration {
	return Configuration{
		Gpio: GpioConfig{Chip: "gpiochip0"},
		Devices: DevicesConfig{
			Power: RelayConfig{Line: 17},
			Light: RelayConfig{Line: 27},
			Fan:   FanConfig{Line: 18, Frequency: 100, Speed: 100, InitialOn: true},
		},
		Automation: AutomationConfig{
			Enabled:          true,
			Sensor:           SensorConfig{Line: 22, Pull: "down"},
			PollInterval:     2 * time.Second,
			ShutdownDelay:    60 * time.Second,
			SensorWindowSize: 10,
		},
		Api:        ApiConfig{Enabled: true, Host: "0.0.0.0", Port: 8080},
		Statistics: StatisticsConfig{Enabled: true, Port: 9000},
		Events: EventsConfig{
			Enabled:   true,
			Broker:    "tcp://localhost:1883",
			Topic:     "pinky/events",
			QueueSize: 16,
		},
	}
}

func TestValidateValidConfig(t *testing.T) {
	// GIVEN
	config := validConfig()

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.NoError(t, err)
}

func TestValidateMissingChip(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Gpio.Chip = ""

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "gpio: missing chip name")
}

func TestValidateMissingChipWithFakeGpio(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Gpio.Chip = ""
	config.Gpio.Fake = true

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.NoError(t, err)
}

func TestValidateDuplicateLine(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Devices.Light.Line = 17

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "light: gpio line 17 is used more than once")
}

func TestValidateSensorLineIgnoredWhenAutomationDisabled(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Automation.Enabled = false
	config.Automation.Sensor.Line = 17
	config.Automation.Sensor.Pull = "sideways"

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.NoError(t, err)
}

func TestValidateLineOutOfRange(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Devices.Fan.Line = 64

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "fan: invalid gpio line 64, must be in [0..63]")
}

func TestValidateFanFrequency(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Devices.Fan.Frequency = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "fan: invalid frequency 0.00, must be > 0")
}

func TestValidateFanSpeed(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Devices.Fan.Speed = 101

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "fan: invalid speed 101, must be in [0..100]")
}

func TestValidateSensorPull(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Automation.Sensor.Pull = "sideways"

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "sensor: invalid pull mode 'sideways', use one of: none | up | down")
}

func TestValidatePollInterval(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Automation.PollInterval = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "automation: invalid pollInterval 0s, must be > 0")
}

func TestValidateShutdownDelay(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Automation.ShutdownDelay = -time.Second

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "automation: invalid shutdownDelay -1s, must be >= 0")
}

func TestValidateSensorWindowSize(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Automation.SensorWindowSize = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "automation: invalid sensorWindowSize 0, must be >= 1")
}

func TestValidateApiPort(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Api.Port = 0

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "api: invalid port 0")
}

func TestValidateStatisticsPortConflict(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Statistics.Port = config.Api.Port

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "statistics: port 8080 is already used by the api")
}

func TestValidateEventsMissingBroker(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Events.Broker = ""

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "events: missing broker address")
}

func TestValidateEventsMissingTopic(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Events.Topic = ""

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.EqualError(t, err, "events: missing topic")
}

func TestValidateEventsDisabled(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Events = EventsConfig{}

	// WHEN
	err := validateConfig(&config)

	// THEN
	assert.NoError(t, err)
}
