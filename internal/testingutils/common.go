package testingutils

import (
	"testing"
	"time"

	"github.com/pinky3d/pinkyd/internal/automation"
	"github.com/pinky3d/pinkyd/internal/configuration"
	"github.com/pinky3d/pinkyd/internal/devices"
	"github.com/pinky3d/pinkyd/internal/events"
	"github.com/pinky3d/pinkyd/internal/gpio"
	"github.com/stretchr/testify/require"
)

const (
	PowerLine  = 17
	LightLine  = 27
	FanLine    = 18
	SensorLine = 22
)

var (
	DefaultFanConfig = configuration.FanConfig{
		Line:      FanLine,
		Frequency: 100,
		Speed:     100,
		InitialOn: true,
	}

	DefaultAutomationConfig = configuration.AutomationConfig{
		Enabled:          true,
		Sensor:           configuration.SensorConfig{Line: SensorLine, Pull: "down"},
		PollInterval:     time.Second,
		ShutdownDelay:    time.Minute,
		SensorWindowSize: 10,
	}
)

// Devices is a complete set of devices on a fake chip
type Devices struct {
	Chip   *gpio.FakeChip
	PWM    *gpio.FakePWM
	Power  *devices.Relay
	Light  *devices.Relay
	Fan    *devices.Fan
	Sensor *devices.InputSensor
}

func CreateDevices(t *testing.T, fanConfig configuration.FanConfig) *Devices {
	chip := gpio.NewFakeChip()
	result := &Devices{Chip: chip, PWM: gpio.NewFakePWM()}

	powerPort, err := chip.Port(PowerLine)
	require.NoError(t, err)
	result.Power, err = devices.NewRelay(devices.IdPower, powerPort, false)
	require.NoError(t, err)

	lightPort, err := chip.Port(LightLine)
	require.NoError(t, err)
	result.Light, err = devices.NewRelay(devices.IdLight, lightPort, false)
	require.NoError(t, err)

	fanPort, err := chip.Port(FanLine)
	require.NoError(t, err)
	result.Fan, err = devices.NewFan(devices.IdFan, fanPort, result.PWM, fanConfig)
	require.NoError(t, err)

	sensorPort, err := chip.Port(SensorLine)
	require.NoError(t, err)
	result.Sensor, err = devices.NewInputSensor(devices.IdSensor, sensorPort, gpio.PullDown)
	require.NoError(t, err)

	return result
}

func (d *Devices) CreateLoop(config configuration.AutomationConfig, sink events.Sink) *automation.Loop {
	return automation.NewLoop(config, d.Sensor, d.Power, d.Light, d.Fan, sink)
}

func (d *Devices) Registry() *devices.Registry {
	return devices.NewRegistry(d.Power, d.Light, d.Fan, d.Sensor)
}

// SetSensor sets the level the sensor line reads
func (d *Devices) SetSensor(level bool) {
	d.Chip.Get(SensorLine).SetLevel(level)
}
