package internal

import (
	"errors"
	"testing"
	"time"

	"github.com/pinky3d/pinkyd/internal/configuration"
	"github.com/pinky3d/pinkyd/internal/devices"
	"github.com/pinky3d/pinkyd/internal/events"
	"github.com/pinky3d/pinkyd/internal/gpio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createConfig() configuration.Configuration {
	return configuration.Configuration{
		Gpio: configuration.GpioConfig{Fake: true},
		Devices: configuration.DevicesConfig{
			Power: configuration.RelayConfig{Line: 17},
			Light: configuration.RelayConfig{Line: 27},
			Fan: configuration.FanConfig{
				Line:      18,
				Frequency: 100,
				Speed:     60,
				InitialOn: true,
			},
		},
		Automation: configuration.AutomationConfig{
			Enabled:          true,
			Sensor:           configuration.SensorConfig{Line: 22, Pull: "down"},
			PollInterval:     time.Second,
			ShutdownDelay:    time.Minute,
			SensorWindowSize: 5,
		},
	}
}

func TestNewApp(t *testing.T) {
	// GIVEN
	config := createConfig()
	chip := gpio.NewFakeChip()

	// WHEN
	app, err := NewApp(config, chip, nil)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, []string{devices.IdFan, devices.IdLight, devices.IdPower, devices.IdSensor}, app.Registry.Ids())
	assert.NotNil(t, app.Loop)
	assert.Len(t, app.Collectors(), 2)

	// relays are active low and start switched off
	assert.True(t, chip.Get(17).Level())
	assert.True(t, chip.Get(27).Level())
	assert.False(t, app.Power.IsOn())

	assert.True(t, app.Fan.IsOn())
	assert.Equal(t, devices.Speed(60), app.Fan.Speed())
	assert.Equal(t, gpio.PullDown, chip.Get(22).Pull())
}

func TestNewApp_AutomationDisabled(t *testing.T) {
	// GIVEN
	config := createConfig()
	config.Automation.Enabled = false
	chip := gpio.NewFakeChip()

	// WHEN
	app, err := NewApp(config, chip, nil)

	// THEN
	require.NoError(t, err)
	assert.Nil(t, app.Loop)
	assert.Nil(t, app.Sensor)
	assert.Nil(t, chip.Get(22))
	assert.Len(t, app.Collectors(), 1)
	assert.Nil(t, app.Surface.GetStatus().Automation)
}

func TestNewApp_HardwareFault(t *testing.T) {
	// GIVEN
	config := createConfig()
	chip := gpio.NewFakeChip()
	chip.FaultyLines = []int{27}

	// WHEN
	_, err := NewApp(config, chip, nil)

	// THEN
	assert.Error(t, err)
	assert.True(t, errors.Is(err, gpio.ErrHardwareFault))
	assert.Contains(t, err.Error(), devices.IdLight)
}

func TestNewApp_DuplicateLine(t *testing.T) {
	// GIVEN
	config := createConfig()
	config.Devices.Light.Line = 17
	chip := gpio.NewFakeChip()

	// WHEN
	_, err := NewApp(config, chip, nil)

	// THEN
	assert.True(t, errors.Is(err, gpio.ErrLineClaimed))
}

func TestApp_SensorDrivesRelays(t *testing.T) {
	// GIVEN
	config := createConfig()
	chip := gpio.NewFakeChip()
	sink := events.NewFakeSink()
	app, err := NewApp(config, chip, sink)
	require.NoError(t, err)
	start := time.Now()

	// WHEN
	chip.Get(22).SetLevel(true)
	app.Loop.Tick(start)

	// THEN
	assert.True(t, app.Surface.PowerStatus().IsOn)
	assert.True(t, app.Surface.LightStatus().IsOn)
	assert.Equal(t, []events.Type{events.TypePowerOn}, sink.Types())
}

func TestApp_Close(t *testing.T) {
	// GIVEN
	config := createConfig()
	chip := gpio.NewFakeChip()
	app, err := NewApp(config, chip, nil)
	require.NoError(t, err)

	// WHEN
	err = app.Close()

	// THEN
	assert.NoError(t, err)
	assert.False(t, app.Fan.IsOn())
	assert.True(t, chip.Closed)
	assert.True(t, chip.Get(17).IsClosed())
}

func TestApp_CloseLeavesRelaysOff(t *testing.T) {
	// GIVEN
	config := createConfig()
	chip := gpio.NewFakeChip()
	app, err := NewApp(config, chip, nil)
	require.NoError(t, err)
	app.Surface.PowerOn()
	app.Surface.LightOn()
	require.False(t, chip.Get(17).Level())
	require.True(t, chip.GetPWM(18).Running())

	// WHEN
	err = app.Close()

	// THEN
	assert.NoError(t, err)
	for _, line := range []int{17, 27} {
		assert.True(t, chip.Get(line).Level(), "line %d", line)
		assert.Equal(t, gpio.PullUp, chip.Get(line).Pull(), "line %d", line)
	}
	assert.False(t, chip.Get(18).Level())
	assert.Equal(t, gpio.PullDown, chip.Get(18).Pull())
	assert.False(t, chip.GetPWM(18).Running())
}

func TestOpenChip_Fake(t *testing.T) {
	// WHEN
	chip, err := OpenChip(configuration.GpioConfig{Chip: "gpiochip0", Fake: true})

	// THEN
	require.NoError(t, err)
	_, ok := chip.(*gpio.FakeChip)
	assert.True(t, ok)
}
