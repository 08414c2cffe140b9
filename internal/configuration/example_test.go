package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExampleConfig(t *testing.T) {
	// WHEN
	config, err := ParseConfig([]byte(ExampleConfig))

	// THEN
	require.NoError(t, err)
	assert.Equal(t, GpioLine(17), config.Devices.Power.Line)
	assert.Equal(t, GpioLine(27), config.Devices.Light.Line)
	assert.Equal(t, GpioLine(18), config.Devices.Fan.Line)
	assert.Equal(t, 100, config.Devices.Fan.Speed)
	assert.Equal(t, GpioLine(22), config.Automation.Sensor.Line)
	assert.Equal(t, 2*time.Second, config.Automation.PollInterval)
	assert.Equal(t, 60*time.Second, config.Automation.ShutdownDelay)
	assert.Equal(t, "pinky/events", config.Events.Topic)
}

func TestParseConfig_Invalid(t *testing.T) {
	// GIVEN
	data := `
gpio:
  fake: true
devices:
  power: { line: 17 }
  light: { line: 17 }
  fan: { line: 18, frequency: 100, speed: 50 }
automation:
  enabled: false
api:
  enabled: false
`

	// WHEN
	_, err := ParseConfig([]byte(data))

	// THEN
	assert.EqualError(t, err, "light: gpio line 17 is used more than once")
}
