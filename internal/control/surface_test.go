package control

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/pinky3d/pinkyd/internal/automation"
	"github.com/pinky3d/pinkyd/internal/devices"
	"github.com/pinky3d/pinkyd/internal/gpio"
	"github.com/pinky3d/pinkyd/internal/testingutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	surface   *Surface
	chip      *gpio.FakeChip
	pwm       *gpio.FakePWM
	powerPort *gpio.FakePort
}

func createSurface(t *testing.T, withLoop bool) *fixture {
	d := testingutils.CreateDevices(t, testingutils.DefaultFanConfig)

	var loop *automation.Loop
	if withLoop {
		loop = d.CreateLoop(testingutils.DefaultAutomationConfig, nil)
	}

	return &fixture{
		surface:   NewSurface(d.Power, d.Light, d.Fan, loop),
		chip:      d.Chip,
		pwm:       d.PWM,
		powerPort: d.Chip.Get(testingutils.PowerLine),
	}
}

func TestGetStatus(t *testing.T) {
	// GIVEN
	f := createSurface(t, true)

	// WHEN
	status := f.surface.GetStatus()

	// THEN
	assert.Equal(t, devices.RelayStatus{Line: 17, IsHigh: true, IsOn: false}, status.Power)
	assert.Equal(t, devices.RelayStatus{Line: 27, IsHigh: true, IsOn: false}, status.Light)
	assert.True(t, status.Fan.IsOn)
	assert.Equal(t, devices.Speed(100), status.Fan.Speed)
	require.NotNil(t, status.Automation)
	assert.Equal(t, automation.StateIdle, status.Automation.State)
}

func TestGetStatusWithoutAutomation(t *testing.T) {
	// GIVEN
	f := createSurface(t, false)

	// WHEN
	status := f.surface.GetStatus()

	// THEN
	assert.Nil(t, status.Automation)
}

func TestPowerOnOff(t *testing.T) {
	// GIVEN
	f := createSurface(t, false)

	// WHEN
	status := f.surface.PowerOn()

	// THEN
	assert.True(t, status.IsOn)
	assert.False(t, status.IsHigh)
	assert.False(t, f.powerPort.Level())

	// WHEN
	status = f.surface.PowerOff()

	// THEN
	assert.False(t, status.IsOn)
	assert.True(t, f.powerPort.Level())
}

func TestLightOnOff(t *testing.T) {
	// GIVEN
	f := createSurface(t, false)

	// THEN
	assert.True(t, f.surface.LightOn().IsOn)
	assert.True(t, f.surface.LightStatus().IsOn)
	assert.False(t, f.surface.LightOff().IsOn)
	assert.False(t, f.surface.PowerStatus().IsOn)
}

func TestPowerOnHardwareFaultReturnsUnchangedStatus(t *testing.T) {
	// GIVEN
	f := createSurface(t, false)
	f.powerPort.WriteError = fmt.Errorf("%w: simulated", gpio.ErrHardwareFault)

	// WHEN
	status := f.surface.PowerOn()

	// THEN
	assert.False(t, status.IsOn)
	assert.True(t, status.IsHigh)
}

func TestFanStartStop(t *testing.T) {
	// GIVEN
	f := createSurface(t, false)

	// WHEN
	status := f.surface.FanStop()

	// THEN
	assert.False(t, status.IsOn)
	assert.False(t, f.pwm.Running())

	// WHEN
	status = f.surface.FanStart()

	// THEN
	assert.True(t, status.IsOn)
	assert.True(t, f.pwm.Running())
	assert.True(t, f.surface.FanStatus().IsOn)
}

func TestFanSetSpeed(t *testing.T) {
	// GIVEN
	f := createSurface(t, false)

	// WHEN
	status, err := f.surface.FanSetSpeed("40")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, devices.Speed(40), status.Speed)
	assert.InDelta(t, 58.0, status.DutyCycle, 0.0001)
	assert.True(t, status.IsOn)
}

func TestFanSetSpeedInvalid(t *testing.T) {
	for _, value := range []string{"", "abc", "101", "-1"} {
		t.Run(value, func(t *testing.T) {
			// GIVEN
			f := createSurface(t, false)

			// WHEN
			status, err := f.surface.FanSetSpeed(value)

			// THEN
			var validationError *devices.ValidationError
			assert.True(t, errors.As(err, &validationError))
			assert.Equal(t, devices.Speed(100), status.Speed)
		})
	}
}

func TestFanSetSpeedValueInvalid(t *testing.T) {
	// GIVEN
	f := createSurface(t, false)

	// WHEN
	_, err := f.surface.FanSetSpeedValue(200)

	// THEN
	var validationError *devices.ValidationError
	assert.True(t, errors.As(err, &validationError))
}

func TestConcurrentFanSetSpeed(t *testing.T) {
	// GIVEN
	f := createSurface(t, false)
	submitted := map[devices.Speed]bool{}
	for i := 0; i <= 100; i += 10 {
		submitted[devices.Speed(i)] = true
	}

	// WHEN
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value := (i % 11) * 10
			_, err := f.surface.FanSetSpeed(fmt.Sprintf("%d", value))
			assert.NoError(t, err)
			if i%7 == 0 {
				f.surface.FanStop()
				f.surface.FanStart()
			}
		}(i)
	}
	wg.Wait()

	// THEN
	status := f.surface.FanStatus()
	assert.True(t, submitted[status.Speed], "unexpected speed %d", status.Speed)
	assert.InDelta(t, status.Speed.DutyCycle(), status.DutyCycle, 0.0001)
}
