package gpio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

func TestParsePull(t *testing.T) {
	tests := []struct {
		input    string
		expected Pull
	}{
		{"", PullNone},
		{"none", PullNone},
		{"up", PullUp},
		{"Pull-Up", PullUp},
		{"down", PullDown},
		{" pulldown ", PullDown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParsePull(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParsePullInvalid(t *testing.T) {
	// WHEN
	_, err := ParsePull("sideways")

	// THEN
	assert.EqualError(t, err, "invalid pull mode 'sideways', use one of: none | up | down")
}

func TestFakeChipLineClaimedTwice(t *testing.T) {
	// GIVEN
	chip := NewFakeChip()
	_, err := chip.Port(17)
	require.NoError(t, err)

	// WHEN
	_, err = chip.Port(17)

	// THEN
	assert.ErrorIs(t, err, ErrLineClaimed)
}

func TestFakeChipFaultyLine(t *testing.T) {
	// GIVEN
	chip := NewFakeChip()
	chip.FaultyLines = []int{4}
	port, err := chip.Port(4)
	require.NoError(t, err)

	// WHEN
	err = port.ConfigureOutput(true)

	// THEN
	assert.ErrorIs(t, err, ErrHardwareFault)
	assert.Equal(t, DirectionUnset, port.Direction())
}

func TestFakePortDirectionIsFixed(t *testing.T) {
	// GIVEN
	port := NewFakePort(1)
	require.NoError(t, port.ConfigureInput(PullDown))

	// WHEN
	err := port.ConfigureOutput(true)

	// THEN
	assert.ErrorIs(t, err, ErrAlreadyConfigured)
	assert.Equal(t, DirectionInput, port.Direction())
	assert.Equal(t, PullDown, port.Pull())
}

func TestFakePortWriteRequiresOutput(t *testing.T) {
	// GIVEN
	port := NewFakePort(1)
	require.NoError(t, port.ConfigureInput(PullNone))

	// WHEN
	err := port.Write(true)

	// THEN
	assert.ErrorIs(t, err, ErrNotOutput)
}

func TestFakePortReadRequiresInput(t *testing.T) {
	// GIVEN
	port := NewFakePort(1)
	require.NoError(t, port.ConfigureOutput(false))

	// WHEN
	_, err := port.Read()

	// THEN
	assert.ErrorIs(t, err, ErrNotInput)
}

func TestFakePortRecordsWrites(t *testing.T) {
	// GIVEN
	port := NewFakePort(1)
	require.NoError(t, port.ConfigureOutput(true))

	// WHEN
	require.NoError(t, port.Write(false))
	require.NoError(t, port.Write(true))

	// THEN
	assert.Equal(t, []bool{true, false, true}, port.Writes())
	assert.True(t, port.Level())
}

func TestFakePortWriteError(t *testing.T) {
	// GIVEN
	port := NewFakePort(1)
	require.NoError(t, port.ConfigureOutput(false))
	port.WriteError = errors.New("simulated")

	// WHEN
	err := port.Write(true)

	// THEN
	assert.Error(t, err)
	assert.False(t, port.Level())
}

func TestFakePortCloseKeepsOutputLevel(t *testing.T) {
	tests := []struct {
		level        bool
		expectedPull Pull
	}{
		{level: true, expectedPull: PullUp},
		{level: false, expectedPull: PullDown},
	}
	for _, tt := range tests {
		// GIVEN
		port := NewFakePort(1)
		require.NoError(t, port.ConfigureOutput(!tt.level))
		require.NoError(t, port.Write(tt.level))

		// WHEN
		err := port.Close()

		// THEN
		assert.NoError(t, err)
		assert.Equal(t, tt.expectedPull, port.Pull())
		assert.Equal(t, tt.level, port.Level())
		assert.True(t, port.IsClosed())
	}
}

func TestFakePortCloseKeepsInputPull(t *testing.T) {
	// GIVEN
	port := NewFakePort(1)
	require.NoError(t, port.ConfigureInput(PullNone))

	// WHEN
	err := port.Close()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, PullNone, port.Pull())
}

func TestFakeChipPWMPort(t *testing.T) {
	// GIVEN
	chip := NewFakeChip()

	// WHEN
	port, pwm, err := chip.PWMPort(18, 100)

	// THEN
	require.NoError(t, err)
	assert.Same(t, chip.Get(18), port)
	assert.Same(t, chip.GetPWM(18), pwm)

	_, _, err = chip.PWMPort(18, 100)
	assert.ErrorIs(t, err, ErrLineClaimed)
	_, _, err = chip.PWMPort(19, 0)
	assert.Error(t, err)
}

type fakePeriphPin struct {
	pull      pgpio.Pull
	level     pgpio.Level
	outs      []pgpio.Level
	duty      pgpio.Duty
	frequency physic.Frequency
	halts     int
	err       error
}

func (p *fakePeriphPin) Name() string {
	return "GPIO18"
}

func (p *fakePeriphPin) In(pull pgpio.Pull, edge pgpio.Edge) error {
	if p.err != nil {
		return p.err
	}
	p.pull = pull
	return nil
}

func (p *fakePeriphPin) Read() pgpio.Level {
	return p.level
}

func (p *fakePeriphPin) Out(level pgpio.Level) error {
	if p.err != nil {
		return p.err
	}
	p.level = level
	p.outs = append(p.outs, level)
	return nil
}

func (p *fakePeriphPin) PWM(duty pgpio.Duty, frequency physic.Frequency) error {
	if p.err != nil {
		return p.err
	}
	p.duty = duty
	p.frequency = frequency
	return nil
}

func (p *fakePeriphPin) Halt() error {
	p.halts++
	return nil
}

var maxDuty = float64(pgpio.DutyMax)

func createPeriphPin(t *testing.T) (*PeriphPin, *fakePeriphPin) {
	fake := &fakePeriphPin{}
	pin, err := newPeriphPin(fake, 18, 100)
	require.NoError(t, err)
	return pin, fake
}

func TestPeriphPinInvalidFrequency(t *testing.T) {
	_, err := newPeriphPin(&fakePeriphPin{}, 18, 0)
	assert.Error(t, err)
}

func TestPeriphPinRequiresOutput(t *testing.T) {
	// GIVEN
	pin, _ := createPeriphPin(t)

	// WHEN
	err := pin.Start(50)

	// THEN
	assert.ErrorIs(t, err, ErrNotOutput)
	assert.False(t, pin.Running())
}

func TestPeriphPinStart(t *testing.T) {
	// GIVEN
	pin, fake := createPeriphPin(t)
	require.NoError(t, pin.ConfigureOutput(false))

	// WHEN
	err := pin.Start(65)

	// THEN
	require.NoError(t, err)
	assert.True(t, pin.Running())
	assert.Equal(t, pgpio.Duty(0.65*maxDuty), fake.duty)
	assert.Equal(t, 100*physic.Hertz, fake.frequency)
}

func TestPeriphPinFullDutyCycle(t *testing.T) {
	// GIVEN
	pin, fake := createPeriphPin(t)
	require.NoError(t, pin.ConfigureOutput(false))

	// WHEN
	require.NoError(t, pin.Start(100))

	// THEN
	assert.Equal(t, pgpio.DutyMax, fake.duty)
}

func TestPeriphPinRejectsInvalidDutyCycle(t *testing.T) {
	// GIVEN
	pin, _ := createPeriphPin(t)
	require.NoError(t, pin.ConfigureOutput(false))

	// THEN
	assert.Error(t, pin.Start(100.5))
	assert.Error(t, pin.Start(-1))
	assert.False(t, pin.Running())
}

func TestPeriphPinChangeDutyCycle(t *testing.T) {
	// GIVEN
	pin, fake := createPeriphPin(t)
	require.NoError(t, pin.ConfigureOutput(false))
	assert.ErrorIs(t, pin.ChangeDutyCycle(50), ErrPwmNotRunning)
	require.NoError(t, pin.Start(30))

	// WHEN
	err := pin.ChangeDutyCycle(50)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, pgpio.Duty(0.5*maxDuty), fake.duty)
}

func TestPeriphPinHardwareFault(t *testing.T) {
	// GIVEN
	pin, fake := createPeriphPin(t)
	require.NoError(t, pin.ConfigureOutput(false))
	fake.err = errors.New("no pwm on this pin")

	// WHEN
	err := pin.Start(50)

	// THEN
	assert.ErrorIs(t, err, ErrHardwareFault)
	assert.False(t, pin.Running())
}

func TestPeriphPinStopDrivesLow(t *testing.T) {
	// GIVEN
	pin, fake := createPeriphPin(t)
	require.NoError(t, pin.ConfigureOutput(false))
	require.NoError(t, pin.Start(100))

	// WHEN
	err := pin.Stop()

	// THEN
	require.NoError(t, err)
	assert.False(t, pin.Running())
	assert.Equal(t, 1, fake.halts)
	assert.Equal(t, pgpio.Low, fake.level)

	// stopping again does nothing
	assert.NoError(t, pin.Stop())
	assert.Equal(t, 1, fake.halts)
}

func TestPeriphPinClose(t *testing.T) {
	// GIVEN
	pin, fake := createPeriphPin(t)
	require.NoError(t, pin.ConfigureOutput(false))
	require.NoError(t, pin.Start(80))

	// WHEN
	err := pin.Close()

	// THEN
	require.NoError(t, err)
	assert.False(t, pin.Running())
	assert.Equal(t, pgpio.PullDown, fake.pull)
	assert.Equal(t, DirectionUnset, pin.Direction())
}

func TestPeriphPinReadWrite(t *testing.T) {
	// GIVEN
	output, outFake := createPeriphPin(t)
	require.NoError(t, output.ConfigureOutput(true))
	input, inFake := createPeriphPin(t)
	require.NoError(t, input.ConfigureInput(PullUp))
	inFake.level = pgpio.High

	// WHEN
	writeErr := output.Write(false)
	level, readErr := input.Read()

	// THEN
	assert.NoError(t, writeErr)
	assert.Equal(t, []pgpio.Level{pgpio.High, pgpio.Low}, outFake.outs)
	assert.NoError(t, readErr)
	assert.True(t, level)
	assert.Equal(t, pgpio.PullUp, inFake.pull)

	_, err := output.Read()
	assert.ErrorIs(t, err, ErrNotInput)
	assert.ErrorIs(t, input.Write(true), ErrNotOutput)
	assert.ErrorIs(t, output.ConfigureInput(PullNone), ErrAlreadyConfigured)
}
