package gpio

import (
	"fmt"
	"sync"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

var (
	hostInit    sync.Once
	hostInitErr error
)

// periphPin is the subset of periph's gpio.PinIO used to drive a line
type periphPin interface {
	Name() string
	In(pull pgpio.Pull, edge pgpio.Edge) error
	Read() pgpio.Level
	Out(level pgpio.Level) error
	PWM(duty pgpio.Duty, frequency physic.Frequency) error
	Halt() error
}

// PeriphPin is a line driven through periph.io. It is a Port and a PWM at the same time,
// the signal is generated by the PWM or DMA engine of the SoC.
type PeriphPin struct {
	mu        sync.Mutex
	pin       periphPin
	line      int
	frequency physic.Frequency
	direction Direction
	pull      Pull
	level     bool
	running   bool
	dutyCycle float64
}

// OpenPeriphPin looks up the line "GPIO<line>" in the periph registry
func OpenPeriphPin(line int, frequency float64) (*PeriphPin, error) {
	hostInit.Do(func() {
		_, hostInitErr = host.Init()
	})
	if hostInitErr != nil {
		return nil, hardwareFault(line, "periph host init", hostInitErr)
	}
	name := fmt.Sprintf("GPIO%d", line)
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, hardwareFault(line, "lookup", fmt.Errorf("pin %s not found", name))
	}
	return newPeriphPin(pin, line, frequency)
}

func newPeriphPin(pin periphPin, line int, frequency float64) (*PeriphPin, error) {
	if frequency <= 0 {
		return nil, fmt.Errorf("invalid pwm frequency %.2f, must be > 0", frequency)
	}
	return &PeriphPin{
		pin:       pin,
		line:      line,
		frequency: physic.Frequency(frequency * float64(physic.Hertz)),
	}, nil
}

func (p *PeriphPin) Line() int {
	return p.line
}

func (p *PeriphPin) Direction() Direction {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.direction
}

func (p *PeriphPin) ConfigureOutput(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.direction != DirectionUnset {
		return fmt.Errorf("%w: line %d is %s", ErrAlreadyConfigured, p.line, p.direction)
	}
	if err := p.pin.Out(toLevel(level)); err != nil {
		return hardwareFault(p.line, "request output", err)
	}
	p.direction = DirectionOutput
	p.level = level
	return nil
}

func (p *PeriphPin) ConfigureInput(pull Pull) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.direction != DirectionUnset {
		return fmt.Errorf("%w: line %d is %s", ErrAlreadyConfigured, p.line, p.direction)
	}
	if err := p.pin.In(toPeriphPull(pull), pgpio.NoEdge); err != nil {
		return hardwareFault(p.line, "request input", err)
	}
	p.direction = DirectionInput
	p.pull = pull
	return nil
}

func (p *PeriphPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.direction != DirectionOutput {
		return fmt.Errorf("%w: line %d", ErrNotOutput, p.line)
	}
	if err := p.pin.Out(toLevel(level)); err != nil {
		return hardwareFault(p.line, "write", err)
	}
	p.level = level
	return nil
}

func (p *PeriphPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.direction != DirectionInput {
		return false, fmt.Errorf("%w: line %d", ErrNotInput, p.line)
	}
	return p.pin.Read() == pgpio.High, nil
}

func (p *PeriphPin) Start(dutyCycle float64) error {
	if err := validateDutyCycle(dutyCycle); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.direction != DirectionOutput {
		return fmt.Errorf("%w: line %d", ErrNotOutput, p.line)
	}
	if err := p.pin.PWM(toDuty(dutyCycle), p.frequency); err != nil {
		return hardwareFault(p.line, "start pwm", err)
	}
	p.running = true
	p.dutyCycle = dutyCycle
	return nil
}

func (p *PeriphPin) ChangeDutyCycle(dutyCycle float64) error {
	if err := validateDutyCycle(dutyCycle); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return ErrPwmNotRunning
	}
	if err := p.pin.PWM(toDuty(dutyCycle), p.frequency); err != nil {
		return hardwareFault(p.line, "change duty cycle", err)
	}
	p.dutyCycle = dutyCycle
	return nil
}

func (p *PeriphPin) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return nil
	}
	if err := p.pin.Halt(); err != nil {
		return hardwareFault(p.line, "halt pwm", err)
	}
	p.running = false
	if err := p.pin.Out(pgpio.Low); err != nil {
		return hardwareFault(p.line, "write", err)
	}
	p.level = false
	return nil
}

func (p *PeriphPin) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Close stops the signal and leaves the line as input biased towards its last level
func (p *PeriphPin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.direction == DirectionUnset {
		return nil
	}
	if p.running {
		if err := p.pin.Halt(); err != nil {
			return hardwareFault(p.line, "halt pwm", err)
		}
		p.running = false
		p.level = false
	}
	pull := releasePull(p.direction, p.pull, p.level)
	if err := p.pin.In(toPeriphPull(pull), pgpio.NoEdge); err != nil {
		return hardwareFault(p.line, "release", err)
	}
	p.direction = DirectionUnset
	return nil
}

func toLevel(level bool) pgpio.Level {
	if level {
		return pgpio.High
	}
	return pgpio.Low
}

func toPeriphPull(pull Pull) pgpio.Pull {
	switch pull {
	case PullUp:
		return pgpio.PullUp
	case PullDown:
		return pgpio.PullDown
	default:
		return pgpio.Float
	}
}

// toDuty converts a duty cycle in percent into periph's fixed point duty
func toDuty(dutyCycle float64) pgpio.Duty {
	return pgpio.Duty(dutyCycle / MaxDutyCycle * float64(pgpio.DutyMax))
}
