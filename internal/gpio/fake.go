package gpio

import (
	"fmt"
	"sync"
)

// FakeChip is a test double handing out FakePorts
type FakeChip struct {
	mu     sync.Mutex
	Ports  map[int]*FakePort
	PWMs   map[int]*FakePWM
	Closed bool

	// FaultyLines lists lines whose configuration fails with ErrHardwareFault
	FaultyLines []int
}

func NewFakeChip() *FakeChip {
	return &FakeChip{Ports: map[int]*FakePort{}, PWMs: map[int]*FakePWM{}}
}

func (c *FakeChip) Port(line int) (Port, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.Ports[line]; exists {
		return nil, fmt.Errorf("%w: %d", ErrLineClaimed, line)
	}
	port := NewFakePort(line)
	for _, faulty := range c.FaultyLines {
		if faulty == line {
			port.ConfigureError = hardwareFault(line, "request", fmt.Errorf("simulated fault"))
		}
	}
	c.Ports[line] = port
	return port, nil
}

// PWMPort hands out a FakePort together with a FakePWM recording the duty cycles
func (c *FakeChip) PWMPort(line int, frequency float64) (Port, PWM, error) {
	if frequency <= 0 {
		return nil, nil, fmt.Errorf("invalid pwm frequency %.2f, must be > 0", frequency)
	}
	port, err := c.Port(line)
	if err != nil {
		return nil, nil, err
	}
	pwm := NewFakePWM()
	c.mu.Lock()
	c.PWMs[line] = pwm
	c.mu.Unlock()
	return port, pwm, nil
}

// GetPWM returns the pwm handed out for the given line, or nil
func (c *FakeChip) GetPWM(line int) *FakePWM {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.PWMs[line]
}

// Get returns the port handed out for the given line, or nil
func (c *FakeChip) Get(line int) *FakePort {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Ports[line]
}

func (c *FakeChip) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, port := range c.Ports {
		_ = port.Close()
	}
	c.Closed = true
	return nil
}

// FakePort records every write and returns a settable input level
type FakePort struct {
	mu        sync.Mutex
	line      int
	direction Direction
	pull      Pull
	level     bool
	queued    []bool
	writes    []bool
	closed    bool

	// WriteError, if set, is returned by Write and the level is left untouched
	WriteError error
	// ReadError, if set, is returned by Read
	ReadError error
	// ConfigureError, if set, is returned by ConfigureInput and ConfigureOutput
	ConfigureError error
}

func NewFakePort(line int) *FakePort {
	return &FakePort{line: line}
}

func (p *FakePort) Line() int {
	return p.line
}

func (p *FakePort) Direction() Direction {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.direction
}

func (p *FakePort) ConfigureOutput(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ConfigureError != nil {
		return p.ConfigureError
	}
	if p.direction != DirectionUnset {
		return fmt.Errorf("%w: line %d is %s", ErrAlreadyConfigured, p.line, p.direction)
	}
	p.direction = DirectionOutput
	p.level = level
	p.writes = append(p.writes, level)
	return nil
}

func (p *FakePort) ConfigureInput(pull Pull) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ConfigureError != nil {
		return p.ConfigureError
	}
	if p.direction != DirectionUnset {
		return fmt.Errorf("%w: line %d is %s", ErrAlreadyConfigured, p.line, p.direction)
	}
	p.direction = DirectionInput
	p.pull = pull
	return nil
}

func (p *FakePort) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.direction != DirectionOutput {
		return fmt.Errorf("%w: line %d", ErrNotOutput, p.line)
	}
	if p.WriteError != nil {
		return p.WriteError
	}
	p.level = level
	p.writes = append(p.writes, level)
	return nil
}

func (p *FakePort) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.direction != DirectionInput {
		return false, fmt.Errorf("%w: line %d", ErrNotInput, p.line)
	}
	if p.ReadError != nil {
		return false, p.ReadError
	}
	if len(p.queued) > 0 {
		p.level = p.queued[0]
		p.queued = p.queued[1:]
	}
	return p.level, nil
}

// QueueLevels makes the following reads return the given levels in order,
// afterwards the last one is kept
func (p *FakePort) QueueLevels(levels ...bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queued = append(p.queued, levels...)
}

// Close releases the port like a real line: the pull resistor keeps the last output level
func (p *FakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.pull = releasePull(p.direction, p.pull, p.level)
	switch p.pull {
	case PullUp:
		p.level = true
	case PullDown:
		p.level = false
	}
	p.direction = DirectionUnset
	p.closed = true
	return nil
}

// SetLevel sets the level seen by Read, simulating the external signal of an input
func (p *FakePort) SetLevel(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

// Level returns the current level of the line
func (p *FakePort) Level() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *FakePort) Pull() Pull {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pull
}

// Writes returns a copy of all levels written so far, including the initial output level
func (p *FakePort) Writes() []bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]bool, len(p.writes))
	copy(result, p.writes)
	return result
}

func (p *FakePort) IsClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// FakePWM records the duty cycles it was asked to drive
type FakePWM struct {
	mu         sync.Mutex
	running    bool
	dutyCycle  float64
	DutyCycles []float64
	Starts     int
	Stops      int

	// Error, if set, is returned by every call and the state is left untouched
	Error error
}

func NewFakePWM() *FakePWM {
	return &FakePWM{}
}

func (p *FakePWM) Start(dutyCycle float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Error != nil {
		return p.Error
	}
	if err := validateDutyCycle(dutyCycle); err != nil {
		return err
	}
	p.running = true
	p.dutyCycle = dutyCycle
	p.DutyCycles = append(p.DutyCycles, dutyCycle)
	p.Starts++
	return nil
}

func (p *FakePWM) ChangeDutyCycle(dutyCycle float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Error != nil {
		return p.Error
	}
	if err := validateDutyCycle(dutyCycle); err != nil {
		return err
	}
	p.dutyCycle = dutyCycle
	p.DutyCycles = append(p.DutyCycles, dutyCycle)
	return nil
}

func (p *FakePWM) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Error != nil {
		return p.Error
	}
	p.running = false
	p.Stops++
	return nil
}

func (p *FakePWM) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *FakePWM) DutyCycle() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dutyCycle
}
