//go:build linux

package gpio

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"
)

type cdevChip struct {
	mu      sync.Mutex
	chip    *gpiocdev.Chip
	claimed map[int]Port
}

// OpenChip opens the GPIO character device with the given name, e.g. "gpiochip0"
func OpenChip(name string) (Chip, error) {
	chip, err := gpiocdev.NewChip(name)
	if err != nil {
		return nil, fmt.Errorf("%w: open gpio chip %s: %v", ErrHardwareFault, name, err)
	}
	return &cdevChip{
		chip:    chip,
		claimed: map[int]Port{},
	}, nil
}

func (c *cdevChip) Port(line int) (Port, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.claimed[line]; exists {
		return nil, fmt.Errorf("%w: %d", ErrLineClaimed, line)
	}
	if line < 0 || line >= c.chip.Lines() {
		return nil, hardwareFault(line, "claim", fmt.Errorf("chip %s has %d lines", c.chip.Name, c.chip.Lines()))
	}
	port := &cdevPort{chip: c.chip, offset: line}
	c.claimed[line] = port
	return port, nil
}

// PWMPort drives the line through periph.io instead of the character device,
// the line is never requested from the chip so both drivers do not fight over it
func (c *cdevChip) PWMPort(line int, frequency float64) (Port, PWM, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.claimed[line]; exists {
		return nil, nil, fmt.Errorf("%w: %d", ErrLineClaimed, line)
	}
	pin, err := OpenPeriphPin(line, frequency)
	if err != nil {
		return nil, nil, err
	}
	c.claimed[line] = pin
	return pin, pin, nil
}

// Close releases all lines as inputs, see Port.Close for the bias they are left with
func (c *cdevChip) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for _, port := range c.claimed {
		if err := port.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.claimed = map[int]Port{}
	if err := c.chip.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close chip: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

type cdevPort struct {
	mu        sync.Mutex
	chip      *gpiocdev.Chip
	offset    int
	line      *gpiocdev.Line
	direction Direction
	pull      Pull
	level     bool
}

func (p *cdevPort) Line() int {
	return p.offset
}

func (p *cdevPort) Direction() Direction {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.direction
}

func (p *cdevPort) ConfigureOutput(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.direction != DirectionUnset {
		return fmt.Errorf("%w: line %d is %s", ErrAlreadyConfigured, p.offset, p.direction)
	}
	line, err := p.chip.RequestLine(p.offset, gpiocdev.AsOutput(levelToValue(level)))
	if err != nil {
		return hardwareFault(p.offset, "request output", err)
	}
	p.line = line
	p.direction = DirectionOutput
	p.level = level
	return nil
}

func (p *cdevPort) ConfigureInput(pull Pull) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.direction != DirectionUnset {
		return fmt.Errorf("%w: line %d is %s", ErrAlreadyConfigured, p.offset, p.direction)
	}
	line, err := p.chip.RequestLine(p.offset, gpiocdev.AsInput, biasOption(pull))
	if err != nil {
		return hardwareFault(p.offset, "request input", err)
	}
	p.line = line
	p.direction = DirectionInput
	p.pull = pull
	return nil
}

func (p *cdevPort) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.direction != DirectionOutput {
		return fmt.Errorf("%w: line %d", ErrNotOutput, p.offset)
	}
	if err := p.line.SetValue(levelToValue(level)); err != nil {
		return hardwareFault(p.offset, "write", err)
	}
	p.level = level
	return nil
}

func (p *cdevPort) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.direction != DirectionInput {
		return false, fmt.Errorf("%w: line %d", ErrNotInput, p.offset)
	}
	value, err := p.line.Value()
	if err != nil {
		return false, hardwareFault(p.offset, "read", err)
	}
	return value != 0, nil
}

func (p *cdevPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.line == nil {
		return nil
	}
	var errs []error
	pull := releasePull(p.direction, p.pull, p.level)
	if err := p.line.Reconfigure(gpiocdev.AsInput, biasOption(pull)); err != nil {
		errs = append(errs, fmt.Errorf("reconfigure line %d: %w", p.offset, err))
	}
	if err := p.line.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close line %d: %w", p.offset, err))
	}
	p.line = nil
	p.direction = DirectionUnset
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func biasOption(pull Pull) gpiocdev.LineBias {
	switch pull {
	case PullUp:
		return gpiocdev.WithPullUp
	case PullDown:
		return gpiocdev.WithPullDown
	default:
		return gpiocdev.WithBiasDisabled
	}
}

func levelToValue(level bool) int {
	if level {
		return 1
	}
	return 0
}
