// Package gpio abstracts single digital GPIO lines.
// The real implementation uses the Linux GPIO character device for plain lines
// and periph.io for PWM lines, the fake implementation allows testing without hardware.
package gpio

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrHardwareFault is wrapped by every error caused by the GPIO driver
	ErrHardwareFault     = errors.New("hardware fault")
	ErrNotOutput         = errors.New("port is not configured as output")
	ErrNotInput          = errors.New("port is not configured as input")
	ErrAlreadyConfigured = errors.New("port direction is already configured")
	ErrLineClaimed       = errors.New("line is already claimed")
)

type Direction int

const (
	DirectionUnset Direction = iota
	DirectionInput
	DirectionOutput
)

func (d Direction) String() string {
	switch d {
	case DirectionInput:
		return "input"
	case DirectionOutput:
		return "output"
	default:
		return "unset"
	}
}

type Pull int

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

func (p Pull) String() string {
	switch p {
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	default:
		return "none"
	}
}

// ParsePull converts a configuration value ("none", "up", "down") into a Pull
func ParsePull(value string) (Pull, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none", "off":
		return PullNone, nil
	case "up", "pull-up", "pullup":
		return PullUp, nil
	case "down", "pull-down", "pulldown":
		return PullDown, nil
	}
	return PullNone, fmt.Errorf("invalid pull mode '%s', use one of: none | up | down", value)
}

// Port is a single physical GPIO line.
// The direction of a port can only be configured once.
type Port interface {
	Line() int
	Direction() Direction

	// ConfigureOutput claims the line as output, driving the given level immediately
	ConfigureOutput(level bool) error
	// ConfigureInput claims the line as input with the given pull resistor
	ConfigureInput(pull Pull) error

	// Write drives the given level, fails with ErrNotOutput on non-output ports
	Write(level bool) error
	// Read samples the current level, fails with ErrNotInput on non-input ports
	Read() (bool, error)

	// Close releases the line as input. An output keeps its last level through
	// the matching pull resistor, so an active-low load stays off.
	Close() error
}

// Chip hands out the lines of a GPIO controller
type Chip interface {
	// Port claims the given line, fails with ErrLineClaimed if it was handed out before
	Port(line int) (Port, error)
	// PWMPort claims the given line together with a PWM generating the signal on it
	PWMPort(line int, frequency float64) (Port, PWM, error)
	Close() error
}

func hardwareFault(line int, action string, err error) error {
	return fmt.Errorf("%w: line %d: %s: %v", ErrHardwareFault, line, action, err)
}
