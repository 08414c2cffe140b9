package gpio

import (
	"errors"
	"fmt"
)

const (
	MinDutyCycle = 0.0
	MaxDutyCycle = 100.0
)

var ErrPwmNotRunning = errors.New("pwm is not running")

// PWM drives a pulse width modulated signal on an output line
type PWM interface {
	// Start begins driving the given duty cycle (in percent)
	Start(dutyCycle float64) error
	// ChangeDutyCycle updates the duty cycle of a running PWM without restarting it
	ChangeDutyCycle(dutyCycle float64) error
	// Stop ends the signal and drives the line low
	Stop() error
	Running() bool
}

func validateDutyCycle(dutyCycle float64) error {
	if dutyCycle < MinDutyCycle || dutyCycle > MaxDutyCycle {
		return fmt.Errorf("duty cycle %.2f out of range [%.0f..%.0f]", dutyCycle, MinDutyCycle, MaxDutyCycle)
	}
	return nil
}

// releasePull is the bias a line is left with when it is released,
// holding the level it was last driven to
func releasePull(direction Direction, pull Pull, level bool) Pull {
	if direction != DirectionOutput {
		return pull
	}
	if level {
		return PullUp
	}
	return PullDown
}
