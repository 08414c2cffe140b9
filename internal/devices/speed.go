package devices

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MinSpeed Speed = 0
	MaxSpeed Speed = 100

	// duty cycle calibration of the fan driver: speed 0 still drives 30%
	dutyCycleFactor = 0.7
	dutyCycleOffset = 30.0
)

// Speed is the logical fan speed in [0..100]
type Speed int

// SpeedFromDutyCycle converts a PWM duty cycle (in percent) into a logical speed
func SpeedFromDutyCycle(dutyCycle float64) Speed {
	return Speed(math.Round((dutyCycle - dutyCycleOffset) / dutyCycleFactor))
}

// DutyCycle returns the PWM duty cycle (in percent) driven for this speed
func (s Speed) DutyCycle() float64 {
	return math.Min(float64(s)*dutyCycleFactor+dutyCycleOffset, 100)
}

func (s Speed) Validate() error {
	if s < MinSpeed || s > MaxSpeed {
		return &ValidationError{
			Field:  "speed",
			Value:  strconv.Itoa(int(s)),
			Reason: fmt.Sprintf("must be in [%d..%d]", MinSpeed, MaxSpeed),
		}
	}
	return nil
}

// ParseSpeed parses and validates a speed value received from a client
func ParseSpeed(value string) (Speed, error) {
	text := strings.TrimSpace(value)
	if len(text) <= 0 {
		return 0, &ValidationError{Field: "speed", Reason: "is required"}
	}
	number, err := strconv.Atoi(text)
	if err != nil {
		return 0, &ValidationError{Field: "speed", Value: value, Reason: "must be an integer"}
	}
	speed := Speed(number)
	if err := speed.Validate(); err != nil {
		return 0, err
	}
	return speed, nil
}
