package devices

import (
	"fmt"

	"github.com/pinky3d/pinkyd/internal/configuration"
	"github.com/pinky3d/pinkyd/internal/gpio"
)

// Fan is a variable speed fan driven by a PWM signal on its output line.
// The PWM is only running while the fan is on.
type Fan struct {
	*OutputPin
	pwm       gpio.PWM
	frequency float64

	// guarded by OutputPin.mu
	speed Speed
	isOn  bool
}

type FanStatus struct {
	Line      int     `json:"line"`
	IsHigh    bool    `json:"isHigh"`
	Speed     Speed   `json:"speed"`
	Frequency float64 `json:"frequency"`
	DutyCycle float64 `json:"dutyCycle"`
	IsOn      bool    `json:"isOn"`
}

// NewFan configures the port as output (low) and switches the fan on if configured to
func NewFan(id string, port gpio.Port, pwm gpio.PWM, config configuration.FanConfig) (*Fan, error) {
	speed := Speed(config.Speed)
	if err := speed.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	pin, err := NewOutputPin(id, port, false)
	if err != nil {
		return nil, err
	}
	fan := &Fan{
		OutputPin: pin,
		pwm:       pwm,
		frequency: config.Frequency,
		speed:     speed,
	}

	if config.InitialOn {
		if err := fan.On(); err != nil {
			return nil, err
		}
	}
	return fan, nil
}

// On starts the PWM at the duty cycle of the current speed
func (f *Fan) On() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.isOn {
		return nil
	}
	if err := f.pwm.Start(f.speed.DutyCycle()); err != nil {
		return fmt.Errorf("%s: start pwm: %w", f.id, err)
	}
	f.isOn = true
	return nil
}

// Off stops the PWM and then drops the line, so no residual signal is left
func (f *Fan) Off() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.pwm.Stop(); err != nil {
		return fmt.Errorf("%s: stop pwm: %w", f.id, err)
	}
	f.isOn = false
	return f.write(false)
}

// Control sets a new speed, a running fan changes its duty cycle without stopping
func (f *Fan) Control(speed Speed) error {
	if err := speed.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.isOn {
		if err := f.pwm.ChangeDutyCycle(speed.DutyCycle()); err != nil {
			return fmt.Errorf("%s: change duty cycle: %w", f.id, err)
		}
	}
	f.speed = speed
	return nil
}

func (f *Fan) IsOn() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isOn
}

func (f *Fan) Speed() Speed {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.speed
}

func (f *Fan) Frequency() float64 {
	return f.frequency
}

func (f *Fan) Status() FanStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	pin := f.status()
	return FanStatus{
		Line:      pin.Line,
		IsHigh:    pin.IsHigh,
		Speed:     f.speed,
		Frequency: f.frequency,
		DutyCycle: f.speed.DutyCycle(),
		IsOn:      f.isOn,
	}
}

func (f *Fan) Snapshot() any {
	return f.Status()
}
