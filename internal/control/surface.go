// Package control is the set of operations the request layer invokes on the devices.
package control

import (
	"github.com/pinky3d/pinkyd/internal/automation"
	"github.com/pinky3d/pinkyd/internal/devices"
	"github.com/pinky3d/pinkyd/internal/ui"
)

// Surface is a stateless facade over the device models.
// Hardware faults are logged and never returned, every operation returns a status snapshot
// that reflects the actual device state. Only invalid client input results in an error.
type Surface struct {
	power *devices.Relay
	light *devices.Relay
	fan   *devices.Fan
	loop  *automation.Loop
}

type Status struct {
	Power      devices.RelayStatus `json:"power"`
	Light      devices.RelayStatus `json:"light"`
	Fan        devices.FanStatus   `json:"fan"`
	Automation *automation.Status  `json:"automation,omitempty"`
}

// NewSurface creates the surface, loop may be nil when automation is disabled
func NewSurface(power, light *devices.Relay, fan *devices.Fan, loop *automation.Loop) *Surface {
	return &Surface{
		power: power,
		light: light,
		fan:   fan,
		loop:  loop,
	}
}

func (s *Surface) GetStatus() Status {
	status := Status{
		Power: s.power.Status(),
		Light: s.light.Status(),
		Fan:   s.fan.Status(),
	}
	if s.loop != nil {
		automationStatus := s.loop.Status()
		status.Automation = &automationStatus
	}
	return status
}

func (s *Surface) PowerStatus() devices.RelayStatus {
	return s.power.Status()
}

func (s *Surface) PowerOn() devices.RelayStatus {
	logFault(s.power.On(), "switch on power")
	return s.power.Status()
}

func (s *Surface) PowerOff() devices.RelayStatus {
	logFault(s.power.Off(), "switch off power")
	return s.power.Status()
}

func (s *Surface) LightStatus() devices.RelayStatus {
	return s.light.Status()
}

func (s *Surface) LightOn() devices.RelayStatus {
	logFault(s.light.On(), "switch on light")
	return s.light.Status()
}

func (s *Surface) LightOff() devices.RelayStatus {
	logFault(s.light.Off(), "switch off light")
	return s.light.Status()
}

func (s *Surface) FanStatus() devices.FanStatus {
	return s.fan.Status()
}

func (s *Surface) FanStart() devices.FanStatus {
	logFault(s.fan.On(), "start fan")
	return s.fan.Status()
}

func (s *Surface) FanStop() devices.FanStatus {
	logFault(s.fan.Off(), "stop fan")
	return s.fan.Status()
}

// FanSetSpeed parses the given client value and applies it to the fan.
// Returns a *devices.ValidationError if the value is missing or not an integer in [0..100].
func (s *Surface) FanSetSpeed(value string) (devices.FanStatus, error) {
	speed, err := devices.ParseSpeed(value)
	if err != nil {
		return s.fan.Status(), err
	}
	return s.FanSetSpeedValue(speed)
}

func (s *Surface) FanSetSpeedValue(speed devices.Speed) (devices.FanStatus, error) {
	if err := speed.Validate(); err != nil {
		return s.fan.Status(), err
	}
	logFault(s.fan.Control(speed), "set fan speed")
	return s.fan.Status(), nil
}

func logFault(err error, action string) {
	if err != nil {
		ui.Error("Unable to %s: %v", action, err)
	}
}
