package devices

import (
	"github.com/pinky3d/pinkyd/internal/gpio"
)

// Relay is an active-low relay: a low line energizes the coil and switches the load on.
// The idle state (line high) means the load is off.
type Relay struct {
	*OutputPin
}

type RelayStatus struct {
	Line   int  `json:"line"`
	IsHigh bool `json:"isHigh"`
	IsOn   bool `json:"isOn"`
}

func NewRelay(id string, port gpio.Port, initialOn bool) (*Relay, error) {
	pin, err := NewOutputPin(id, port, !initialOn)
	if err != nil {
		return nil, err
	}
	return &Relay{OutputPin: pin}, nil
}

func (r *Relay) On() error {
	return r.Lower()
}

func (r *Relay) Off() error {
	return r.Raise()
}

func (r *Relay) IsOn() bool {
	return !r.IsHigh()
}

func (r *Relay) Status() RelayStatus {
	pin := r.OutputPin.Status()
	return RelayStatus{
		Line:   pin.Line,
		IsHigh: pin.IsHigh,
		IsOn:   !pin.IsHigh,
	}
}

func (r *Relay) Snapshot() any {
	return r.Status()
}
