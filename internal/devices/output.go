package devices

import (
	"fmt"
	"sync"

	"github.com/pinky3d/pinkyd/internal/gpio"
)

// OutputPin is a digital output line that remembers the last level written to it.
// All methods are safe for concurrent use.
type OutputPin struct {
	id   string
	port gpio.Port

	mu     sync.Mutex
	isHigh bool
}

type OutputPinStatus struct {
	Line   int  `json:"line"`
	IsHigh bool `json:"isHigh"`
}

// NewOutputPin configures the port as output and drives the initial level immediately
func NewOutputPin(id string, port gpio.Port, initialLevel bool) (*OutputPin, error) {
	if err := port.ConfigureOutput(initialLevel); err != nil {
		return nil, fmt.Errorf("%s: configure line %d as output: %w", id, port.Line(), err)
	}
	return &OutputPin{
		id:     id,
		port:   port,
		isHigh: initialLevel,
	}, nil
}

func (p *OutputPin) GetId() string {
	return p.id
}

func (p *OutputPin) Line() int {
	return p.port.Line()
}

func (p *OutputPin) Raise() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.write(true)
}

func (p *OutputPin) Lower() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.write(false)
}

func (p *OutputPin) IsHigh() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isHigh
}

func (p *OutputPin) Status() OutputPinStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status()
}

func (p *OutputPin) Snapshot() any {
	return p.Status()
}

func (p *OutputPin) status() OutputPinStatus {
	return OutputPinStatus{
		Line:   p.port.Line(),
		IsHigh: p.isHigh,
	}
}

// write must be called with mu held, isHigh is only updated if the port accepted the level
func (p *OutputPin) write(level bool) error {
	if err := p.port.Write(level); err != nil {
		return fmt.Errorf("%s: %w", p.id, err)
	}
	p.isHigh = level
	return nil
}
