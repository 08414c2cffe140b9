package devices

import (
	"fmt"
	"sync"

	"github.com/pinky3d/pinkyd/internal/gpio"
)

// InputSensor is a digital input with edge detection against the last acknowledged level.
// Detecting an edge and acknowledging it are separate calls, so a caller can act on
// an edge before consuming it.
type InputSensor struct {
	id   string
	port gpio.Port

	mu                sync.Mutex
	lastObservedLevel bool
}

type SensorStatus struct {
	Line              int  `json:"line"`
	Level             bool `json:"level"`
	LastObservedLevel bool `json:"lastObservedLevel"`
}

// NewInputSensor configures the port as input and records its current level as observed
func NewInputSensor(id string, port gpio.Port, pull gpio.Pull) (*InputSensor, error) {
	if err := port.ConfigureInput(pull); err != nil {
		return nil, fmt.Errorf("%s: configure line %d as input: %w", id, port.Line(), err)
	}
	level, err := port.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	return &InputSensor{
		id:                id,
		port:              port,
		lastObservedLevel: level,
	}, nil
}

func (s *InputSensor) GetId() string {
	return s.id
}

// CurrentLevel reads the line, every call is a physical read
func (s *InputSensor) CurrentLevel() (bool, error) {
	level, err := s.port.Read()
	if err != nil {
		return false, fmt.Errorf("%s: %w", s.id, err)
	}
	return level, nil
}

// HasChanged reports whether the current level differs from the last acknowledged one
func (s *InputSensor) HasChanged() (bool, error) {
	level, err := s.CurrentLevel()
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return level != s.lastObservedLevel, nil
}

// Acknowledge records the current level as observed and returns it
func (s *InputSensor) Acknowledge() (bool, error) {
	level, err := s.CurrentLevel()
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastObservedLevel = level
	return level, nil
}

func (s *InputSensor) LastObservedLevel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastObservedLevel
}

func (s *InputSensor) Status() SensorStatus {
	status := SensorStatus{
		Line:              s.port.Line(),
		LastObservedLevel: s.LastObservedLevel(),
	}
	level, err := s.CurrentLevel()
	if err != nil {
		status.Level = status.LastObservedLevel
	} else {
		status.Level = level
	}
	return status
}

func (s *InputSensor) Snapshot() any {
	return s.Status()
}
