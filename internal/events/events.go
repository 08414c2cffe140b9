// Package events publishes automation transitions to external listeners.
package events

import (
	"encoding/json"
	"time"
)

type Type string

const (
	// TypePowerOn is emitted when the sensor switched the relays on
	TypePowerOn Type = "POWER_ON"
	// TypeShutdownScheduled is emitted when a shutdown countdown starts
	TypeShutdownScheduled Type = "SHUTDOWN_SCHEDULED"
	// TypeShutdownCancelled is emitted when the sensor went high again during a countdown
	TypeShutdownCancelled Type = "SHUTDOWN_CANCELLED"
	// TypePowerOff is emitted when the countdown elapsed and the relays were switched off
	TypePowerOff Type = "POWER_OFF"
)

type Event struct {
	Timestamp time.Time
	Type      Type
	// Delay is the configured shutdown delay, only set for TypeShutdownScheduled
	Delay time.Duration
}

// Sink receives events, implementations must not block the caller for long
type Sink interface {
	Publish(event Event)
}

type Payload struct {
	Timestamp string  `json:"timestamp"`
	Event     string  `json:"event"`
	Delay     float64 `json:"delaySeconds,omitempty"`
}

func FormatPayload(event Event) ([]byte, error) {
	return json.Marshal(Payload{
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
		Event:     string(event.Type),
		Delay:     event.Delay.Seconds(),
	})
}

// NopSink discards all events
type NopSink struct{}

func (NopSink) Publish(Event) {}
