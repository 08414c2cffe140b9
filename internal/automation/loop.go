package automation

import (
	"context"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/pinky3d/pinkyd/internal/configuration"
	"github.com/pinky3d/pinkyd/internal/devices"
	"github.com/pinky3d/pinkyd/internal/events"
	"github.com/pinky3d/pinkyd/internal/ui"
	"github.com/pinky3d/pinkyd/internal/util"
)

const (
	StateIdle         = "idle"
	StateCountingDown = "countingDown"
)

// Loop polls the presence sensor and switches the power and light relays.
// A high edge switches both relays on, a low edge starts a shutdown countdown
// which is only carried out if the sensor stays low for the whole shutdown delay.
type Loop struct {
	sensor *devices.InputSensor
	power  *devices.Relay
	light  *devices.Relay
	fan    *devices.Fan
	sink   events.Sink

	pollInterval  time.Duration
	shutdownDelay time.Duration
	controlFan    bool

	mu                   sync.Mutex
	pendingShutdownSince *time.Time
	window               *rolling.PointPolicy
	lastTick             time.Time
	statistics           Statistics
}

type Statistics struct {
	Ticks              int `json:"ticks"`
	PowerOnCount       int `json:"powerOnCount"`
	ShutdownsScheduled int `json:"shutdownsScheduled"`
	ShutdownsCancelled int `json:"shutdownsCancelled"`
	PowerOffCount      int `json:"powerOffCount"`
	SensorErrors       int `json:"sensorErrors"`
	DeviceErrors       int `json:"deviceErrors"`
}

type Status struct {
	State                string     `json:"state"`
	PendingShutdownSince *time.Time `json:"pendingShutdownSince,omitempty"`
	// ShutdownRemaining is the time left until shutdown in seconds, only set while counting down
	ShutdownRemaining float64 `json:"shutdownRemaining,omitempty"`
	SensorLevel       bool    `json:"sensorLevel"`
	// PresenceRatio is the share of recent samples in which the sensor was high
	PresenceRatio float64 `json:"presenceRatio"`
	// RecentPresence is set if the sensor was high in any of the recent samples
	RecentPresence bool       `json:"recentPresence"`
	PollInterval   float64    `json:"pollInterval"`
	ShutdownDelay  float64    `json:"shutdownDelay"`
	LastTick       *time.Time `json:"lastTick,omitempty"`
	Statistics     Statistics `json:"statistics"`
}

func NewLoop(
	config configuration.AutomationConfig,
	sensor *devices.InputSensor,
	power *devices.Relay,
	light *devices.Relay,
	fan *devices.Fan,
	sink events.Sink,
) *Loop {
	if sink == nil {
		sink = events.NopSink{}
	}
	windowSize := config.SensorWindowSize
	if windowSize < 1 {
		windowSize = 1
	}
	return &Loop{
		sensor:        sensor,
		power:         power,
		light:         light,
		fan:           fan,
		sink:          sink,
		pollInterval:  config.PollInterval,
		shutdownDelay: config.ShutdownDelay,
		controlFan:    config.ControlFan && fan != nil,
		window:        util.CreateRollingWindow(windowSize),
	}
}

// Run ticks until the context is cancelled. A tick in progress is always completed.
func (l *Loop) Run(ctx context.Context) error {
	ui.Info("Starting automation loop (poll interval: %v, shutdown delay: %v)", l.pollInterval, l.shutdownDelay)

	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			ui.Info("Stopping automation loop...")
			return nil
		case <-ticker.C:
			l.Tick(time.Now())
		}
	}
}

// Tick runs a single iteration of the loop at the given time
func (l *Loop) Tick(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastTick = now
	l.statistics.Ticks++

	l.handleEdge(now)
	l.window.Append(levelToSample(l.sensor.LastObservedLevel()))
	l.handleCountdown(now)
}

// handleEdge consumes a sensor edge, acknowledging it before acting on it.
// The edge is only acted on if the acknowledged level still differs from the previous one,
// a level that flips back between the two reads is a glitch.
func (l *Loop) handleEdge(now time.Time) {
	previous := l.sensor.LastObservedLevel()
	changed, err := l.sensor.HasChanged()
	if err != nil {
		l.statistics.SensorErrors++
		ui.Error("Unable to read sensor: %v", err)
		return
	}
	if !changed {
		return
	}

	level, err := l.sensor.Acknowledge()
	if err != nil {
		l.statistics.SensorErrors++
		ui.Error("Unable to read sensor: %v", err)
		return
	}
	if level == previous {
		ui.Debug("Sensor level returned to %v before it was acknowledged, ignoring", level)
		return
	}

	if level {
		ui.Info("Sensor went high")
		l.switchOn(now)
		if l.pendingShutdownSince != nil {
			ui.Info("Shutdown cancelled")
			l.pendingShutdownSince = nil
			l.statistics.ShutdownsCancelled++
			l.sink.Publish(events.Event{Timestamp: now, Type: events.TypeShutdownCancelled})
		}
		return
	}

	ui.Info("Sensor went low")
	if !l.power.IsOn() {
		ui.Debug("Power is already off, no shutdown needed")
		return
	}
	if l.pendingShutdownSince == nil {
		since := now
		l.pendingShutdownSince = &since
		l.statistics.ShutdownsScheduled++
		ui.Info("Shutting down in %v", l.shutdownDelay)
		l.sink.Publish(events.Event{Timestamp: now, Type: events.TypeShutdownScheduled, Delay: l.shutdownDelay})
	}
}

func (l *Loop) handleCountdown(now time.Time) {
	if l.pendingShutdownSince == nil {
		return
	}

	remaining := l.shutdownDelay - now.Sub(*l.pendingShutdownSince)
	if remaining > 0 {
		ui.Debug("Shutting down in %v", remaining.Round(time.Second))
		return
	}

	if l.switchOff(now) {
		l.pendingShutdownSince = nil
	}
}

// switchOn switches every relay on that is not already on
func (l *Loop) switchOn(now time.Time) {
	switched := false
	for _, device := range l.managedSwitches() {
		if device.IsOn() {
			continue
		}
		if err := device.On(); err != nil {
			l.statistics.DeviceErrors++
			ui.Error("Unable to switch on %s: %v", device.GetId(), err)
			continue
		}
		ui.Info("Switched on %s", device.GetId())
		switched = true
	}
	if switched {
		l.statistics.PowerOnCount++
		l.sink.Publish(events.Event{Timestamp: now, Type: events.TypePowerOn})
	}
}

// switchOff switches all managed devices off, returns false if any of them failed
func (l *Loop) switchOff(now time.Time) bool {
	ok := true
	for _, device := range l.managedSwitches() {
		if err := device.Off(); err != nil {
			l.statistics.DeviceErrors++
			ui.Error("Unable to switch off %s: %v", device.GetId(), err)
			ok = false
			continue
		}
		ui.Info("Switched off %s", device.GetId())
	}
	if ok {
		l.statistics.PowerOffCount++
		l.sink.Publish(events.Event{Timestamp: now, Type: events.TypePowerOff})
	}
	return ok
}

func (l *Loop) managedSwitches() []devices.Switch {
	result := []devices.Switch{l.power, l.light}
	if l.controlFan {
		result = append(result, l.fan)
	}
	return result
}

// PendingShutdownSince returns the start of the active shutdown countdown, if any
func (l *Loop) PendingShutdownSince() (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pendingShutdownSince == nil {
		return time.Time{}, false
	}
	return *l.pendingShutdownSince, true
}

func (l *Loop) Statistics() Statistics {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.statistics
}

func (l *Loop) Status() Status {
	return l.StatusAt(time.Now())
}

// StatusAt returns the status with the remaining countdown computed relative to now
func (l *Loop) StatusAt(now time.Time) Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	status := Status{
		State:          StateIdle,
		SensorLevel:    l.sensor.LastObservedLevel(),
		PresenceRatio:  util.GetWindowAvg(l.window),
		RecentPresence: util.GetWindowMax(l.window) > 0,
		PollInterval:   l.pollInterval.Seconds(),
		ShutdownDelay:  l.shutdownDelay.Seconds(),
		Statistics:     l.statistics,
	}
	if !l.lastTick.IsZero() {
		lastTick := l.lastTick
		status.LastTick = &lastTick
	}
	if l.pendingShutdownSince != nil {
		since := *l.pendingShutdownSince
		status.State = StateCountingDown
		status.PendingShutdownSince = &since
		remaining := l.shutdownDelay - now.Sub(since)
		if remaining < 0 {
			remaining = 0
		}
		status.ShutdownRemaining = remaining.Seconds()
	}
	return status
}

func levelToSample(level bool) float64 {
	if level {
		return 1
	}
	return 0
}
