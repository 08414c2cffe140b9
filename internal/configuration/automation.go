package configuration

import "time"

type AutomationConfig struct {
	Enabled bool         `json:"enabled"`
	Sensor  SensorConfig `json:"sensor"`

	PollInterval  time.Duration `json:"pollInterval"`
	ShutdownDelay time.Duration `json:"shutdownDelay"`

	// SensorWindowSize is the number of recent sensor samples kept for diagnostics
	SensorWindowSize int `json:"sensorWindowSize"`

	// ControlFan starts and stops the fan together with the power relay
	ControlFan bool `json:"controlFan"`
}

type SensorConfig struct {
	Line GpioLine `json:"line"`
	Pull string   `json:"pull"`
}
