package configuration

type GpioConfig struct {
	// Chip is the name of the GPIO character device, e.g. "gpiochip0"
	Chip string `json:"chip"`
	// Fake replaces the GPIO chip with an in-memory implementation
	Fake bool `json:"fake"`
}

type DevicesConfig struct {
	Power RelayConfig `json:"power"`
	Light RelayConfig `json:"light"`
	Fan   FanConfig   `json:"fan"`
}

type RelayConfig struct {
	Line      GpioLine `json:"line"`
	InitialOn bool     `json:"initialOn"`
}

type FanConfig struct {
	Line GpioLine `json:"line"`
	// Frequency of the PWM signal in Hz
	Frequency float64 `json:"frequency"`
	// Speed is the initial logical speed [0..100]
	Speed     int  `json:"speed"`
	InitialOn bool `json:"initialOn"`
}
