package configuration

import (
	"bytes"

	"github.com/spf13/viper"
)

// ExampleConfig is written by "config init", it mirrors the default values
const ExampleConfig = `# pinkyd configuration

gpio:
  # character device of the gpio chip, see "gpiodetect"
  chip: gpiochip0
  # use an in-memory chip instead of real hardware
  fake: false

devices:
  # relays are active low: the load is on while the line is low
  power:
    line: GPIO17
    initialOn: false
  light:
    line: GPIO27
    initialOn: false
  fan:
    line: GPIO18
    # PWM frequency in Hz
    frequency: 100
    # logical speed [0..100], mapped onto a 30..100% duty cycle
    speed: 100
    initialOn: true

automation:
  enabled: true
  sensor:
    line: GPIO22
    # none | up | down
    pull: down
  pollInterval: 2s
  # time the sensor has to stay low before everything is switched off
  shutdownDelay: 60s
  sensorWindowSize: 10
  # start and stop the fan together with the relays
  controlFan: false

api:
  enabled: true
  host: 0.0.0.0
  port: 8080

statistics:
  enabled: false
  port: 9000

events:
  enabled: false
  broker: tcp://localhost:1883
  clientId: pinkyd
  topic: pinky/events
  username: ""
  password: ""
  queueSize: 64
`

// ParseConfig decodes and validates a yaml document on a fresh viper instance
func ParseConfig(data []byte) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	var result Configuration
	if err := v.Unmarshal(&result, viper.DecodeHook(decodeHook())); err != nil {
		return nil, err
	}
	if err := validateConfig(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
