package configuration

import (
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/pinky3d/pinkyd/internal/ui"
	"github.com/spf13/viper"
)

type Configuration struct {
	Gpio       GpioConfig       `json:"gpio"`
	Devices    DevicesConfig    `json:"devices"`
	Automation AutomationConfig `json:"automation"`
	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
	Events     EventsConfig     `json:"events"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("pinkyd")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/pinkyd/")
	}

	viper.SetEnvPrefix("pinkyd")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("gpio.chip", "gpiochip0")
	viper.SetDefault("gpio.fake", false)

	viper.SetDefault("devices.power.line", 17)
	viper.SetDefault("devices.power.initialOn", false)
	viper.SetDefault("devices.light.line", 27)
	viper.SetDefault("devices.light.initialOn", false)
	viper.SetDefault("devices.fan.line", 18)
	viper.SetDefault("devices.fan.frequency", 100.0)
	viper.SetDefault("devices.fan.speed", 100)
	viper.SetDefault("devices.fan.initialOn", true)

	viper.SetDefault("automation.enabled", true)
	viper.SetDefault("automation.sensor.line", 22)
	viper.SetDefault("automation.sensor.pull", "down")
	viper.SetDefault("automation.pollInterval", 2*time.Second)
	viper.SetDefault("automation.shutdownDelay", 60*time.Second)
	viper.SetDefault("automation.sensorWindowSize", 10)
	viper.SetDefault("automation.controlFan", false)

	viper.SetDefault("api.enabled", true)
	viper.SetDefault("api.host", "0.0.0.0")
	viper.SetDefault("api.port", 8080)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("events.enabled", false)
	viper.SetDefault("events.broker", "tcp://localhost:1883")
	viper.SetDefault("events.clientId", "pinkyd")
	viper.SetDefault("events.topic", "pinky/events")
	viper.SetDefault("events.queueSize", 64)
}

// DetectConfigFile locates the config file, without reading it.
// Returns the path of the file that will be used, or an empty string if none was found.
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			ui.Warning("No config file found, using default values")
			return ""
		}
		// config file was found but could not be read
		ui.Fatal("Error reading config file, %s", err)
	}
	return viper.ConfigFileUsed()
}

// DetectAndReadConfigFile reads the config file and loads it into CurrentConfig
func DetectAndReadConfigFile() string {
	path := DetectConfigFile()
	LoadConfig()
	return path
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		gpioLineHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
