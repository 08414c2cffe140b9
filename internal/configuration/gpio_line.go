package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// GpioLine is the offset of a line on the GPIO chip (BCM numbering on a Raspberry Pi)
type GpioLine int

const MaxGpioLine = 63

// ParseGpioLine accepts plain numbers ("17") as well as "GPIO17" and "BCM17"
func ParseGpioLine(value string) (GpioLine, error) {
	text := strings.ToUpper(strings.TrimSpace(value))
	for _, prefix := range []string{"GPIO", "BCM"} {
		text = strings.TrimPrefix(text, prefix)
	}
	line, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("invalid gpio line '%s'", value)
	}
	return GpioLine(line), nil
}

func gpioLineHookFunc() mapstructure.DecodeHookFuncType {
	lineType := reflect.TypeOf(GpioLine(0))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != lineType {
			return data, nil
		}
		if f.Kind() == reflect.String {
			return ParseGpioLine(data.(string))
		}
		return data, nil
	}
}
