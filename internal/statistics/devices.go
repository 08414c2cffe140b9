package statistics

import (
	"github.com/pinky3d/pinkyd/internal/devices"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	relaySubsystem = "relay"
	fanSubsystem   = "fan"
)

type DeviceCollector struct {
	relays []*devices.Relay
	fan    *devices.Fan

	relayOn   *prometheus.Desc
	relayHigh *prometheus.Desc
	fanOn     *prometheus.Desc
	fanSpeed  *prometheus.Desc
	fanDuty   *prometheus.Desc
}

func NewDeviceCollector(relays []*devices.Relay, fan *devices.Fan) *DeviceCollector {
	return &DeviceCollector{
		relays: relays,
		fan:    fan,
		relayOn: prometheus.NewDesc(prometheus.BuildFQName(namespace, relaySubsystem, "on"),
			"Whether the load of the relay is switched on",
			[]string{"id"}, nil,
		),
		relayHigh: prometheus.NewDesc(prometheus.BuildFQName(namespace, relaySubsystem, "high"),
			"Level of the relay control line",
			[]string{"id"}, nil,
		),
		fanOn: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "on"),
			"Whether the fan PWM is running",
			[]string{"id"}, nil,
		),
		fanSpeed: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "speed"),
			"Logical speed of the fan [0..100]",
			[]string{"id"}, nil,
		),
		fanDuty: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "duty_cycle"),
			"PWM duty cycle of the fan in percent",
			[]string{"id"}, nil,
		),
	}
}

func (collector *DeviceCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.relayOn
	ch <- collector.relayHigh
	ch <- collector.fanOn
	ch <- collector.fanSpeed
	ch <- collector.fanDuty
}

// Collect implements required collect function for all prometheus collectors
func (collector *DeviceCollector) Collect(ch chan<- prometheus.Metric) {
	for _, relay := range collector.relays {
		id := relay.GetId()
		status := relay.Status()
		ch <- prometheus.MustNewConstMetric(collector.relayOn, prometheus.GaugeValue, boolToFloat(status.IsOn), id)
		ch <- prometheus.MustNewConstMetric(collector.relayHigh, prometheus.GaugeValue, boolToFloat(status.IsHigh), id)
	}

	if collector.fan != nil {
		id := collector.fan.GetId()
		status := collector.fan.Status()
		ch <- prometheus.MustNewConstMetric(collector.fanOn, prometheus.GaugeValue, boolToFloat(status.IsOn), id)
		ch <- prometheus.MustNewConstMetric(collector.fanSpeed, prometheus.GaugeValue, float64(status.Speed), id)
		ch <- prometheus.MustNewConstMetric(collector.fanDuty, prometheus.GaugeValue, status.DutyCycle, id)
	}
}
