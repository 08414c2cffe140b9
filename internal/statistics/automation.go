package statistics

import (
	"github.com/pinky3d/pinkyd/internal/automation"
	"github.com/prometheus/client_golang/prometheus"
)

const automationSubsystem = "automation"

type AutomationCollector struct {
	loop *automation.Loop

	sensorLevel       *prometheus.Desc
	presenceRatio     *prometheus.Desc
	recentPresence    *prometheus.Desc
	countingDown      *prometheus.Desc
	shutdownRemaining *prometheus.Desc
	transitions       *prometheus.Desc
	errors            *prometheus.Desc
}

func NewAutomationCollector(loop *automation.Loop) *AutomationCollector {
	return &AutomationCollector{
		loop: loop,
		sensorLevel: prometheus.NewDesc(prometheus.BuildFQName(namespace, automationSubsystem, "sensor_level"),
			"Last acknowledged level of the presence sensor",
			nil, nil,
		),
		presenceRatio: prometheus.NewDesc(prometheus.BuildFQName(namespace, automationSubsystem, "presence_ratio"),
			"Share of recent sensor samples that were high",
			nil, nil,
		),
		recentPresence: prometheus.NewDesc(prometheus.BuildFQName(namespace, automationSubsystem, "recent_presence"),
			"Whether any recent sensor sample was high",
			nil, nil,
		),
		countingDown: prometheus.NewDesc(prometheus.BuildFQName(namespace, automationSubsystem, "counting_down"),
			"Whether a shutdown countdown is active",
			nil, nil,
		),
		shutdownRemaining: prometheus.NewDesc(prometheus.BuildFQName(namespace, automationSubsystem, "shutdown_remaining_seconds"),
			"Seconds until the pending shutdown, 0 if none is pending",
			nil, nil,
		),
		transitions: prometheus.NewDesc(prometheus.BuildFQName(namespace, automationSubsystem, "transitions_total"),
			"Number of transitions of the automation loop by type",
			[]string{"type"}, nil,
		),
		errors: prometheus.NewDesc(prometheus.BuildFQName(namespace, automationSubsystem, "errors_total"),
			"Number of hardware errors seen by the automation loop by source",
			[]string{"source"}, nil,
		),
	}
}

func (collector *AutomationCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.sensorLevel
	ch <- collector.presenceRatio
	ch <- collector.recentPresence
	ch <- collector.countingDown
	ch <- collector.shutdownRemaining
	ch <- collector.transitions
	ch <- collector.errors
}

// Collect implements required collect function for all prometheus collectors
func (collector *AutomationCollector) Collect(ch chan<- prometheus.Metric) {
	status := collector.loop.Status()
	stats := status.Statistics

	ch <- prometheus.MustNewConstMetric(collector.sensorLevel, prometheus.GaugeValue, boolToFloat(status.SensorLevel))
	ch <- prometheus.MustNewConstMetric(collector.presenceRatio, prometheus.GaugeValue, status.PresenceRatio)
	ch <- prometheus.MustNewConstMetric(collector.recentPresence, prometheus.GaugeValue, boolToFloat(status.RecentPresence))
	ch <- prometheus.MustNewConstMetric(collector.countingDown, prometheus.GaugeValue, boolToFloat(status.State == automation.StateCountingDown))
	ch <- prometheus.MustNewConstMetric(collector.shutdownRemaining, prometheus.GaugeValue, status.ShutdownRemaining)

	ch <- prometheus.MustNewConstMetric(collector.transitions, prometheus.CounterValue, float64(stats.PowerOnCount), "power_on")
	ch <- prometheus.MustNewConstMetric(collector.transitions, prometheus.CounterValue, float64(stats.ShutdownsScheduled), "shutdown_scheduled")
	ch <- prometheus.MustNewConstMetric(collector.transitions, prometheus.CounterValue, float64(stats.ShutdownsCancelled), "shutdown_cancelled")
	ch <- prometheus.MustNewConstMetric(collector.transitions, prometheus.CounterValue, float64(stats.PowerOffCount), "power_off")

	ch <- prometheus.MustNewConstMetric(collector.errors, prometheus.CounterValue, float64(stats.SensorErrors), "sensor")
	ch <- prometheus.MustNewConstMetric(collector.errors, prometheus.CounterValue, float64(stats.DeviceErrors), "device")
}
