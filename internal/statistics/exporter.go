package statistics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "pinkyd"
)

func Register(collector prometheus.Collector) {
	prometheus.MustRegister(collector)
}

func boolToFloat(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
