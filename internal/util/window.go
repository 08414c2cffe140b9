package util

import (
	"math"

	"github.com/asecurityteam/rolling"
)

func CreateRollingWindow(size int) *rolling.PointPolicy {
	return rolling.NewPointPolicy(rolling.NewWindow(size))
}

// GetWindowMax returns the max value in the window
func GetWindowMax(window *rolling.PointPolicy) float64 {
	return window.Reduce(rolling.Max)
}

// GetWindowAvg returns the average of all values in the window, or 0 for an empty window
func GetWindowAvg(window *rolling.PointPolicy) float64 {
	avg := window.Reduce(rolling.Avg)
	if math.IsNaN(avg) {
		return 0
	}
	return avg
}
