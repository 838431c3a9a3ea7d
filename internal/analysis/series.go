package analysis

import (
	"github.com/moznion/go-optional"

	"github.com/guttosm/stockdash/internal/domain/models"
)

// DefaultMovingAverageWindow is the trailing window, in trading days, of the
// moving average shown on the dashboard.
const DefaultMovingAverageWindow = 100

// AdjCloses extracts the adjusted close column of bars.
func AdjCloses(bars []models.DailyBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.AdjClose
	}
	return out
}

// RollingMean returns the trailing simple moving average of values.
// Position i is None until window values are available (i < window-1).
// A non-positive window yields all None.
func RollingMean(values []float64, window int) []optional.Option[float64] {
	out := make([]optional.Option[float64], len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if window > 0 && i >= window {
			sum -= values[i-window]
		}
		if window <= 0 || i < window-1 {
			out[i] = optional.None[float64]()
			continue
		}
		out[i] = optional.Some(sum / float64(window))
	}
	return out
}

// SimpleReturns returns values[i]/values[i-1] - 1 for every position.
// The first position, and any position following a zero value, is None.
func SimpleReturns(values []float64) []optional.Option[float64] {
	out := make([]optional.Option[float64], len(values))
	for i := range values {
		if i == 0 || values[i-1] == 0 {
			out[i] = optional.None[float64]()
			continue
		}
		out[i] = optional.Some(values[i]/values[i-1] - 1)
	}
	return out
}

// ToPoints pairs derived values with the dates of bars. Both slices must
// have the same length.
func ToPoints(bars []models.DailyBar, values []optional.Option[float64]) []models.Point {
	out := make([]models.Point, len(values))
	for i, v := range values {
		out[i] = models.Point{Date: bars[i].Date}
		if v.IsSome() {
			val := v.Unwrap()
			out[i].Value = &val
		}
	}
	return out
}
