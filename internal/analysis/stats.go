package analysis

import (
	"math"
	"sort"

	"github.com/guttosm/stockdash/internal/domain/models"
)

// Describe summarizes every numeric column of bars the way pandas'
// DataFrame.describe() does: sample standard deviation (ddof=1) and
// quantiles with linear interpolation.
func Describe(bars []models.DailyBar) models.Statistics {
	n := len(bars)
	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	adj := make([]float64, n)
	vol := make([]float64, n)
	for i, b := range bars {
		open[i] = b.Open
		high[i] = b.High
		low[i] = b.Low
		closes[i] = b.Close
		adj[i] = b.AdjClose
		vol[i] = float64(b.Volume)
	}

	return models.Statistics{
		Open:     DescribeColumn(open),
		High:     DescribeColumn(high),
		Low:      DescribeColumn(low),
		Close:    DescribeColumn(closes),
		AdjClose: DescribeColumn(adj),
		Volume:   DescribeColumn(vol),
	}
}

// DescribeColumn computes count, mean, std, min, quartiles and max of values.
// An empty input yields a zero ColumnStats; Std is nil below two values.
func DescribeColumn(values []float64) models.ColumnStats {
	n := len(values)
	if n == 0 {
		return models.ColumnStats{}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	out := models.ColumnStats{
		Count: n,
		Mean:  mean,
		Min:   sorted[0],
		P25:   quantile(sorted, 0.25),
		P50:   quantile(sorted, 0.50),
		P75:   quantile(sorted, 0.75),
		Max:   sorted[n-1],
	}

	if n > 1 {
		var sq float64
		for _, v := range values {
			d := v - mean
			sq += d * d
		}
		std := math.Sqrt(sq / float64(n-1))
		out.Std = &std
	}

	return out
}

// quantile expects sorted input.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}
