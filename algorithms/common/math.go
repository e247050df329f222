package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Shared statistical helpers for the analysis algorithms, built on gonum.

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Median calculates the median via gonum's empirical quantile.
// Robust against outliers, which is why the tempo estimator uses it
// on inter-onset intervals.
func Median(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// Clamp bounds a value to [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// MaxIndex returns the index of the largest value, or -1 for empty input.
func MaxIndex(data []float64) int {
	if len(data) == 0 {
		return -1
	}
	idx := 0
	for i, val := range data {
		if val > data[idx] {
			idx = i
		}
	}
	return idx
}

