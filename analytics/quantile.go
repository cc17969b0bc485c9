// Package analytics derives the signal views from the validated record
// set: quantile filters, revenue ranking and cumulative-share
// segmentation over handheld-rod products priced at a target size.
package analytics

import (
	"math"
	"sort"
)

// Quantile computes the q-quantile of values using linear interpolation
// between order statistics. Small samples diverge wildly between
// interpolation methods, so this one is pinned by tests and used for
// every view. The second return value is false for an empty input.
func Quantile(values []float64, q float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0], true
	}
	if q >= 1 {
		return sorted[len(sorted)-1], true
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo], true
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac, true
}

// Median is the 0.5 quantile.
func Median(values []float64) (float64, bool) {
	return Quantile(values, 0.5)
}
