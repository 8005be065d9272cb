package chart

import (
	"math"

	"github.com/noodahq/nooda/frame"
)

// Agg reduces one bucket of rows (already restricted to the series'
// columns) to a single value. Returning NaN drops the point.
type Agg func(rows *frame.Frame) float64

func eachValue(rows *frame.Frame, fn func(v float64)) {
	for i := 0; i < rows.Len(); i++ {
		_, values := rows.Row(i)
		for _, v := range values {
			if math.IsNaN(v) {
				continue
			}
			fn(v)
		}
	}
}

// Sum adds every value in the bucket across all columns.
func Sum(rows *frame.Frame) float64 {
	total := math.NaN()
	eachValue(rows, func(v float64) {
		if math.IsNaN(total) {
			total = 0
		}
		total += v
	})
	return total
}

// Mean averages every value in the bucket.
func Mean(rows *frame.Frame) float64 {
	total, n := 0.0, 0
	eachValue(rows, func(v float64) {
		total += v
		n++
	})
	if n == 0 {
		return math.NaN()
	}
	return total / float64(n)
}

// Max returns the largest value in the bucket.
func Max(rows *frame.Frame) float64 {
	max := math.NaN()
	eachValue(rows, func(v float64) {
		if math.IsNaN(max) || v > max {
			max = v
		}
	})
	return max
}

// Min returns the smallest value in the bucket.
func Min(rows *frame.Frame) float64 {
	min := math.NaN()
	eachValue(rows, func(v float64) {
		if math.IsNaN(min) || v < min {
			min = v
		}
	})
	return min
}

// Last returns the final non-NaN value in the bucket, in row order.
func Last(rows *frame.Frame) float64 {
	last := math.NaN()
	eachValue(rows, func(v float64) { last = v })
	return last
}

// Ratio divides the bucket sum of one column by the bucket sum of
// another. The usual shape for success-rate series.
func Ratio(num, denom string) Agg {
	return func(rows *frame.Frame) float64 {
		numSum, denomSum := 0.0, 0.0
		numOK, denomOK := false, false

		for i := 0; i < rows.Len(); i++ {
			if v, err := rows.Value(i, num); err == nil && !math.IsNaN(v) {
				numSum += v
				numOK = true
			}
			if v, err := rows.Value(i, denom); err == nil && !math.IsNaN(v) {
				denomSum += v
				denomOK = true
			}
		}
		if !numOK || !denomOK || denomSum == 0 {
			return math.NaN()
		}
		return numSum / denomSum
	}
}

// AvgDaily divides the bucket sum by the number of days the bucket's
// non-NaN rows cover (inclusive). A month where data stops halfway
// averages over the days that have data, not the whole month.
func AvgDaily(rows *frame.Frame) float64 {
	total := 0.0
	ok := false
	var first, last int = -1, -1

	for i := 0; i < rows.Len(); i++ {
		_, values := rows.Row(i)
		rowOK := false
		for _, v := range values {
			if math.IsNaN(v) {
				continue
			}
			total += v
			rowOK = true
		}
		if rowOK {
			ok = true
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if !ok {
		return math.NaN()
	}

	firstT, _ := rows.Row(first)
	lastT, _ := rows.Row(last)
	days := int(lastT.Sub(firstT).Hours()/24) + 1
	return total / float64(days)
}
