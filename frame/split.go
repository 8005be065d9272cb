package frame

import (
	"math"
	"time"
)

func daysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1).Day()
}

// SplitMonthByDay explodes a month-indexed frame into a day-indexed one.
// Each row's index is treated as a month, the named column is divided
// evenly across the days of that month, and the other columns repeat
// unchanged on every day. Lets monthly totals be charted next to daily
// data.
func SplitMonthByDay(f *Frame, valColumn string) (*Frame, error) {
	valIdx, err := f.columnIndex(valColumn)
	if err != nil {
		return nil, err
	}

	out := New(f.columns...)
	for i, t := range f.times {
		month := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		days := daysInMonth(month)

		for d := 0; d < days; d++ {
			row := append([]float64(nil), f.values[i]...)
			if !math.IsNaN(row[valIdx]) {
				row[valIdx] /= float64(days)
			}
			out.times = append(out.times, month.AddDate(0, 0, d))
			out.values = append(out.values, row)
		}
	}
	return out, nil
}
