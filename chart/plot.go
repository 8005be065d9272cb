package chart

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/noodahq/nooda/frame"
)

// ErrAllSeriesOffset is returned when every series on a plot carries an
// offset; at least one must anchor the plot in the current period.
var ErrAllSeriesOffset = errors.New("plot needs at least one series without an offset")

// Bounds is the half-open time window [Earliest, Latest) a plot covers.
type Bounds struct {
	Earliest time.Time
	Latest   time.Time
}

// Plot is one panel of a chart: a set of series bucketed on a calendar
// increment (day, week or month) over a trailing window.
type Plot struct {
	Series []Series

	// RangeColumns, when set, decide which columns anchor the end of the
	// window. Defaults to the union of all series columns.
	RangeColumns []string

	kind       string
	increments int
	bounds     func(max time.Time) Bounds
	clamp      func(time.Time) time.Time
	xLabel     func(time.Time) string
}

// Kind returns "daily", "weekly" or "monthly".
func (p *Plot) Kind() string { return p.kind }

// Increments returns the number of buckets the window spans; panel
// widths are proportional to it.
func (p *Plot) Increments() int { return p.increments }

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	back := (int(day.Weekday()) + 6) % 7 // Monday start
	return day.AddDate(0, 0, -back)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Daily buckets by day over the trailing window of the given length,
// including the day the data ends on.
func Daily(days int, series ...Series) *Plot {
	return &Plot{
		Series:     series,
		kind:       "daily",
		increments: days,
		clamp:      startOfDay,
		bounds: func(max time.Time) Bounds {
			latest := startOfDay(max).AddDate(0, 0, 1)
			return Bounds{Earliest: latest.AddDate(0, 0, -days), Latest: latest}
		},
		xLabel: func(t time.Time) string { return t.Format("01/02") },
	}
}

// Weekly buckets by ISO week (Monday start) over the trailing window,
// including the in-progress week.
func Weekly(weeks int, series ...Series) *Plot {
	return &Plot{
		Series:     series,
		kind:       "weekly",
		increments: weeks,
		clamp:      startOfWeek,
		bounds: func(max time.Time) Bounds {
			latest := startOfWeek(max).AddDate(0, 0, 7)
			return Bounds{Earliest: latest.AddDate(0, 0, -7*weeks), Latest: latest}
		},
		xLabel: func(t time.Time) string { return t.Format("Wk 01/02") },
	}
}

// Monthly buckets by calendar month over the trailing window, including
// the in-progress month.
func Monthly(months int, series ...Series) *Plot {
	return &Plot{
		Series:     series,
		kind:       "monthly",
		increments: months,
		clamp:      startOfMonth,
		bounds: func(max time.Time) Bounds {
			latest := startOfMonth(max).AddDate(0, 1, 0)
			return Bounds{Earliest: latest.AddDate(0, -months, 0), Latest: latest}
		},
		xLabel: func(t time.Time) string { return t.Format("Jan") },
	}
}

func (p *Plot) validate() error {
	if len(p.Series) == 0 {
		return fmt.Errorf("plot has no series")
	}
	anchored := false
	for _, s := range p.Series {
		if s.Offset.IsZero() {
			anchored = true
			break
		}
	}
	if !anchored {
		return ErrAllSeriesOffset
	}
	return nil
}

func (p *Plot) rangeColumns() []string {
	if len(p.RangeColumns) > 0 {
		return p.RangeColumns
	}
	var cols []string
	seen := map[string]bool{}
	for _, s := range p.Series {
		for _, c := range s.Columns {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}
	return cols
}

// WindowBounds computes the plot's window from the data's latest
// populated row.
func (p *Plot) WindowBounds(f *frame.Frame) (Bounds, error) {
	max, err := f.MaxTimeWhere(p.rangeColumns())
	if err != nil {
		return Bounds{}, err
	}
	return p.bounds(max), nil
}

func (p *Plot) seriesPoints(f *frame.Frame, bounds Bounds, s Series, times map[int64]time.Time) (map[int64]float64, error) {
	g := f
	if !s.Offset.IsZero() {
		g = g.Shift(s.Offset)
	}

	g, err := g.Window(bounds.Earliest, bounds.Latest).Select(s.Columns...)
	if err != nil {
		return nil, err
	}

	points := make(map[int64]float64)
	for _, group := range g.GroupBy(p.clamp) {
		v := s.Agg(group.Rows)
		if math.IsNaN(v) {
			continue
		}
		points[group.Time.UnixNano()] = v
		times[group.Time.UnixNano()] = group.Time
	}
	return points, nil
}

// Data buckets and aggregates every series over the plot's window and
// returns a frame indexed by bucket time with one column per series
// label. Buckets a series has no value for hold NaN.
func (p *Plot) Data(f *frame.Frame) (*frame.Frame, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	bounds, err := p.WindowBounds(f)
	if err != nil {
		return nil, err
	}

	perSeries := make([]map[int64]float64, len(p.Series))
	times := map[int64]time.Time{}
	for i, s := range p.Series {
		points, err := p.seriesPoints(f, bounds, s, times)
		if err != nil {
			return nil, err
		}
		perSeries[i] = points
	}

	keys := make([]int64, 0, len(times))
	for k := range times {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	labels := make([]string, len(p.Series))
	for i, s := range p.Series {
		labels[i] = s.Label
	}

	out := frame.New(labels...)
	for _, k := range keys {
		values := make([]float64, len(p.Series))
		for i, points := range perSeries {
			v, ok := points[k]
			if !ok {
				v = math.NaN()
			}
			values[i] = v
		}
		if err := out.Append(times[k], values...); err != nil {
			return nil, err
		}
	}
	return out, nil
}
