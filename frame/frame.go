package frame

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

var (
	// ErrEmpty is returned when an operation needs at least one row.
	ErrEmpty = errors.New("frame is empty")
	// ErrNoNumericColumns is returned when a frame has no value columns.
	ErrNoNumericColumns = errors.New("frame has no numeric columns")
	// ErrUnknownColumn is returned when a named column does not exist.
	ErrUnknownColumn = errors.New("unknown column")
)

// Frame is an ordered, date-indexed table of float64 columns. Rows keep
// the order they were appended in; nothing reorders or dedups them.
// Missing values are NaN.
type Frame struct {
	columns []string
	times   []time.Time
	values  [][]float64 // one slice per row, len(columns) wide
}

// New creates an empty frame with the given value columns.
func New(columns ...string) *Frame {
	return &Frame{columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.times) }

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Times returns the date index in row order.
func (f *Frame) Times() []time.Time {
	return append([]time.Time(nil), f.times...)
}

// Append adds a row. The number of values must match the column count.
func (f *Frame) Append(t time.Time, values ...float64) error {
	if len(values) != len(f.columns) {
		return fmt.Errorf("append: got %d values, frame has %d columns", len(values), len(f.columns))
	}
	f.times = append(f.times, t)
	f.values = append(f.values, append([]float64(nil), values...))
	return nil
}

func (f *Frame) columnIndex(name string) (int, error) {
	for i, c := range f.columns {
		if c == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// Column returns all values of a named column in row order.
func (f *Frame) Column(name string) ([]float64, error) {
	idx, err := f.columnIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(f.values))
	for i, row := range f.values {
		out[i] = row[idx]
	}
	return out, nil
}

// Value returns a single cell.
func (f *Frame) Value(row int, column string) (float64, error) {
	idx, err := f.columnIndex(column)
	if err != nil {
		return 0, err
	}
	if row < 0 || row >= len(f.values) {
		return 0, fmt.Errorf("row %d out of range (%d rows)", row, len(f.values))
	}
	return f.values[row][idx], nil
}

// Row returns the timestamp and values of one row.
func (f *Frame) Row(i int) (time.Time, []float64) {
	return f.times[i], append([]float64(nil), f.values[i]...)
}

// MinTime returns the earliest index value.
func (f *Frame) MinTime() (time.Time, error) {
	if f.Len() == 0 {
		return time.Time{}, ErrEmpty
	}
	min := f.times[0]
	for _, t := range f.times[1:] {
		if t.Before(min) {
			min = t
		}
	}
	return min, nil
}

// MaxTime returns the latest index value.
func (f *Frame) MaxTime() (time.Time, error) {
	if f.Len() == 0 {
		return time.Time{}, ErrEmpty
	}
	max := f.times[0]
	for _, t := range f.times[1:] {
		if t.After(max) {
			max = t
		}
	}
	return max, nil
}

// MaxTimeWhere returns the latest index value among rows where at least
// one of the named columns is present (non-NaN). Used to find the end of
// the plottable range when trailing rows only carry other columns.
func (f *Frame) MaxTimeWhere(columns []string) (time.Time, error) {
	if f.Len() == 0 {
		return time.Time{}, ErrEmpty
	}
	idxs := make([]int, 0, len(columns))
	for _, c := range columns {
		idx, err := f.columnIndex(c)
		if err != nil {
			return time.Time{}, err
		}
		idxs = append(idxs, idx)
	}

	var max time.Time
	found := false
	for i, row := range f.values {
		present := false
		for _, idx := range idxs {
			if !math.IsNaN(row[idx]) {
				present = true
				break
			}
		}
		if !present {
			continue
		}
		if !found || f.times[i].After(max) {
			max = f.times[i]
			found = true
		}
	}
	if !found {
		return time.Time{}, fmt.Errorf("no rows with values in %v", columns)
	}
	return max, nil
}

// Span returns the distance between the earliest and latest index values.
func (f *Frame) Span() (time.Duration, error) {
	min, err := f.MinTime()
	if err != nil {
		return 0, err
	}
	max, err := f.MaxTime()
	if err != nil {
		return 0, err
	}
	return max.Sub(min), nil
}

// Select returns a frame restricted to the named columns, sharing the
// same index.
func (f *Frame) Select(columns ...string) (*Frame, error) {
	idxs := make([]int, 0, len(columns))
	for _, c := range columns {
		idx, err := f.columnIndex(c)
		if err != nil {
			return nil, err
		}
		idxs = append(idxs, idx)
	}

	out := New(columns...)
	for i, row := range f.values {
		vals := make([]float64, len(idxs))
		for j, idx := range idxs {
			vals[j] = row[idx]
		}
		out.times = append(out.times, f.times[i])
		out.values = append(out.values, vals)
	}
	return out, nil
}

// Window returns the rows whose index falls in [earliest, latest).
func (f *Frame) Window(earliest, latest time.Time) *Frame {
	out := New(f.columns...)
	for i, t := range f.times {
		if t.Before(earliest) || !t.Before(latest) {
			continue
		}
		out.times = append(out.times, t)
		out.values = append(out.values, append([]float64(nil), f.values[i]...))
	}
	return out
}

// Shift returns a copy of the frame with the offset added to every index
// value. Used to overlay a prior period on the current one.
func (f *Frame) Shift(off Offset) *Frame {
	out := New(f.columns...)
	for i, t := range f.times {
		out.times = append(out.times, off.Add(t))
		out.values = append(out.values, append([]float64(nil), f.values[i]...))
	}
	return out
}

// Group is one bucket produced by GroupBy: the clamped time and the rows
// that clamp to it.
type Group struct {
	Time time.Time
	Rows *Frame
}

// GroupBy buckets rows by clamp(index) and returns the buckets in
// ascending time order. Rows within a bucket keep their original order.
func (f *Frame) GroupBy(clamp func(time.Time) time.Time) []Group {
	buckets := make(map[int64]*Frame)
	keys := make(map[int64]time.Time)

	for i, t := range f.times {
		ct := clamp(t)
		k := ct.UnixNano()
		b, ok := buckets[k]
		if !ok {
			b = New(f.columns...)
			buckets[k] = b
			keys[k] = ct
		}
		b.times = append(b.times, t)
		b.values = append(b.values, append([]float64(nil), f.values[i]...))
	}

	order := make([]int64, 0, len(buckets))
	for k := range buckets {
		order = append(order, k)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	out := make([]Group, 0, len(order))
	for _, k := range order {
		out = append(out, Group{Time: keys[k], Rows: buckets[k]})
	}
	return out
}

// Validate checks that the frame is plottable: at least one row and one
// column.
func (f *Frame) Validate() error {
	if len(f.columns) == 0 {
		return ErrNoNumericColumns
	}
	if f.Len() == 0 {
		return ErrEmpty
	}
	return nil
}
