package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"
)

// Date layouts accepted for the index column, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ReadCSV reads a headered CSV into a frame. The named date column
// becomes the index; every other column is parsed as float64, with empty
// or unparsable cells recorded as NaN.
func ReadCSV(r io.Reader, dateColumn string) (*Frame, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	dateIdx := -1
	columns := make([]string, 0, len(header)-1)
	for i, name := range header {
		if name == dateColumn {
			dateIdx = i
			continue
		}
		columns = append(columns, name)
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("%w: date column %q", ErrUnknownColumn, dateColumn)
	}
	if len(columns) == 0 {
		return nil, ErrNoNumericColumns
	}

	f := New(columns...)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		t, err := parseDate(record[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", f.Len()+1, err)
		}

		values := make([]float64, 0, len(columns))
		for i, cell := range record {
			if i == dateIdx {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				v = math.NaN()
			}
			values = append(values, v)
		}
		if err := f.Append(t, values...); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// LoadCSV reads a CSV file into a frame.
func LoadCSV(path, dateColumn string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	return ReadCSV(file, dateColumn)
}

// WriteCSV writes the frame with the index in the first column.
func (f *Frame) WriteCSV(w io.Writer, dateColumn string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(append([]string{dateColumn}, f.columns...)); err != nil {
		return err
	}
	for i, t := range f.times {
		record := make([]string, 0, len(f.columns)+1)
		record = append(record, t.Format("2006-01-02"))
		for _, v := range f.values[i] {
			if math.IsNaN(v) {
				record = append(record, "")
			} else {
				record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
