package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

var csvHeader = []string{"id", "kind", "target", "title", "points", "created_at"}

// CSV is a Journal appending to a single CSV file. Listing re-reads the
// file, which is fine at journal sizes.
type CSV struct {
	path string
	file *os.File
	w    *csv.Writer
}

// NewCSV opens (creating if needed) a CSV journal at path.
func NewCSV(path string) (*CSV, error) {
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(file)
	if fresh {
		if err := w.Write(csvHeader); err != nil {
			file.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			file.Close()
			return nil, err
		}
	}

	return &CSV{path: path, file: file, w: w}, nil
}

// Record appends one entry.
func (j *CSV) Record(e Entry) error {
	err := j.w.Write([]string{
		e.ID,
		e.Kind,
		e.Target,
		e.Title,
		strconv.Itoa(e.Points),
		e.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

// List returns the entries created on the given day (UTC), in file
// order.
func (j *CSV) List(day time.Time) ([]Entry, error) {
	file, err := os.Open(j.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var out []Entry
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		if len(rec) != len(csvHeader) {
			return nil, fmt.Errorf("row %d: got %d fields, want %d", i, len(rec), len(csvHeader))
		}

		createdAt, err := time.Parse(time.RFC3339, rec[5])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if createdAt.Before(start) || !createdAt.Before(end) {
			continue
		}

		points, err := strconv.Atoi(rec[4])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		out = append(out, Entry{
			ID:        rec[0],
			Kind:      rec[1],
			Target:    rec[2],
			Title:     rec[3],
			Points:    points,
			CreatedAt: createdAt,
		})
	}
	return out, nil
}

// Close flushes and closes the file.
func (j *CSV) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		j.file.Close()
		return err
	}
	return j.file.Close()
}
