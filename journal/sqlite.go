package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a Journal backed by a SQLite file.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) a SQLite journal at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// Record inserts one entry.
func (j *SQLite) Record(e Entry) error {
	_, err := j.db.Exec(`
		INSERT INTO entries (id, kind, target, title, points, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Kind, e.Target, e.Title, e.Points, e.CreatedAt.UTC(),
	)
	return err
}

// List returns the entries created on the given day (UTC), oldest
// first.
func (j *SQLite) List(day time.Time) ([]Entry, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	rows, err := j.db.Query(`
		SELECT id, kind, target, title, points, created_at
		FROM entries
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Target, &e.Title, &e.Points, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close closes the database.
func (j *SQLite) Close() error {
	return j.db.Close()
}
