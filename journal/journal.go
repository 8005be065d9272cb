package journal

import "time"

// Kind says what produced an entry.
const (
	KindSlack   = "slack"
	KindPublish = "publish"
)

// Entry records one send or publish: what went out, where, and when.
type Entry struct {
	ID        string    // ulid, time-sortable
	Kind      string    // KindSlack or KindPublish
	Target    string    // channel or output path
	Title     string    // chart/report title, may be empty
	Points    int       // plotted points for charts, 0 otherwise
	CreatedAt time.Time // UTC
}

// Journal persists entries.
type Journal interface {
	Record(Entry) error
	List(day time.Time) ([]Entry, error)
	Close() error
}
