package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noodahq/nooda/id"
)

func TestCSVRecordAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")

	j, err := NewCSV(path)
	require.NoError(t, err)

	day := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	e := Entry{
		ID:        id.New(),
		Kind:      KindSlack,
		Target:    "#growth",
		Title:     "Signups",
		Points:    3,
		CreatedAt: day.Add(9 * time.Hour),
	}
	require.NoError(t, j.Record(e))
	require.NoError(t, j.Close())

	// reopen and read back
	j, err = NewCSV(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	entries, err := j.List(day)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, e.ID, entries[0].ID)
	assert.Equal(t, 3, entries[0].Points)
	assert.Equal(t, e.CreatedAt, entries[0].CreatedAt)

	entries, err = j.List(day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCSVHeaderWrittenOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.csv")

	j, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.Record(Entry{ID: "a", Kind: KindSlack, Target: "#x", CreatedAt: time.Now().UTC()}))
	require.NoError(t, j.Close())

	j, err = NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.Record(Entry{ID: "b", Kind: KindSlack, Target: "#x", CreatedAt: time.Now().UTC()}))
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "id,kind,target"))
	assert.Equal(t, 3, strings.Count(strings.TrimSpace(string(data)), "\n")+1) // header + 2 rows
}
