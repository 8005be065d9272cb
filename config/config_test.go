package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nooda.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
slack:
  channel: "#growth"
  back_url: https://notebooks.example/abc
chart:
  height: 400
  width_increment: 60
journal:
  type: csv
  path: ./journal.csv
`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "#growth", cfg.Slack.Channel)
	assert.Equal(t, "https://notebooks.example/abc", cfg.Slack.BackURL)
	assert.Equal(t, 400, cfg.Chart.Height)
	assert.Equal(t, "csv", cfg.Journal.Type)
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nooda.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"slack": {"channel": "#growth"},
		"chart": {"height": 500, "width_increment": 70},
		"journal": {"type": "sqlite", "path": "./nooda.sqlite"}
	}`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#growth", cfg.Slack.Channel)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nooda.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
slack:
  channel: "#growth"
`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Chart.Height)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
}

func TestValidateRejectsBadJournalType(t *testing.T) {
	cfg := Default()
	cfg.Journal.Type = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "journal.type")
}

func TestValidateRejectsBadGeometry(t *testing.T) {
	cfg := Default()
	cfg.Chart.Height = 0
	assert.ErrorContains(t, cfg.Validate(), "chart.height")
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"nooda.yaml", "nooda.json"} {
		path := filepath.Join(dir, name)

		cfg := Default()
		cfg.Slack.Channel = "#ops"
		require.NoError(t, cfg.SaveToFile(path))

		got, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, cfg, got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
