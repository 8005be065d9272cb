package publish

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Source holds notebook cell text, which nbformat stores either as a
// single string or a list of lines.
type Source string

// UnmarshalJSON accepts both encodings.
func (s *Source) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = Source(single)
		return nil
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("source is neither string nor list: %w", err)
	}
	*s = Source(strings.Join(lines, ""))
	return nil
}

// Output is one output of a code cell. Data maps mime types to payloads
// (strings or lists of lines, kept raw until rendering).
type Output struct {
	OutputType string                     `json:"output_type"`
	Data       map[string]json.RawMessage `json:"data"`
	Text       Source                     `json:"text"`
}

// DataString returns the payload for a mime type joined into one string.
func (o Output) DataString(mime string) (string, bool) {
	raw, ok := o.Data[mime]
	if !ok {
		return "", false
	}
	var s Source
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return string(s), true
}

// HasData reports whether the output carries the mime type.
func (o Output) HasData(mime string) bool {
	_, ok := o.Data[mime]
	return ok
}

// CellMetadata is the slice of cell metadata we care about.
type CellMetadata struct {
	Tags []string `json:"tags"`
}

// Cell is one notebook cell.
type Cell struct {
	CellType string       `json:"cell_type"`
	Source   Source       `json:"source"`
	Metadata CellMetadata `json:"metadata"`
	Outputs  []Output     `json:"outputs"`
}

// HasTag reports whether the cell is tagged with name.
func (c Cell) HasTag(name string) bool {
	for _, t := range c.Metadata.Tags {
		if t == name {
			return true
		}
	}
	return false
}

// Notebook is a Jupyter notebook (nbformat 4).
type Notebook struct {
	Cells         []Cell `json:"cells"`
	NBFormat      int    `json:"nbformat"`
	NBFormatMinor int    `json:"nbformat_minor"`
}

// Read parses a notebook from JSON.
func Read(r io.Reader) (*Notebook, error) {
	var nb Notebook
	if err := json.NewDecoder(r).Decode(&nb); err != nil {
		return nil, fmt.Errorf("parse notebook: %w", err)
	}
	if nb.NBFormat != 0 && nb.NBFormat != 4 {
		return nil, fmt.Errorf("unsupported nbformat %d (want 4)", nb.NBFormat)
	}
	return &nb, nil
}
