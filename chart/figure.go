package chart

import (
	"bytes"
	"image"
	"image/png"
	"io"
)

// Panel describes one rendered plot: its kind and how many points each
// series ended up with.
type Panel struct {
	Kind   string
	Points map[string]int
}

// Figure is a rendered chart.
type Figure struct {
	img    image.Image
	panels []Panel
}

// Image returns the composed image.
func (f *Figure) Image() image.Image { return f.img }

// Panels returns the per-plot render summaries, left to right.
func (f *Figure) Panels() []Panel { return f.panels }

// Points returns how many points the labelled series has in the first
// panel that draws it.
func (f *Figure) Points(label string) int {
	for _, p := range f.panels {
		if n, ok := p.Points[label]; ok {
			return n
		}
	}
	return 0
}

// PNG writes the figure as a PNG.
func (f *Figure) PNG(w io.Writer) error {
	return png.Encode(w, f.img)
}

// Bytes returns the figure as PNG bytes.
func (f *Figure) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.PNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
