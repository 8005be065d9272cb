package chart

import (
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/noodahq/nooda/frame"
)

// SeriesStyle controls how one series is drawn.
type SeriesStyle struct {
	Color       drawing.Color
	Alpha       float64   // 0..1, scales the color's alpha
	StrokeDash  []float64 // nil for a solid line
	StrokeWidth float64
	DotWidth    float64 // 0 hides the markers
}

// DefaultSeriesStyle is a solid black line with no markers.
func DefaultSeriesStyle() SeriesStyle {
	return SeriesStyle{
		Color:       drawing.ColorBlack,
		Alpha:       1.0,
		StrokeWidth: 1.5,
	}
}

func (s SeriesStyle) color() drawing.Color {
	c := s.Color
	if c.IsZero() {
		c = drawing.ColorBlack
	}
	if s.Alpha > 0 && s.Alpha < 1 {
		c = c.WithAlpha(uint8(s.Alpha * 255))
	}
	return c
}

func (s SeriesStyle) strokeWidth() float64 {
	if s.StrokeWidth == 0 {
		return 1.5
	}
	return s.StrokeWidth
}

// AnnotationStyle controls the value labels drawn next to a series'
// points.
type AnnotationStyle struct {
	FontSize float64
}

// DefaultAnnotationStyle matches the small labels used in reports.
func DefaultAnnotationStyle() AnnotationStyle {
	return AnnotationStyle{FontSize: 8}
}

// Series is one line on a plot: which columns feed it, how the bucket is
// reduced to a point, and how it is drawn. A non-zero Offset shifts the
// series' dates before bucketing, which overlays a prior period on the
// current window (year-over-year and the like).
type Series struct {
	Columns  []string
	Label    string
	Agg      Agg
	Offset   frame.Offset
	Style    SeriesStyle
	Annotate *AnnotationStyle
}

// NewSeries builds a series over a single column.
func NewSeries(column, label string, agg Agg) Series {
	return Series{
		Columns: []string{column},
		Label:   label,
		Agg:     agg,
		Style:   DefaultSeriesStyle(),
	}
}

// strokeDashes are cycled through when series are derived automatically
// from a frame's columns.
var strokeDashes = [][]float64{
	nil,
	{5, 5},
	{5, 2, 2, 2},
	{2, 2},
}
