package chart

import (
	"fmt"

	"github.com/noodahq/nooda/frame"
)

// Chart renders one or more plots of a frame side by side, sharing a
// y-axis. With no explicit plots, a sensible set is derived from the
// frame's span: short ranges get a daily panel, longer ones add weekly
// and monthly panels.
type Chart struct {
	Title  string
	Format Formatter // y-axis and annotation values; Comma if nil
	Plots  []*Plot

	// YMin/YMax pin the shared y range; both nil means autoscale.
	YMin *float64
	YMax *float64

	// Panel geometry in pixels. Zero values take the defaults.
	Height         int // panel height, default 500
	WidthIncrement int // width per bucket, default 70
}

const (
	defaultHeight         = 500
	defaultWidthIncrement = 70
)

func (c *Chart) format() Formatter {
	if c.Format != nil {
		return c.Format
	}
	return Comma
}

func (c *Chart) height() int {
	if c.Height > 0 {
		return c.Height
	}
	return defaultHeight
}

func (c *Chart) widthIncrement() int {
	if c.WidthIncrement > 0 {
		return c.WidthIncrement
	}
	return defaultWidthIncrement
}

// plots returns the explicit plots, or derives them from the frame.
func (c *Chart) plots(f *frame.Frame) ([]*Plot, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if len(c.Plots) > 0 {
		for _, p := range c.Plots {
			if err := p.validate(); err != nil {
				return nil, err
			}
		}
		return c.Plots, nil
	}

	columns := f.Columns()
	if len(columns) > len(strokeDashes) {
		return nil, fmt.Errorf("too many columns (%d) to auto-style (max %d); set Plots explicitly",
			len(columns), len(strokeDashes))
	}

	series := make([]Series, len(columns))
	for i, col := range columns {
		s := NewSeries(col, col, Sum)
		s.Style.StrokeDash = strokeDashes[i]
		series[i] = s
	}

	span, err := f.Span()
	if err != nil {
		return nil, err
	}
	days := int(span.Hours() / 24)

	switch {
	case days < 14:
		return []*Plot{Daily(days+1, series...)}, nil
	case days < 31:
		return []*Plot{Daily(7, series...), Weekly(4, series...)}, nil
	case days < 365:
		return []*Plot{Daily(7, series...), Weekly(6, series...)}, nil
	default:
		return []*Plot{Daily(7, series...), Weekly(6, series...), Monthly(12, series...)}, nil
	}
}

// Data aggregates the frame per plot without rendering anything. One
// frame per panel, indexed by bucket time, one column per series label.
func (c *Chart) Data(f *frame.Frame) ([]*frame.Frame, error) {
	plots, err := c.plots(f)
	if err != nil {
		return nil, err
	}

	out := make([]*frame.Frame, 0, len(plots))
	for _, p := range plots {
		data, err := p.Data(f)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

// Plot renders the chart to a figure. The frame must be non-empty; an
// empty frame fails with frame.ErrEmpty rather than producing a blank
// image.
func (c *Chart) Plot(f *frame.Frame) (*Figure, error) {
	plots, err := c.plots(f)
	if err != nil {
		return nil, err
	}
	return c.render(f, plots)
}
