package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/noodahq/nooda/frame"
)

// timeToFloat64 matches how go-chart positions time x-values.
func timeToFloat64(t time.Time) float64 {
	return float64(t.UnixNano())
}

type panelData struct {
	plot   *Plot
	data   *frame.Frame
	bounds Bounds
}

// render draws each plot as a go-chart panel and composes the panels
// horizontally into one image. Panels share a y range so values line up
// across timeframes.
func (c *Chart) render(f *frame.Frame, plots []*Plot) (*Figure, error) {
	panels := make([]panelData, 0, len(plots))
	for _, p := range plots {
		data, err := p.Data(f)
		if err != nil {
			return nil, err
		}
		bounds, err := p.WindowBounds(f)
		if err != nil {
			return nil, err
		}
		panels = append(panels, panelData{plot: p, data: data, bounds: bounds})
	}

	yMin, yMax := c.yRange(panels)

	images := make([]image.Image, 0, len(panels))
	info := make([]Panel, 0, len(panels))
	for i, pd := range panels {
		img, points, err := c.renderPanel(pd, yMin, yMax, i == 0)
		if err != nil {
			return nil, fmt.Errorf("render %s panel: %w", pd.plot.kind, err)
		}
		images = append(images, img)
		info = append(info, Panel{Kind: pd.plot.kind, Points: points})
	}

	return &Figure{img: composeRow(images), panels: info}, nil
}

// yRange finds the shared y span across every panel, padded slightly so
// lines don't touch the frame. Explicit limits win.
func (c *Chart) yRange(panels []panelData) (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, pd := range panels {
		for i := 0; i < pd.data.Len(); i++ {
			_, values := pd.data.Row(i)
			for _, v := range values {
				if math.IsNaN(v) {
					continue
				}
				min = math.Min(min, v)
				max = math.Max(max, v)
			}
		}
	}
	if math.IsInf(min, 1) {
		min, max = 0, 1
	}
	if min == max {
		min, max = min-1, max+1
	}
	pad := (max - min) * 0.05
	min, max = min-pad, max+pad

	if c.YMin != nil {
		min = *c.YMin
	}
	if c.YMax != nil {
		max = *c.YMax
	}
	return min, max
}

func (c *Chart) renderPanel(pd panelData, yMin, yMax float64, first bool) (image.Image, map[string]int, error) {
	format := c.format()
	points := make(map[string]int)

	var series []gochart.Series
	var ticks []gochart.Tick
	for _, t := range pd.data.Times() {
		ticks = append(ticks, gochart.Tick{
			Value: timeToFloat64(t),
			Label: pd.plot.xLabel(t),
		})
	}

	for _, s := range pd.plot.Series {
		values, err := pd.data.Column(s.Label)
		if err != nil {
			return nil, nil, err
		}

		var xs []time.Time
		var ys []float64
		for i, t := range pd.data.Times() {
			if math.IsNaN(values[i]) {
				continue
			}
			xs = append(xs, t)
			ys = append(ys, values[i])
		}
		points[s.Label] = len(xs)
		if len(xs) == 0 {
			continue
		}

		series = append(series, gochart.TimeSeries{
			Name:    s.Label,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor:     s.Style.color(),
				StrokeWidth:     s.Style.strokeWidth(),
				StrokeDashArray: s.Style.StrokeDash,
				DotColor:        s.Style.color(),
				DotWidth:        s.Style.DotWidth,
			},
		})

		if s.Annotate != nil {
			var notes []gochart.Value2
			for i, t := range xs {
				notes = append(notes, gochart.Value2{
					XValue: timeToFloat64(t),
					YValue: ys[i],
					Label:  format(ys[i]),
				})
			}
			series = append(series, gochart.AnnotationSeries{
				Annotations: notes,
				Style: gochart.Style{
					FontSize:    s.Annotate.FontSize,
					StrokeColor: s.Style.color(),
				},
			})
		}
	}

	yAxis := gochart.YAxis{
		Range: &gochart.ContinuousRange{Min: yMin, Max: yMax},
		ValueFormatter: func(v interface{}) string {
			if fv, ok := v.(float64); ok {
				return format(fv)
			}
			return ""
		},
	}
	// Only the leftmost panel shows the shared axis.
	if !first {
		yAxis.Style = gochart.Hidden()
	}

	width := pd.plot.Increments() * c.widthIncrement()
	if width < 200 {
		width = 200
	}

	ch := gochart.Chart{
		Width:  width,
		Height: c.height(),
		Background: gochart.Style{
			Padding: gochart.Box{Top: 30, Left: 10, Right: 10, Bottom: 40},
		},
		XAxis: gochart.XAxis{
			Ticks: ticks,
			Range: &gochart.ContinuousRange{
				Min: timeToFloat64(pd.bounds.Earliest),
				Max: timeToFloat64(pd.bounds.Latest),
			},
		},
		YAxis:  yAxis,
		Series: series,
	}
	if first && c.Title != "" {
		ch.Title = c.Title
	}
	ch.Elements = []gochart.Renderable{gochart.LegendThin(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return nil, nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, nil, err
	}
	return img, points, nil
}

// composeRow lays the panel images out left to right on a white canvas.
func composeRow(images []image.Image) image.Image {
	width, height := 0, 0
	for _, img := range images {
		b := img.Bounds()
		width += b.Dx()
		if b.Dy() > height {
			height = b.Dy()
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)

	x := 0
	for _, img := range images {
		b := img.Bounds()
		draw.Draw(out, image.Rect(x, 0, x+b.Dx(), b.Dy()), img, b.Min, draw.Src)
		x += b.Dx()
	}
	return out
}
