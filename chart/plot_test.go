package chart

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noodahq/nooda/frame"
)

// reliability covers 2021-07-01 through 2023-07-09 with one row per day.
func reliability(t *testing.T) *frame.Frame {
	t.Helper()

	f := frame.New("num_valid", "total_num", "target")
	for d := day(2021, 7, 1); !d.After(day(2023, 7, 9)); d = d.AddDate(0, 0, 1) {
		valid := 9990.0
		if d.Weekday() == time.Saturday {
			valid = 9900
		}
		require.NoError(t, f.Append(d, valid, 10000, 0.9995))
	}
	return f
}

func TestDailyClamp(t *testing.T) {
	p := Daily(7, NewSeries("num_valid", "Valid", Sum))

	at := time.Date(2023, 7, 9, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, day(2023, 7, 9), p.clamp(at))
}

func TestDailyBounds(t *testing.T) {
	p := Daily(13, NewSeries("num_valid", "Valid", Sum))

	bounds, err := p.WindowBounds(reliability(t))
	require.NoError(t, err)

	// the final day of data is included
	assert.Equal(t, day(2023, 6, 27), bounds.Earliest)
	assert.Equal(t, day(2023, 7, 10), bounds.Latest)
}

func TestWeeklyClamp(t *testing.T) {
	p := Weekly(3, NewSeries("num_valid", "Valid", Sum))

	// 2023-07-09 is a Sunday; its week starts Monday the 3rd
	assert.Equal(t, day(2023, 7, 3), p.clamp(day(2023, 7, 9)))
}

func TestWeeklyBounds(t *testing.T) {
	p := Weekly(3, NewSeries("num_valid", "Valid", Sum))

	bounds, err := p.WindowBounds(reliability(t))
	require.NoError(t, err)

	assert.Equal(t, day(2023, 6, 19), bounds.Earliest)
	assert.Equal(t, day(2023, 7, 10), bounds.Latest)
}

func TestMonthlyClamp(t *testing.T) {
	p := Monthly(12, NewSeries("num_valid", "Valid", Sum))
	assert.Equal(t, day(2023, 7, 1), p.clamp(day(2023, 7, 9)))
}

func TestMonthlyBounds(t *testing.T) {
	p := Monthly(13, NewSeries("num_valid", "Valid", Sum))

	bounds, err := p.WindowBounds(reliability(t))
	require.NoError(t, err)

	assert.Equal(t, day(2022, 7, 1), bounds.Earliest)
	assert.Equal(t, day(2023, 8, 1), bounds.Latest)
}

func TestPlotNeedsOneAnchoredSeries(t *testing.T) {
	offset := NewSeries("num_valid", "Valid (YoY)", Sum)
	offset.Offset = frame.Years(1)

	p := Daily(7, offset)
	_, err := p.Data(reliability(t))
	assert.ErrorIs(t, err, ErrAllSeriesOffset)
}

func TestDataBucketsAscending(t *testing.T) {
	p := Weekly(3, NewSeries("num_valid", "Valid", Sum))

	data, err := p.Data(reliability(t))
	require.NoError(t, err)

	times := data.Times()
	require.Len(t, times, 3)
	assert.Equal(t, day(2023, 6, 19), times[0])
	assert.Equal(t, day(2023, 6, 26), times[1])
	assert.Equal(t, day(2023, 7, 3), times[2])
}

func TestDataOffsetSeriesAligns(t *testing.T) {
	ratio := Ratio("num_valid", "total_num")

	current := Series{
		Columns: []string{"num_valid", "total_num"},
		Label:   "Success %",
		Agg:     ratio,
		Style:   DefaultSeriesStyle(),
	}
	yoy := current
	yoy.Label = "Success % (YoY)"
	yoy.Offset = frame.Years(1)

	p := Monthly(12, current, yoy)

	data, err := p.Data(reliability(t))
	require.NoError(t, err)

	// the shifted series covers the same final bucket as the live one
	cur, err := data.Column("Success %")
	require.NoError(t, err)
	prior, err := data.Column("Success % (YoY)")
	require.NoError(t, err)

	last := data.Len() - 1
	assert.False(t, math.IsNaN(cur[last]))
	assert.False(t, math.IsNaN(prior[last]))
}

func TestDataRangeColumns(t *testing.T) {
	// target keeps running past num_valid; RangeColumns pins the window
	// end to num_valid.
	f := frame.New("num_valid", "target")
	for d := day(2023, 7, 1); !d.After(day(2023, 7, 9)); d = d.AddDate(0, 0, 1) {
		valid := 100.0
		if d.After(day(2023, 7, 5)) {
			valid = math.NaN()
		}
		require.NoError(t, f.Append(d, valid, 1))
	}

	p := Daily(3,
		NewSeries("num_valid", "Valid", Sum),
		NewSeries("target", "Target", Max),
	)
	p.RangeColumns = []string{"num_valid"}

	bounds, err := p.WindowBounds(f)
	require.NoError(t, err)
	assert.Equal(t, day(2023, 7, 6), bounds.Latest)
}
