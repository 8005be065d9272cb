package frame

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testFrame(t *testing.T) *Frame {
	t.Helper()

	f := New("value", "target")
	require.NoError(t, f.Append(day(2021, 7, 1), 10, 100))
	require.NoError(t, f.Append(day(2021, 7, 2), 20, 100))
	require.NoError(t, f.Append(day(2021, 7, 3), 30, 100))
	return f
}

func TestAppend(t *testing.T) {
	f := testFrame(t)

	assert.Equal(t, 3, f.Len())
	assert.Equal(t, []string{"value", "target"}, f.Columns())

	err := f.Append(day(2021, 7, 4), 40)
	assert.Error(t, err)
}

func TestColumn(t *testing.T) {
	f := testFrame(t)

	values, err := f.Column("value")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, values)

	_, err = f.Column("missing")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestOrderPreserved(t *testing.T) {
	// Out-of-order rows stay where they were appended.
	f := New("value")
	require.NoError(t, f.Append(day(2021, 7, 3), 30))
	require.NoError(t, f.Append(day(2021, 7, 1), 10))

	times := f.Times()
	assert.Equal(t, day(2021, 7, 3), times[0])
	assert.Equal(t, day(2021, 7, 1), times[1])

	min, err := f.MinTime()
	require.NoError(t, err)
	assert.Equal(t, day(2021, 7, 1), min)

	max, err := f.MaxTime()
	require.NoError(t, err)
	assert.Equal(t, day(2021, 7, 3), max)
}

func TestWindowHalfOpen(t *testing.T) {
	f := testFrame(t)

	w := f.Window(day(2021, 7, 1), day(2021, 7, 3))
	assert.Equal(t, 2, w.Len())

	values, err := w.Column("value")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20}, values)
}

func TestShift(t *testing.T) {
	f := testFrame(t)

	shifted := f.Shift(Months(12))
	assert.Equal(t, day(2022, 7, 1), shifted.Times()[0])

	// original untouched
	assert.Equal(t, day(2021, 7, 1), f.Times()[0])
}

func TestGroupBy(t *testing.T) {
	f := New("value")
	require.NoError(t, f.Append(day(2021, 7, 5), 1))
	require.NoError(t, f.Append(day(2021, 7, 1), 2))
	require.NoError(t, f.Append(day(2021, 7, 6), 3))

	clampWeek := func(t time.Time) time.Time {
		// both the 5th and 6th fall in the week starting Monday the 5th
		if t.Day() >= 5 {
			return day(2021, 7, 5)
		}
		return day(2021, 6, 28)
	}

	groups := f.GroupBy(clampWeek)
	require.Len(t, groups, 2)

	assert.Equal(t, day(2021, 6, 28), groups[0].Time)
	assert.Equal(t, 1, groups[0].Rows.Len())
	assert.Equal(t, day(2021, 7, 5), groups[1].Time)
	assert.Equal(t, 2, groups[1].Rows.Len())
}

func TestMaxTimeWhere(t *testing.T) {
	f := New("value", "target")
	require.NoError(t, f.Append(day(2021, 7, 1), 10, 100))
	require.NoError(t, f.Append(day(2021, 7, 2), 20, 100))
	require.NoError(t, f.Append(day(2021, 7, 3), math.NaN(), 100))

	// target still has data on the 3rd, value stops on the 2nd
	max, err := f.MaxTimeWhere([]string{"value"})
	require.NoError(t, err)
	assert.Equal(t, day(2021, 7, 2), max)

	max, err = f.MaxTimeWhere([]string{"value", "target"})
	require.NoError(t, err)
	assert.Equal(t, day(2021, 7, 3), max)
}

func TestSelect(t *testing.T) {
	f := testFrame(t)

	sel, err := f.Select("target")
	require.NoError(t, err)
	assert.Equal(t, []string{"target"}, sel.Columns())
	assert.Equal(t, 3, sel.Len())

	_, err = f.Select("nope")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, New("value").Validate(), ErrEmpty)
	assert.ErrorIs(t, New().Validate(), ErrNoNumericColumns)
	assert.NoError(t, testFrame(t).Validate())
}
