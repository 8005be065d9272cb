package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMonthByDay(t *testing.T) {
	f := New("spend", "target")
	require.NoError(t, f.Append(day(2023, 2, 1), 280, 9))
	require.NoError(t, f.Append(day(2023, 3, 1), 310, 9))

	split, err := SplitMonthByDay(f, "spend")
	require.NoError(t, err)

	// 28 days of February plus 31 of March
	assert.Equal(t, 59, split.Len())

	spend, err := split.Column("spend")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, spend[0], 1e-9)  // 280 / 28
	assert.InDelta(t, 10.0, spend[28], 1e-9) // 310 / 31

	// other columns repeat unchanged
	target, err := split.Column("target")
	require.NoError(t, err)
	assert.Equal(t, 9.0, target[0])
	assert.Equal(t, 9.0, target[58])

	// index runs day by day
	assert.Equal(t, day(2023, 2, 1), split.Times()[0])
	assert.Equal(t, day(2023, 2, 28), split.Times()[27])
	assert.Equal(t, day(2023, 3, 1), split.Times()[28])
}

func TestSplitMonthByDayUnknownColumn(t *testing.T) {
	f := New("spend")
	_, err := SplitMonthByDay(f, "missing")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}
