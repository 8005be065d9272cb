package chart

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/noodahq/nooda/frame"
)

// Formatter renders an axis or annotation value as text.
type Formatter func(v float64) string

// Comma formats with thousands separators and no decimals.
func Comma(v float64) string {
	neg := v < 0
	s := fmt.Sprintf("%.0f", math.Abs(v))

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if len(s) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

// Percent formats the value as a percentage with the given number of
// decimal places.
func Percent(decimals int) Formatter {
	return func(v float64) string {
		return fmt.Sprintf("%.*f%%", decimals, v*100)
	}
}

// FormatFloat wraps an fmt spec like "%.2f" as a Formatter.
func FormatFloat(spec string) Formatter {
	return func(v float64) string {
		return fmt.Sprintf(spec, v)
	}
}

func deltaDayHours(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(math.Round(d.Hours() - float64(days)*24))
	return fmt.Sprintf("%dd %dh", days, hours)
}

// HoursToDayHours renders an hour count as "3d 4h".
func HoursToDayHours(v float64) string {
	return deltaDayHours(time.Duration(v * float64(time.Hour)))
}

// SecondsToDayHours renders a second count as "3d 4h".
func SecondsToDayHours(v float64) string {
	return deltaDayHours(time.Duration(v * float64(time.Second)))
}

// HumanDelta spells out an offset, e.g. "1 year, 2 months".
func HumanDelta(off frame.Offset) string {
	parts := []struct {
		n    int
		unit string
	}{
		{off.Years, "year"},
		{off.Months, "month"},
		{off.Weeks, "week"},
		{off.Days, "day"},
	}

	var out []string
	for _, p := range parts {
		if p.n == 0 {
			continue
		}
		unit := p.unit
		if p.n > 1 || p.n < -1 {
			unit += "s"
		}
		out = append(out, fmt.Sprintf("%d %s", p.n, unit))
	}
	return strings.Join(out, ", ")
}
