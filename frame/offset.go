package frame

import "time"

// Offset is a calendar-aware delta: months and years shift by calendar
// units (normalizing overflow the way time.AddDate does), days and weeks
// by whole days.
type Offset struct {
	Years  int
	Months int
	Weeks  int
	Days   int
}

// Add applies the offset to t, months/years first, then days.
func (o Offset) Add(t time.Time) time.Time {
	return t.AddDate(o.Years, o.Months, o.Weeks*7+o.Days)
}

// Neg returns the offset with every component negated.
func (o Offset) Neg() Offset {
	return Offset{Years: -o.Years, Months: -o.Months, Weeks: -o.Weeks, Days: -o.Days}
}

// IsZero reports whether every component is zero.
func (o Offset) IsZero() bool {
	return o == Offset{}
}

// Days returns an offset of n days.
func Days(n int) Offset { return Offset{Days: n} }

// Weeks returns an offset of n weeks.
func Weeks(n int) Offset { return Offset{Weeks: n} }

// Months returns an offset of n months.
func Months(n int) Offset { return Offset{Months: n} }

// Years returns an offset of n years.
func Years(n int) Offset { return Offset{Years: n} }
