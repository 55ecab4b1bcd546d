package shared

import "time"

// DayLayout is the calendar-day format used for completion dates.
const DayLayout = "2006-01-02"

// Clock abstracts "now" so day arithmetic can be tested.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock in local time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always returns T.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// Day formats t as a calendar day in its own location.
func Day(t time.Time) string {
	return t.Format(DayLayout)
}

// DaysAgo returns the calendar day n days before t.
func DaysAgo(t time.Time, n int) string {
	return Day(t.AddDate(0, 0, -n))
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
