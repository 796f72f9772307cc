package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

var dutchMonths = [...]string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}

// FormatDateNL renders a date the way it appears in the booking emails and
// calendar entries, e.g. "14 juni 2026".
func FormatDateNL(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), dutchMonths[t.Month()-1], t.Year())
}

// ParseDate parses a YYYY-MM-DD value into a UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DateOnly strips the time-of-day component, keeping the date in UTC. All
// availability bookkeeping compares dates in this normalized form.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
