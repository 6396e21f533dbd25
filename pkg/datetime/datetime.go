// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/iwvelando/debt-payoff/pkg/constants"
)

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = constants.DateLayout

// MustParseTime parses a date string using the given layout and panics on
// error. This is intended for use in tests where the date string is known to
// be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a date string in the standard layout.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, dateStr)
}

// FormatDate renders a time in the standard layout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// OffsetMonths returns the date offset by the given number of months.
func OffsetMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}
