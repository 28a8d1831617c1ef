package utils

import "time"

// dateLayout is the unqualified ISO calendar-date form (YYYY-MM-DD).
const dateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date string (YYYY-MM-DD). Any other format
// fails rather than being coerced.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// FormatDate renders a calendar date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
