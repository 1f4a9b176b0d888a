package dates

import "time"

const (
	DateFormat   = "2006-01-02"
	ISOFormat    = "2006-01-02T15:04:05.000Z"
	dayStringLen = len(DateFormat)
)

// Normalize returns the UTC calendar day of t, or the day before when previousDay is set.
func Normalize(t time.Time, previousDay bool) string {
	day := t.UTC()
	if previousDay {
		day = day.AddDate(0, 0, -1)
	}
	return day.Format(DateFormat)
}

// NormalizeString keeps calendar days as they are and normalizes RFC 3339 instants.
// Anything else is returned untouched.
func NormalizeString(s string, previousDay bool) string {
	if len(s) == dayStringLen {
		return s
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return Normalize(t, previousDay)
}

func SameDay(a, b time.Time) bool {
	return Normalize(a, false) == Normalize(b, false)
}

func Yesterday(now time.Time) string {
	return Normalize(now, true)
}

func ToISOTimestamp(unixSeconds int64) string {
	return time.Unix(unixSeconds, 0).UTC().Format(ISOFormat)
}

func ParseDay(day string) (time.Time, error) {
	return time.Parse(DateFormat, day)
}

// DaysBetween lists every calendar day from `from` to `to`, both included.
func DaysBetween(from time.Time, to time.Time) []string {
	start, _ := ParseDay(Normalize(from, false))
	end, _ := ParseDay(Normalize(to, false))

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateFormat))
	}
	return days
}
