// Package cards derives the six dashboard card documents from the normalized
// solve record table. Builders are pure: they never mutate their input and
// produce identical output for identical input.
package cards

import (
	"fmt"
	"math"
	"time"
)

// SecondsToDHMS converts total seconds to a human-friendly duration like
// "1 day 2 hours 5 minutes". Days and hours are omitted when zero, minutes
// are always shown, units are singular for exactly one. Leftover seconds are
// dropped.
func SecondsToDHMS(seconds int64) string {
	days := seconds / 86400
	seconds %= 86400
	hours := seconds / 3600
	seconds %= 3600
	minutes := seconds / 60

	var out string
	if days > 0 {
		out += plural(days, "day") + " "
	}
	if hours > 0 {
		out += plural(hours, "hour") + " "
	}
	return out + plural(minutes, "minute")
}

// FormatMinutes converts fractional minutes to "Mm Ss" with the seconds
// zero-padded to two digits. The value is truncated to whole seconds, not
// rounded.
func FormatMinutes(minutes float64) string {
	total := int64(minutes * 60)
	return fmt.Sprintf("%dm %02ds", total/60, total%60)
}

// FormatDeviationMinutes renders a deviation in minutes as a signed
// "Mm Ss" label, e.g. "+1m 05s".
func FormatDeviationMinutes(deviation float64) string {
	sign := "+"
	if deviation < 0 {
		sign = "-"
	}
	total := int64(math.Abs(deviation) * 60)
	return fmt.Sprintf("%s%dm %02ds", sign, total/60, total%60)
}

// FormatSignedPercent renders a percentage with an explicit sign and one
// decimal place, e.g. "+12.3%".
func FormatSignedPercent(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct)
}

// formatDate renders a date for outlier rows, e.g. "Mar 04, 2025".
func formatDate(t time.Time) string {
	return t.Format("Jan 02, 2006")
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
