package formatter

import (
	"fmt"
	"math"
	"time"
)

// RelativeDateFrom describes t relative to now: "Today", "3d ago", "2w ago".
// Future times read "In 3d".
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// Duration renders whole days and hours: "30 day(s)", "5 hour(s)",
// "1 day(s) 6 hour(s)".
func Duration(d time.Duration) string {
	hours := int(d.Hours())
	days, rem := hours/24, hours%24
	switch {
	case days == 0:
		return fmt.Sprintf("%d hour(s)", rem)
	case rem == 0:
		return fmt.Sprintf("%d day(s)", days)
	default:
		return fmt.Sprintf("%d day(s) %d hour(s)", days, rem)
	}
}

// Plural returns "1 task" or "3 tasks".
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
