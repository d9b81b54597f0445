package format

import (
	"fmt"
	"time"
)

// FmtScore renders a 0-100 quality score as "N/100".
func FmtScore(n int) string {
	return fmt.Sprintf("%d/100", n)
}

// FmtPercent renders an integer percentage.
func FmtPercent(n int) string {
	return fmt.Sprintf("%d%%", n)
}

// FmtMillis formats a millisecond timeout as "Xs" or "Xms".
func FmtMillis(ms int) string {
	if ms >= 1000 && ms%1000 == 0 {
		return fmt.Sprintf("%ds", ms/1000)
	}
	return fmt.Sprintf("%dms", ms)
}

// FmtDuration formats a duration as "Xm Ys" or "Ys".
func FmtDuration(d time.Duration) string {
	s := int(d.Seconds())
	if s >= 60 {
		return fmt.Sprintf("%dm %ds", s/60, s%60)
	}
	return fmt.Sprintf("%ds", s)
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// BoolMark returns "✓" for true and "✗" for false.
func BoolMark(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}
