package formatter

import (
	"fmt"
	"strings"
	"time"
)

// Money formats a currency amount without trailing cents when whole.
func Money(amount float64) string {
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("$%d", int64(amount))
	}
	return fmt.Sprintf("$%.2f", amount)
}

// Points formats a point value, dropping the decimal when whole.
func Points(points float64) string {
	s := fmt.Sprintf("%.1f", points)
	return strings.TrimSuffix(s, ".0") + " pts"
}

// Hours formats an hour figure.
func Hours(hours float64) string {
	s := fmt.Sprintf("%.1f", hours)
	return strings.TrimSuffix(s, ".0") + "h"
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	now := time.Now()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	return t.Format("Jan 2, 2006")
}
