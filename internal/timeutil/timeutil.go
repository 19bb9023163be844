// Package timeutil formats loan timestamps in the business timezone.
// All borrow and return dates are recorded in WIB (UTC+7) regardless of
// server locale; this is a display convention, not an ordering guarantee.
package timeutil

import "time"

// Layout is the canonical timestamp format for loan records.
const Layout = "2006-01-02 15:04:05"

var wib = time.FixedZone("WIB", 7*60*60)

// Now returns the current time formatted in WIB.
func Now() string {
	return Format(time.Now())
}

// Format renders t in WIB using Layout.
func Format(t time.Time) string {
	return t.In(wib).Format(Layout)
}
