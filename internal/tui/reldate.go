package tui

import (
	"math"
	"time"
)

// Relative dates for the article list, mail-client style.
//
// The label shape depends on how far back the publish date is, measured in
// calendar days (midnight boundaries in now's location), not elapsed hours:
//   same day      -> clock time ("10:30 AM")
//   previous day  -> "Yesterday"
//   < 7 days back -> full weekday name ("Monday")
//   otherwise     -> "Jan 5"
// An article published 23:59 read at 00:01 is still "Yesterday" even though
// only two minutes of wall time passed.

// timeNow is swapped out in tests.
var timeNow = time.Now

// FormatRelativeDate returns the list label for target as seen from now.
// Pure function; both instants are interpreted in now's location so a single
// timezone source governs the day boundaries.
func FormatRelativeDate(target, now time.Time) string {
	target = target.In(now.Location())

	days := calendarDaysBetween(target, now)
	switch {
	case days == 0:
		return target.Format("3:04 PM")
	case days == 1:
		return "Yesterday"
	case days > 1 && days < 7:
		return target.Weekday().String()
	default:
		// 7+ days back, and future dates beyond today: show the absolute
		// month-day form rather than a weekday that would read ambiguously.
		return target.Format("Jan 2")
	}
}

func relativeDateLabel(target time.Time) string {
	return FormatRelativeDate(target, timeNow())
}

// calendarDaysBetween counts the midnight boundaries between target and now
// (positive when target is earlier). Rounding absorbs the odd-length days
// that DST transitions produce inside the span.
func calendarDaysBetween(target, now time.Time) int {
	loc := now.Location()
	ty, tm, td := target.Date()
	ny, nm, nd := now.Date()
	t0 := time.Date(ty, tm, td, 0, 0, 0, 0, loc)
	n0 := time.Date(ny, nm, nd, 0, 0, 0, 0, loc)
	return int(math.Round(n0.Sub(t0).Hours() / 24))
}
