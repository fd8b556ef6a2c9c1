package leaderboard

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FormatRecordedAt renders when a run happened relative to now: "Just now"
// under a minute, a relative time under a week, and the calendar date
// after that.
func FormatRecordedAt(e Entry, now time.Time) string {
	at := e.RecordedAt()
	age := now.Sub(at)
	switch {
	case age < time.Minute:
		return "Just now"
	case age < 7*24*time.Hour:
		return humanize.RelTime(at, now, "ago", "from now")
	default:
		return at.In(now.Location()).Format(time.DateOnly)
	}
}
