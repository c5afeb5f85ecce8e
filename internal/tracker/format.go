// ABOUTME: Human-readable date formatting for meetings and messages
// ABOUTME: Renders Today/Tomorrow shortcuts relative to the current day

package tracker

import "time"

// FormatWhen renders a meeting date relative to now
func FormatWhen(t, now time.Time) string {
	t = t.In(now.Location())
	clock := t.Format("15:04")

	switch {
	case sameDay(t, now):
		return "Today at " + clock
	case sameDay(t, now.AddDate(0, 0, 1)):
		return "Tomorrow at " + clock
	default:
		return t.Format("Jan 2, 2006") + " at " + clock
	}
}

// FormatCreated renders a message timestamp
func FormatCreated(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006, 3:04 PM")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
