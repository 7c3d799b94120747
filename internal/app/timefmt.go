package app

import (
	"fmt"
	"time"
)

// RelativeTime renders how long before now t was, e.g. "3d ago".
func RelativeTime(t, now time.Time) string {
	if t.After(now) {
		return "just now"
	}

	delta := now.Sub(t)
	if delta < time.Minute {
		return "just now"
	}
	if delta < time.Hour {
		return fmt.Sprintf("%dm ago", int(delta.Minutes()))
	}
	if delta < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(delta.Hours()))
	}

	days := int(delta.Hours() / 24)
	if days < 30 {
		return fmt.Sprintf("%dd ago", days)
	}

	months := days / 30
	if months < 12 {
		return fmt.Sprintf("%dmo ago", months)
	}

	years := months / 12
	return fmt.Sprintf("%dy ago", years)
}
