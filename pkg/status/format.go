// Package status publishes tracker snapshots for the debug overlay.
package status

import (
	"fmt"
	"time"

	"github.com/expo-parsely/engagement-tracker/pkg/engagement"
)

// FormatLastActivity renders the age of the last activity for display.
// Activity that never moved past the session start reads "Never".
func FormatLastActivity(lastActivity, sessionStart, now time.Time) string {
	if lastActivity.IsZero() || lastActivity.Equal(sessionStart) {
		return "Never"
	}
	seconds := int(now.Sub(lastActivity) / time.Second)
	if seconds < 60 {
		return fmt.Sprintf("%ds ago", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}
	return fmt.Sprintf("%dh ago", minutes/60)
}

// View is the overlay representation of a tracker snapshot.
type View struct {
	engagement.Status
	LastActivity string `json:"lastActivity"`
	Engaged      bool   `json:"engaged"`
}

// NewView derives the display fields of s. timeout is the active timeout
// used to judge engagement.
func NewView(s engagement.Status, timeout time.Duration) View {
	return View{
		Status:       s,
		LastActivity: FormatLastActivity(s.LastActivityAt, s.SessionStart, s.ObservedAt),
		Engaged:      s.Engaged(timeout),
	}
}
