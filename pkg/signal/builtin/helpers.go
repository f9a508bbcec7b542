package builtin

import (
	"fmt"
	"time"

	"github.com/expo-parsely/engagement-tracker/pkg/signal"
)

func timestampOf(event signal.Event) time.Time {
	if event.Timestamp.IsZero() {
		return time.Now()
	}
	return event.Timestamp
}

func unavailable(target string) error {
	return fmt.Errorf("%w: %s", signal.ErrTargetUnavailable, target)
}
