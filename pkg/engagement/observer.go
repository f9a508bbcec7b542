package engagement

// Observer receives session lifecycle events. Calls are made outside the
// tracker lock, so implementations may read Status.
type Observer interface {
	SessionStarted(sessionID string)
	Heartbeat(sessionID string, engagedSeconds int)
	SessionEnded(sessionID string, reason EndReason, status Status)
	BridgeFailed(call string, err error)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) SessionStarted(string)                  {}
func (NopObserver) Heartbeat(string, int)                  {}
func (NopObserver) SessionEnded(string, EndReason, Status) {}
func (NopObserver) BridgeFailed(string, error)             {}

// Observers fans events out to several observers in order.
type Observers []Observer

func (o Observers) SessionStarted(id string) {
	for _, obs := range o {
		obs.SessionStarted(id)
	}
}

func (o Observers) Heartbeat(id string, engagedSeconds int) {
	for _, obs := range o {
		obs.Heartbeat(id, engagedSeconds)
	}
}

func (o Observers) SessionEnded(id string, reason EndReason, status Status) {
	for _, obs := range o {
		obs.SessionEnded(id, reason, status)
	}
}

func (o Observers) BridgeFailed(call string, err error) {
	for _, obs := range o {
		obs.BridgeFailed(call, err)
	}
}
