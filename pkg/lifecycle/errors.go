package lifecycle

import "errors"

// ErrUnknownAppState indicates an app state name outside active, inactive and background.
var ErrUnknownAppState = errors.New("unknown app state")
