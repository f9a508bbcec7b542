package activity

import "errors"

// ErrInvalidConfig indicates an out-of-range detector setting.
var ErrInvalidConfig = errors.New("invalid activity detector config")
