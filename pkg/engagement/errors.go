package engagement

import "errors"

// ErrInvalidConfig is returned synchronously by Configure and Start when a
// configuration value is out of range. The current configuration is left
// untouched.
var ErrInvalidConfig = errors.New("invalid engagement config")
