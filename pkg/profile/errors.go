package profile

import "errors"

// ErrInvalidProfile indicates a profile that fails validation.
var ErrInvalidProfile = errors.New("invalid profile")
