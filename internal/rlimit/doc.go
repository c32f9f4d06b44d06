// Package rlimit applies the process-wide memory ceiling. It is called once
// at start-up, before any stage is launched, and never again.
package rlimit

import "errors"

// ErrUnsupported is returned on platforms without resource limits.
var ErrUnsupported = errors.New("address-space limits are not supported on this platform")
