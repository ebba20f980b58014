package prometheus

import "errors"

// ErrRegister is returned when a metric cannot be registered, typically
// because an observer with the same namespace already exists.
var ErrRegister = errors.New("failed to register security metrics")
