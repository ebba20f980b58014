package cache

import "errors"

// ErrInvalidCapacity is returned by constructors given a non-positive capacity.
var ErrInvalidCapacity = errors.New("cache: capacity must be positive")
