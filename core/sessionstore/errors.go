package sessionstore

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCache is returned when CacheStore is created without a backing cache.
	ErrMissingCache = errors.New("sessionstore: cache is required")

	// ErrMissingCodec is returned when a store is created without a codec.
	ErrMissingCodec = errors.New("sessionstore: codec is required")

	// ErrTransportLimitExceeded is returned when an encoded value does not fit the transport.
	ErrTransportLimitExceeded = errors.New("sessionstore: value exceeds transport size limit")

	// ErrSessionUnavailable wraps backing cache failures surfaced by Set, Renew and Destroy.
	ErrSessionUnavailable = errors.New("sessionstore: backing cache unavailable")
)

// LimitError describes a value too large for its transport.
type LimitError struct {
	Key  string
	Size int
	Max  int
}

// Error implements the error interface.
func (e LimitError) Error() string {
	return fmt.Sprintf("sessionstore: value for %q is %d bytes, limit is %d", e.Key, e.Size, e.Max)
}

// Unwrap returns ErrTransportLimitExceeded.
func (e LimitError) Unwrap() error {
	return ErrTransportLimitExceeded
}
