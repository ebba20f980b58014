package sessionstore

import (
	"maps"

	"github.com/dmitrymomot/gatekeeper/core/handler"
	"github.com/dmitrymomot/gatekeeper/core/profile"
)

const (
	// UserProfilesKey stores the *profile.Map of authenticated profiles.
	UserProfilesKey = "userProfiles"
	// RequestedURLKey stores the URL to return to after an indirect login.
	RequestedURLKey = "requestedUrl"
)

// Record is the authentication state bag for one session.
type Record = map[string]any

// Store persists authentication state for the client that made a request.
type Store interface {
	// SessionID returns the session identifier, minting one when create is true.
	SessionID(ctx handler.Context, create bool) (string, bool, error)
	// Get returns the value stored under key.
	Get(ctx handler.Context, key string) (any, bool)
	// Set stores value under key. A nil value removes the key.
	Set(ctx handler.Context, key string, value any) error
	// Destroy removes the session and reports whether one existed.
	Destroy(ctx handler.Context) (bool, error)
	// Renew moves the session data to a fresh identifier and reports whether a session was renewed.
	Renew(ctx handler.Context) (bool, error)
}

// stripSensitive returns value with sensitive profile data removed.
// Values of other types are returned unchanged.
func stripSensitive(value any) any {
	switch v := value.(type) {
	case *profile.Map:
		return v.WithoutSensitive()
	case *profile.Profile:
		return v.WithoutSensitive()
	case profile.Profile:
		return *v.WithoutSensitive()
	default:
		return value
	}
}

func cloneRecord(r Record) Record {
	if r == nil {
		return Record{}
	}
	return maps.Clone(r)
}
