package security

import (
	"github.com/dmitrymomot/gatekeeper/core/handler"
	"github.com/dmitrymomot/gatekeeper/core/profile"
	"github.com/dmitrymomot/gatekeeper/core/sessionstore"
)

// ProfilesAttribute is the request attribute holding the *profile.Map of the
// current request.
const ProfilesAttribute = "security.profiles"

// ProfileManager reads and writes the profiles of one request. The request
// attribute is authoritative for the current request; the session store
// carries profiles across requests.
type ProfileManager struct {
	ctx   handler.Context
	store sessionstore.Store
}

// NewProfileManager creates a manager for ctx. store may be nil.
func NewProfileManager(ctx handler.Context, store sessionstore.Store) *ProfileManager {
	return &ProfileManager{ctx: ctx, store: store}
}

// Profiles returns the profiles of the request. When readFromSession is set
// and the request holds none, the session is consulted and its profiles are
// cached on the request.
func (m *ProfileManager) Profiles(readFromSession bool) *profile.Map {
	if v, ok := m.ctx.Attribute(ProfilesAttribute); ok {
		if pm, ok := v.(*profile.Map); ok && pm.Len() > 0 {
			return pm
		}
	}
	if !readFromSession || m.store == nil {
		return profile.NewMap()
	}

	v, ok := m.store.Get(m.ctx, sessionstore.UserProfilesKey)
	if !ok {
		return profile.NewMap()
	}

	var pm *profile.Map
	switch val := v.(type) {
	case *profile.Map:
		pm = val.Clone()
	case *profile.Profile:
		pm = profile.NewMap(val)
	case profile.Profile:
		pm = profile.NewMap(&val)
	default:
		return profile.NewMap()
	}
	if pm.Len() > 0 {
		m.ctx.SetAttribute(ProfilesAttribute, pm)
	}
	return pm
}

// Get returns the first profile of the request.
func (m *ProfileManager) Get(readFromSession bool) (*profile.Profile, bool) {
	return m.Profiles(readFromSession).First()
}

// IsAuthenticated reports whether the request has a profile.
func (m *ProfileManager) IsAuthenticated(readFromSession bool) bool {
	return m.Profiles(readFromSession).Len() > 0
}

// Save records p as authenticated. In single-profile mode p replaces every
// existing profile; in multi-profile mode it is keyed by its client name.
func (m *ProfileManager) Save(saveInSession bool, p *profile.Profile, multi bool) error {
	var pm *profile.Map
	if multi {
		pm = m.Profiles(saveInSession).Clone()
		pm.Set(p.ClientName, p)
	} else {
		pm = profile.NewMap(p)
	}

	m.ctx.SetAttribute(ProfilesAttribute, pm)
	if saveInSession && m.store != nil {
		return m.store.Set(m.ctx, sessionstore.UserProfilesKey, pm)
	}
	return nil
}

// Remove forgets every profile of the request, and of the session when
// removeFromSession is set.
func (m *ProfileManager) Remove(removeFromSession bool) error {
	m.ctx.RemoveAttribute(ProfilesAttribute)
	if removeFromSession && m.store != nil {
		if _, ok := m.store.Get(m.ctx, sessionstore.UserProfilesKey); ok {
			return m.store.Set(m.ctx, sessionstore.UserProfilesKey, nil)
		}
	}
	return nil
}
