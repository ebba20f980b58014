package profile

import (
	"encoding/json"
	"errors"
	"slices"
)

// ErrInvalidMap is returned when a serialized Map is malformed.
var ErrInvalidMap = errors.New("profile: invalid profile map")

// Map is an ordered mapping of client name to profile.
// The zero value is an empty map ready to use. A Map is not safe for concurrent mutation.
type Map struct {
	keys     []string
	profiles map[string]*Profile
}

// NewMap creates a map holding the given profiles keyed by their client name.
func NewMap(profiles ...*Profile) *Map {
	m := &Map{}
	for _, p := range profiles {
		if p != nil {
			m.Set(p.ClientName, p)
		}
	}
	return m
}

// Set inserts or replaces the profile for clientName. Replacing keeps the original position.
func (m *Map) Set(clientName string, p *Profile) {
	if m.profiles == nil {
		m.profiles = make(map[string]*Profile)
	}
	if _, ok := m.profiles[clientName]; !ok {
		m.keys = append(m.keys, clientName)
	}
	m.profiles[clientName] = p
}

// Get returns the profile stored for clientName.
func (m *Map) Get(clientName string) (*Profile, bool) {
	if m == nil {
		return nil, false
	}
	p, ok := m.profiles[clientName]
	return p, ok
}

// Delete removes the profile for clientName.
func (m *Map) Delete(clientName string) {
	if m == nil {
		return
	}
	if _, ok := m.profiles[clientName]; !ok {
		return
	}
	delete(m.profiles, clientName)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == clientName })
}

// Len returns the number of profiles.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns client names in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Values returns profiles in insertion order.
func (m *Map) Values() []*Profile {
	if m == nil {
		return nil
	}
	out := make([]*Profile, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.profiles[k])
	}
	return out
}

// First returns the earliest inserted profile.
func (m *Map) First() (*Profile, bool) {
	if m.Len() == 0 {
		return nil, false
	}
	return m.profiles[m.keys[0]], true
}

// Clone returns a deep copy of the map and its profiles.
func (m *Map) Clone() *Map {
	out := &Map{}
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out.Set(k, m.profiles[k].Clone())
	}
	return out
}

// WithoutSensitive returns a copy whose profiles have no sensitive data.
func (m *Map) WithoutSensitive() *Map {
	out := &Map{}
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out.Set(k, m.profiles[k].WithoutSensitive())
	}
	return out
}

type mapEntry struct {
	Client  string   `json:"client"`
	Profile *Profile `json:"profile"`
}

// MarshalJSON encodes the map as an ordered list of entries.
func (m *Map) MarshalJSON() ([]byte, error) {
	entries := make([]mapEntry, 0, m.Len())
	if m != nil {
		for _, k := range m.keys {
			entries = append(entries, mapEntry{Client: k, Profile: m.profiles[k]})
		}
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes data produced by MarshalJSON.
func (m *Map) UnmarshalJSON(data []byte) error {
	var entries []mapEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return errors.Join(ErrInvalidMap, err)
	}
	m.keys = nil
	m.profiles = nil
	for _, e := range entries {
		if e.Profile == nil {
			return ErrInvalidMap
		}
		m.Set(e.Client, e.Profile)
	}
	return nil
}
