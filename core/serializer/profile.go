package serializer

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrymomot/gatekeeper/core/profile"
)

// profileWire shadows the free-form maps of a profile so every attribute
// value keeps its Go type through a round trip.
type profileWire struct {
	*profile.Profile
	Attributes map[string]envelope `json:"attributes,omitempty"`
	Sensitive  map[string]envelope `json:"sensitive,omitempty"`
}

type profileEntryWire struct {
	Client  string       `json:"client"`
	Profile *profileWire `json:"profile"`
}

// encodeValue marshals a registered value. Profile types get typed attributes,
// everything else is plain JSON.
func (s *Serializer) encodeValue(v any) ([]byte, error) {
	switch x := v.(type) {
	case profile.Profile:
		w, err := s.wrapProfile(&x)
		if err != nil {
			return nil, err
		}
		return json.Marshal(w)
	case *profile.Profile:
		if x == nil {
			return []byte("null"), nil
		}
		w, err := s.wrapProfile(x)
		if err != nil {
			return nil, err
		}
		return json.Marshal(w)
	case *profile.Map:
		entries := make([]profileEntryWire, 0, x.Len())
		for _, k := range x.Keys() {
			p, _ := x.Get(k)
			w, err := s.wrapProfile(p)
			if err != nil {
				return nil, err
			}
			entries = append(entries, profileEntryWire{Client: k, Profile: w})
		}
		return json.Marshal(entries)
	}
	return json.Marshal(v)
}

// decodeProfileValue reverses encodeValue for the profile types. ok is false
// for any other type name.
func (s *Serializer) decodeProfileValue(name string, data []byte) (any, bool, error) {
	switch name {
	case "profile", "profile_ref":
		if name == "profile_ref" && string(data) == "null" {
			return (*profile.Profile)(nil), true, nil
		}
		p, err := s.unwrapProfile(data)
		if err != nil {
			return nil, true, err
		}
		if name == "profile" {
			return *p, true, nil
		}
		return p, true, nil
	case "profiles":
		var entries []profileEntryWire
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, true, errors.Join(ErrCorrupt, err)
		}
		m := profile.NewMap()
		for _, e := range entries {
			if e.Profile == nil || e.Profile.Profile == nil {
				return nil, true, fmt.Errorf("%w: empty profile entry", ErrCorrupt)
			}
			p, err := s.restoreProfile(e.Profile)
			if err != nil {
				return nil, true, err
			}
			m.Set(e.Client, p)
		}
		return m, true, nil
	}
	return nil, false, nil
}

func (s *Serializer) wrapProfile(p *profile.Profile) (*profileWire, error) {
	attrs, err := s.wrapFields(p.Attributes)
	if err != nil {
		return nil, fmt.Errorf("profile %q attributes: %w", p.ID, err)
	}
	sensitive, err := s.wrapFields(p.Sensitive)
	if err != nil {
		return nil, fmt.Errorf("profile %q sensitive data: %w", p.ID, err)
	}
	return &profileWire{Profile: p, Attributes: attrs, Sensitive: sensitive}, nil
}

func (s *Serializer) unwrapProfile(data []byte) (*profile.Profile, error) {
	w := profileWire{Profile: new(profile.Profile)}
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Join(ErrCorrupt, err)
	}
	return s.restoreProfile(&w)
}

func (s *Serializer) restoreProfile(w *profileWire) (*profile.Profile, error) {
	p := *w.Profile
	var err error
	if p.Attributes, err = s.unwrapFields(w.Attributes); err != nil {
		return nil, err
	}
	if p.Sensitive, err = s.unwrapFields(w.Sensitive); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Serializer) wrapFields(fields map[string]any) (map[string]envelope, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	out := make(map[string]envelope, len(fields))
	for k, v := range fields {
		env, err := s.wrap(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = env
	}
	return out, nil
}

func (s *Serializer) unwrapFields(fields map[string]envelope) (map[string]any, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(fields))
	for k, env := range fields {
		v, err := s.unwrap(env)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}
