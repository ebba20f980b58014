package profile

import (
	"maps"
	"slices"
)

// Profile is an authenticated identity.
type Profile struct {
	ID          string         `json:"id"`
	ClientName  string         `json:"client_name,omitempty"`
	Roles       []string       `json:"roles,omitempty"`
	Permissions []string       `json:"permissions,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty"`
	// Sensitive holds credentials and tokens. It is dropped before persistence.
	Sensitive  map[string]any `json:"sensitive,omitempty"`
	RememberMe bool           `json:"remember_me,omitempty"`
}

// New creates a profile for id authenticated by clientName.
func New(id, clientName string) *Profile {
	return &Profile{ID: id, ClientName: clientName}
}

// AddRoles adds roles, ignoring duplicates and empty names.
func (p *Profile) AddRoles(roles ...string) {
	p.Roles = addUnique(p.Roles, roles)
}

// AddPermissions adds permissions, ignoring duplicates and empty names.
func (p *Profile) AddPermissions(perms ...string) {
	p.Permissions = addUnique(p.Permissions, perms)
}

// HasRole reports whether the profile has role.
func (p *Profile) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

// HasPermission reports whether the profile has perm.
func (p *Profile) HasPermission(perm string) bool {
	return slices.Contains(p.Permissions, perm)
}

// SetAttribute stores an attribute value.
func (p *Profile) SetAttribute(key string, value any) {
	if p.Attributes == nil {
		p.Attributes = make(map[string]any)
	}
	p.Attributes[key] = value
}

// Attribute returns the attribute stored under key.
func (p *Profile) Attribute(key string) (any, bool) {
	v, ok := p.Attributes[key]
	return v, ok
}

// SetSensitive stores a value that must not be persisted client side.
func (p *Profile) SetSensitive(key string, value any) {
	if p.Sensitive == nil {
		p.Sensitive = make(map[string]any)
	}
	p.Sensitive[key] = value
}

// HasSensitive reports whether the profile carries any sensitive data.
func (p *Profile) HasSensitive() bool {
	return len(p.Sensitive) > 0
}

// Clone returns a deep copy of the profile's slices and maps.
// Attribute values themselves are copied by reference.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Roles = slices.Clone(p.Roles)
	c.Permissions = slices.Clone(p.Permissions)
	c.Attributes = maps.Clone(p.Attributes)
	c.Sensitive = maps.Clone(p.Sensitive)
	return &c
}

// WithoutSensitive returns a copy with the sensitive subset removed.
// The receiver is left untouched.
func (p *Profile) WithoutSensitive() *Profile {
	if p == nil {
		return nil
	}
	c := p.Clone()
	c.Sensitive = nil
	return c
}

func addUnique(dst, values []string) []string {
	for _, v := range values {
		if v == "" || slices.Contains(dst, v) {
			continue
		}
		dst = append(dst, v)
	}
	return dst
}
