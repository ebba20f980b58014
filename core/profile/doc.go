// Package profile defines the authenticated identity record attached to a
// request and the ordered per-client collection of those records.
//
// A Profile carries a stable identifier, roles, permissions, free-form
// attributes and a Sensitive subset holding raw credentials or tokens. The
// sensitive subset never leaves the process: stores call WithoutSensitive
// before persisting a profile to a cookie or cache.
//
//	p := profile.New("alice", "form")
//	p.AddRoles("admin", "editor")
//	p.SetAttribute("email", "alice@example.com")
//	p.SetSensitive("password", "hunter2")
//
//	stored := p.WithoutSensitive()
//
// A Map holds one profile per client name and keeps insertion order, so the
// first authenticated identity stays first. In single-profile mode a Map has
// at most one entry.
package profile
