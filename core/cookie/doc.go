// Package cookie builds HTTP cookies from shared defaults.
//
// Session stores write several cookies per request (identifier, per-key
// payloads, expirations). Options holds the attributes they share and Build
// applies per-call overrides on top:
//
//	defaults := cookie.DefaultConfig().Options()
//	c := cookie.Build("sid", id, defaults, cookie.WithMaxAge(3600))
//	ctx.SetCookie(c)
//
//	ctx.SetCookie(cookie.Expired("sid", defaults))
//
// Build never mutates defaults. Size reports the Set-Cookie header length so
// callers can enforce the browser limit (MaxCookieSize, 4KB) before writing.
package cookie
