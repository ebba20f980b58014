// Package bearer implements a direct client for JWT bearer tokens.
//
// The client reads "Authorization: Bearer <token>", verifies an HS256
// signature together with expiry, issuer and audience, and maps the claims to
// a profile: sub becomes the profile ID, roles and permissions claims become
// the profile's roles and permissions. The raw token is kept in the profile's
// sensitive data so it never reaches a session store.
//
//	c, err := bearer.New(bearer.Config{Secret: os.Getenv("JWT_SECRET"), Issuer: "gatekeeper"})
//	token, err := c.Issue("user-1", bearer.WithRoles("admin"))
package bearer
