package basic

import (
	"context"
	"fmt"
	"maps"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/gatekeeper/core/client"
	"github.com/dmitrymomot/gatekeeper/core/profile"
)

// Authenticator validates a username and password. Rejected credentials
// must wrap client.ErrInvalidCredentials; other errors are treated as
// outages.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*profile.Profile, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, username, password string) (*profile.Profile, error)

// Authenticate calls f.
func (f AuthenticatorFunc) Authenticate(ctx context.Context, username, password string) (*profile.Profile, error) {
	return f(ctx, username, password)
}

// User is an entry of a StaticAuthenticator.
type User struct {
	PasswordHash []byte
	Roles        []string
	Permissions  []string
	Attributes   map[string]any
}

// StaticAuthenticator checks credentials against a fixed user set.
type StaticAuthenticator struct {
	users map[string]User
	dummy []byte
}

// NewStaticAuthenticator creates an authenticator over users.
func NewStaticAuthenticator(users map[string]User) *StaticAuthenticator {
	// Comparing unknown users against a real hash keeps timing uniform.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("gatekeeper-dummy-password"), bcrypt.DefaultCost)
	return &StaticAuthenticator{users: maps.Clone(users), dummy: dummy}
}

// Authenticate returns a profile with the user's roles for valid credentials.
// The profile has no client name; clients set their own.
func (a *StaticAuthenticator) Authenticate(ctx context.Context, username, password string) (*profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, ok := a.users[username]
	hash := user.PasswordHash
	if !ok {
		hash = a.dummy
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || !ok {
		return nil, fmt.Errorf("%w: unknown user or wrong password", client.ErrInvalidCredentials)
	}

	p := profile.New(username, "")
	p.AddRoles(user.Roles...)
	p.AddPermissions(user.Permissions...)
	for k, v := range user.Attributes {
		p.SetAttribute(k, v)
	}
	return p, nil
}

// HashPassword returns a bcrypt hash for a StaticAuthenticator user.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}
