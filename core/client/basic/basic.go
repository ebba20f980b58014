package basic

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrymomot/gatekeeper/core/client"
	"github.com/dmitrymomot/gatekeeper/core/handler"
)

const (
	// DefaultName is the default client name.
	DefaultName = "BasicClient"
	// PasswordKey is the sensitive data key holding the password.
	PasswordKey = "password"
)

// Client is a direct HTTP Basic client.
type Client struct {
	name  string
	realm string
	auth  Authenticator
}

var (
	_ client.Direct     = (*Client)(nil)
	_ client.Challenger = (*Client)(nil)
)

// Option configures the client.
type Option func(*Client)

// WithName sets the client name.
func WithName(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.name = name
		}
	}
}

// WithRealm sets the realm advertised in challenges.
func WithRealm(realm string) Option {
	return func(c *Client) {
		c.realm = realm
	}
}

// New creates a Basic client backed by auth.
func New(auth Authenticator, opts ...Option) *Client {
	c := &Client{name: DefaultName, realm: "restricted", auth: auth}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the client name.
func (c *Client) Name() string { return c.name }

// Kind returns client.KindDirect.
func (c *Client) Kind() client.Kind { return client.KindDirect }

// Challenge returns the WWW-Authenticate value for 401 responses.
func (c *Client) Challenge() string {
	return fmt.Sprintf("Basic realm=%q, charset=\"UTF-8\"", c.realm)
}

// Authenticate checks the request's Basic credentials.
func (c *Client) Authenticate(ctx handler.Context) client.Result {
	username, password, ok := parse(ctx)
	if !ok {
		return client.NoCredentials()
	}

	p, err := c.auth.Authenticate(ctx, username, password)
	if err != nil {
		return client.Failed(err)
	}
	if p == nil {
		return client.Failed(client.ErrInvalidCredentials)
	}

	p.ClientName = c.name
	p.SetSensitive(PasswordKey, password)
	return client.Ok(p)
}

func parse(ctx handler.Context) (string, string, bool) {
	h, ok := ctx.Header("Authorization")
	if !ok {
		return "", "", false
	}
	scheme, encoded, found := strings.Cut(strings.TrimSpace(h), " ")
	if !found || !strings.EqualFold(scheme, "Basic") {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", "", false
	}
	username, password, found := strings.Cut(string(decoded), ":")
	if !found || username == "" {
		return "", "", false
	}
	return username, password, true
}
