package bearer

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrymomot/gatekeeper/core/client"
	"github.com/dmitrymomot/gatekeeper/core/handler"
	"github.com/dmitrymomot/gatekeeper/core/profile"
)

// TokenKey is the sensitive data key holding the raw token.
const TokenKey = "access_token"

// Claims is the token payload.
type Claims struct {
	Roles       []string `json:"roles,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	Email       string   `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Client is a direct JWT bearer client.
type Client struct {
	cfg    Config
	key    []byte
	parser *jwt.Parser
}

var (
	_ client.Direct     = (*Client)(nil)
	_ client.Challenger = (*Client)(nil)
)

// New creates a bearer client.
func New(cfg Config) (*Client, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultConfig().TTL
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Leeway > 0 {
		opts = append(opts, jwt.WithLeeway(cfg.Leeway))
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &Client{
		cfg:    cfg,
		key:    []byte(cfg.Secret),
		parser: jwt.NewParser(opts...),
	}, nil
}

// Name returns the client name.
func (c *Client) Name() string { return c.cfg.Name }

// Kind returns client.KindDirect.
func (c *Client) Kind() client.Kind { return client.KindDirect }

// Challenge returns the WWW-Authenticate value for 401 responses.
func (c *Client) Challenge() string {
	return fmt.Sprintf("Bearer realm=%q", c.cfg.Realm)
}

// Authenticate verifies the bearer token of the request.
func (c *Client) Authenticate(ctx handler.Context) client.Result {
	raw, ok := extract(ctx)
	if !ok {
		return client.NoCredentials()
	}

	claims := &Claims{}
	_, err := c.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return c.key, nil
	})
	if err != nil {
		return client.Failed(fmt.Errorf("%w: %w", client.ErrInvalidCredentials, err))
	}
	if claims.Subject == "" {
		return client.Failed(fmt.Errorf("%w: %w", client.ErrInvalidCredentials, ErrMissingSubject))
	}

	p := profile.New(claims.Subject, c.cfg.Name)
	p.AddRoles(claims.Roles...)
	p.AddPermissions(claims.Permissions...)
	if claims.Email != "" {
		p.SetAttribute("email", claims.Email)
	}
	if claims.Issuer != "" {
		p.SetAttribute("iss", claims.Issuer)
	}
	p.SetSensitive(TokenKey, raw)
	return client.Ok(p)
}

// IssueOption customizes an issued token.
type IssueOption func(*Claims)

// WithRoles adds roles to the token.
func WithRoles(roles ...string) IssueOption {
	return func(c *Claims) { c.Roles = append(c.Roles, roles...) }
}

// WithPermissions adds permissions to the token.
func WithPermissions(perms ...string) IssueOption {
	return func(c *Claims) { c.Permissions = append(c.Permissions, perms...) }
}

// WithEmail sets the email claim.
func WithEmail(email string) IssueOption {
	return func(c *Claims) { c.Email = email }
}

// WithExpiry overrides the token lifetime.
func WithExpiry(ttl time.Duration) IssueOption {
	return func(c *Claims) {
		c.ExpiresAt = jwt.NewNumericDate(c.IssuedAt.Add(ttl))
	}
}

// Issue signs a token for subject that this client accepts.
func (c *Client) Issue(subject string, opts ...IssueOption) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    c.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.cfg.TTL)),
		},
	}
	if c.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{c.cfg.Audience}
	}
	for _, opt := range opts {
		opt(claims)
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// ProfileToken issues a token carrying the identity of p.
func (c *Client) ProfileToken(p *profile.Profile) (string, error) {
	opts := []IssueOption{WithRoles(p.Roles...), WithPermissions(p.Permissions...)}
	if email, ok := p.Attribute("email"); ok {
		if s, ok := email.(string); ok {
			opts = append(opts, WithEmail(s))
		}
	}
	return c.Issue(p.ID, opts...)
}

func extract(ctx handler.Context) (string, bool) {
	h, ok := ctx.Header("Authorization")
	if !ok {
		return "", false
	}
	scheme, token, found := strings.Cut(strings.TrimSpace(h), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
