package client

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ClientNameParam is the request parameter naming the client a request targets.
const ClientNameParam = "client_name"

// Registry is an ordered, immutable set of clients. Names are matched
// case-insensitively.
type Registry struct {
	clients     []Client
	byName      map[string]Client
	defaults    []string
	callbackURL string
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithClients appends clients in the order they should be tried.
func WithClients(clients ...Client) RegistryOption {
	return func(r *Registry) {
		r.clients = append(r.clients, clients...)
	}
}

// WithDefaultClients sets the clients used by routes that name none.
func WithDefaultClients(names ...string) RegistryOption {
	return func(r *Registry) {
		r.defaults = append(r.defaults, names...)
	}
}

// WithCallbackURL sets the URL indirect login flows return to.
func WithCallbackURL(u string) RegistryOption {
	return func(r *Registry) {
		r.callbackURL = u
	}
}

// NewRegistry builds a registry. Every name must be unique, default names
// must be registered, and a callback URL is required when an indirect client
// is present.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	r := &Registry{byName: make(map[string]Client)}
	for _, opt := range opts {
		opt(r)
	}

	hasIndirect := false
	for _, c := range r.clients {
		name := strings.TrimSpace(c.Name())
		if name == "" {
			return nil, ErrEmptyName
		}
		key := strings.ToLower(name)
		if _, ok := r.byName[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateClient, name)
		}
		r.byName[key] = c
		if c.Kind() == KindIndirect {
			hasIndirect = true
		}
	}

	for _, name := range r.defaults {
		if _, err := r.Find(name); err != nil {
			return nil, err
		}
	}

	if hasIndirect {
		if r.callbackURL == "" {
			return nil, ErrMissingCallbackURL
		}
		if _, err := url.Parse(r.callbackURL); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMissingCallbackURL, err)
		}
	}

	return r, nil
}

// Find returns the client registered under name.
func (r *Registry) Find(name string) (Client, error) {
	c, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, name)
	}
	return c, nil
}

// All returns the clients in registration order.
func (r *Registry) All() []Client {
	return slices.Clone(r.clients)
}

// Defaults returns the default client names.
func (r *Registry) Defaults() []string {
	return slices.Clone(r.defaults)
}

// Len returns the number of clients.
func (r *Registry) Len() int {
	return len(r.clients)
}

// CallbackURL returns the callback URL for the named client, with the client
// name carried in the ClientNameParam query parameter.
func (r *Registry) CallbackURL(name string) string {
	return CallbackURL(r.callbackURL, name)
}

// CallbackURL adds the client name parameter to base.
func CallbackURL(base, name string) string {
	u, err := url.Parse(base)
	if err != nil || base == "" {
		return base
	}
	q := u.Query()
	q.Set(ClientNameParam, name)
	u.RawQuery = q.Encode()
	return u.String()
}

// SplitNames parses a comma-separated name list, dropping blanks.
func SplitNames(names string) []string {
	var out []string
	for part := range strings.SplitSeq(names, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
