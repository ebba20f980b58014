package client

import (
	"log/slog"
	"strings"

	"github.com/dmitrymomot/gatekeeper/core/handler"
	"github.com/dmitrymomot/gatekeeper/core/logger"
)

// Finder selects the clients that apply to a request.
type Finder struct {
	registry *Registry
	param    string
	logger   *slog.Logger
}

// FinderOption configures a Finder.
type FinderOption func(*Finder)

// WithParam sets the request parameter that forces a client.
func WithParam(name string) FinderOption {
	return func(f *Finder) {
		if name != "" {
			f.param = name
		}
	}
}

// WithFinderLogger sets the logger.
func WithFinderLogger(l *slog.Logger) FinderOption {
	return func(f *Finder) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFinder creates a finder over registry.
func NewFinder(registry *Registry, opts ...FinderOption) *Finder {
	f := &Finder{registry: registry, param: ClientNameParam, logger: logger.Discard()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Registry returns the underlying registry.
func (f *Finder) Registry() *Registry {
	return f.registry
}

// Find resolves a comma-separated list of client names. An empty list falls
// back to the registry defaults, then to every registered client. Unknown
// names fail with ErrClientNotFound. When the request names one of the
// resolved clients in the forcing parameter, only that client is returned.
func (f *Finder) Find(ctx handler.Context, names string) ([]Client, error) {
	list := SplitNames(names)
	if len(list) == 0 {
		list = f.registry.Defaults()
	}

	var clients []Client
	if len(list) == 0 {
		clients = f.registry.All()
	} else {
		clients = make([]Client, 0, len(list))
		for _, name := range list {
			c, err := f.registry.Find(name)
			if err != nil {
				return nil, err
			}
			clients = append(clients, c)
		}
	}

	forced, ok := ctx.Param(f.param)
	if !ok || forced == "" {
		return clients, nil
	}
	for _, c := range clients {
		if strings.EqualFold(c.Name(), forced) {
			return []Client{c}, nil
		}
	}

	f.logger.DebugContext(ctx, "ignoring client not allowed for this route",
		logger.Client(forced),
		logger.Clients(Names(clients)),
	)
	return clients, nil
}

// Names returns the names of clients.
func Names(clients []Client) []string {
	out := make([]string, len(clients))
	for i, c := range clients {
		out[i] = c.Name()
	}
	return out
}

// OfKind filters clients by kind, keeping order.
func OfKind(clients []Client, kind Kind) []Client {
	var out []Client
	for _, c := range clients {
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}
