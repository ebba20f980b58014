package security

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/dmitrymomot/gatekeeper/core/handler"
)

// Matcher decides whether security applies to a request. A request that any
// matcher rejects is granted without looking up a profile.
type Matcher interface {
	Matches(ctx handler.Context) bool
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(ctx handler.Context) bool

// Matches calls f.
func (f MatcherFunc) Matches(ctx handler.Context) bool {
	return f(ctx)
}

// ExcludePaths skips security for paths matching any of patterns. Patterns
// are globs over '/'-separated segments: "*" stops at a slash, "**" does not.
//
//	security.ExcludePaths("/health", "/static/**", "/api/*/public")
func ExcludePaths(patterns ...string) (Matcher, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, p, err)
		}
		globs = append(globs, g)
	}

	return MatcherFunc(func(ctx handler.Context) bool {
		path := ctx.Path()
		for _, g := range globs {
			if g.Match(path) {
				return false
			}
		}
		return true
	}), nil
}

// MustExcludePaths is ExcludePaths that panics on invalid patterns.
func MustExcludePaths(patterns ...string) Matcher {
	m, err := ExcludePaths(patterns...)
	if err != nil {
		panic(err)
	}
	return m
}

// ExcludeMethods skips security for the given HTTP methods.
// ExcludeMethods(http.MethodOptions) lets CORS preflight requests through.
func ExcludeMethods(methods ...string) Matcher {
	upper := make([]string, len(methods))
	for i, m := range methods {
		upper[i] = strings.ToUpper(m)
	}
	return MatcherFunc(func(ctx handler.Context) bool {
		return !slices.Contains(upper, ctx.Method())
	})
}

// isAJAX reports whether the request comes from a script that cannot follow
// a login redirect.
func isAJAX(ctx handler.Context) bool {
	if v, ok := ctx.Header("X-Requested-With"); ok && strings.EqualFold(v, "XMLHttpRequest") {
		return true
	}
	if v, ok := ctx.Header("Accept"); ok && strings.Contains(v, "application/json") && !strings.Contains(v, "text/html") {
		return true
	}
	return false
}

