package simple

import (
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/gatekeeper/core/client"
	"github.com/dmitrymomot/gatekeeper/core/health"
	"github.com/dmitrymomot/gatekeeper/core/logger"
	"github.com/dmitrymomot/gatekeeper/core/response"
	"github.com/dmitrymomot/gatekeeper/core/security"
	"github.com/dmitrymomot/gatekeeper/middleware"
)

func (app *App) routes() http.Handler {
	cfg := app.config.Security
	opts := []middleware.Option{middleware.WithLogger(app.logger)}

	var web, api []string
	for _, c := range app.clients.All() {
		if c.Kind() == client.KindIndirect {
			web = append(web, c.Name())
		} else {
			api = append(api, c.Name())
		}
	}
	protect := func(clients []string, authorizers string, h http.HandlerFunc) http.Handler {
		return middleware.Security(app.logic, security.Params{
			Clients:     strings.Join(clients, ","),
			Authorizers: authorizers,
		}, opts...)(h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", app.home)
	mux.Handle("GET /admin", protect(web, AuthorizerAdmin, app.admin))
	mux.Handle("POST /api/token", protect(web, "", app.token))
	mux.Handle("GET /api/me", protect(api, "", app.me))
	mux.Handle(callbackPath(cfg.CallbackURL), middleware.Callback(app.callback, security.CallbackParams{
		DefaultURL:   cfg.DefaultURL,
		RenewSession: security.Bool(cfg.RenewSession),
	}, opts...))
	mux.Handle("/logout", middleware.Logout(app.logout, security.LogoutParams{
		DefaultURL:     cfg.DefaultURL,
		URLPattern:     cfg.LogoutURLPattern,
		DestroySession: cfg.DestroySession,
	}, opts...))
	mux.Handle("GET /health/live", health.Liveness())
	mux.Handle("GET /health/ready", health.Readiness(app.logger, app.checks()...))
	mux.Handle("GET /metrics", app.metricsHandler())

	headers := middleware.DevelopmentSecurity
	if app.config.Env == "production" {
		headers = middleware.BalancedSecurity
	}

	var h http.Handler = mux
	h = middleware.SecurityHeadersWithConfig(headers)(h)
	h = middleware.Logging(app.logger)(h)
	h = middleware.RequestID()(h)
	return h
}

func callbackPath(callbackURL string) string {
	u, err := url.Parse(callbackURL)
	if err != nil || u.Path == "" {
		return "/callback"
	}
	return u.Path
}

func (app *App) home(w http.ResponseWriter, r *http.Request) {
	response.Render(w, r, response.String(app.config.AppName))
}

func (app *App) admin(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.Profile(r)
	body := fmt.Sprintf(`<!DOCTYPE html><p>Welcome, %s.</p><form method="post" action="/logout"><button>Sign out</button></form>`,
		html.EscapeString(p.ID))
	response.Render(w, r, response.NoStore(response.HTML(body)))
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// token exchanges a browser session for a bearer token.
func (app *App) token(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.Profile(r)
	tok, err := app.bearer.ProfileToken(p)
	if err != nil {
		app.logger.ErrorContext(r.Context(), "failed to issue token", logger.ProfileID(p.ID), logger.Error(err))
		response.ErrorHandler(w, r, err)
		return
	}
	response.Render(w, r, response.NoStore(response.JSONWithStatus(tokenResponse{AccessToken: tok, TokenType: "Bearer"}, http.StatusOK)))
}

type meResponse struct {
	ID          string   `json:"id"`
	Client      string   `json:"client"`
	Roles       []string `json:"roles,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

func (app *App) me(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.Profile(r)
	response.Render(w, r, response.JSONWithStatus(meResponse{
		ID:          p.ID,
		Client:      p.ClientName,
		Roles:       p.Roles,
		Permissions: p.Permissions,
	}, http.StatusOK))
}
