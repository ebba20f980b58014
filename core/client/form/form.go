package form

import (
	"bytes"
	"errors"
	"html/template"
	"net/url"

	"github.com/dmitrymomot/gatekeeper/core/action"
	"github.com/dmitrymomot/gatekeeper/core/client"
	"github.com/dmitrymomot/gatekeeper/core/client/basic"
	"github.com/dmitrymomot/gatekeeper/core/handler"
)

const (
	// DefaultName is the default client name.
	DefaultName = "FormClient"
	// CallbackParam carries the callback URL to an external login page.
	CallbackParam = "callback"
	// ErrorParam is set on the login redirect after a failed attempt.
	ErrorParam = "error"
)

// Config configures the form client.
type Config struct {
	Name          string `env:"FORM_CLIENT_NAME" envDefault:"FormClient"`
	LoginURL      string `env:"FORM_LOGIN_URL" envDefault:""`
	UsernameParam string `env:"FORM_USERNAME_PARAM" envDefault:"username"`
	PasswordParam string `env:"FORM_PASSWORD_PARAM" envDefault:"password"`
}

// DefaultConfig returns a config that renders the built-in login page.
func DefaultConfig() Config {
	return Config{
		Name:          DefaultName,
		UsernameParam: "username",
		PasswordParam: "password",
	}
}

// Client is an indirect form login client.
type Client struct {
	cfg  Config
	auth basic.Authenticator
}

var (
	_ client.Indirect         = (*Client)(nil)
	_ client.FailureResponder = (*Client)(nil)
)

// New creates a form client. Empty config fields take their defaults.
func New(cfg Config, auth basic.Authenticator) *Client {
	def := DefaultConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.UsernameParam == "" {
		cfg.UsernameParam = def.UsernameParam
	}
	if cfg.PasswordParam == "" {
		cfg.PasswordParam = def.PasswordParam
	}
	return &Client{cfg: cfg, auth: auth}
}

// Name returns the client name.
func (c *Client) Name() string { return c.cfg.Name }

// Kind returns client.KindIndirect.
func (c *Client) Kind() client.Kind { return client.KindIndirect }

// Redirect starts the login flow. A previous failed attempt, signaled by the
// error request parameter, is forwarded to the login page.
func (c *Client) Redirect(ctx handler.Context, callbackURL string) (action.Action, error) {
	failed, _ := ctx.Param(ErrorParam)
	return c.login(callbackURL, failed)
}

// Failure shows the login page again, flagged with an error.
func (c *Client) Failure(_ handler.Context, callbackURL string, err error) (action.Action, error) {
	reason := "invalid_credentials"
	if errors.Is(err, client.ErrNoCredentials) {
		reason = "missing_credentials"
	}
	return c.login(callbackURL, reason)
}

func (c *Client) login(callbackURL, failed string) (action.Action, error) {
	if c.cfg.LoginURL == "" {
		return c.page(callbackURL, failed != "")
	}

	u, err := url.Parse(c.cfg.LoginURL)
	if err != nil {
		return action.Action{}, err
	}
	q := u.Query()
	q.Set(CallbackParam, callbackURL)
	if failed != "" {
		q.Set(ErrorParam, failed)
	}
	u.RawQuery = q.Encode()
	return action.Found(u.String()), nil
}

// Callback validates the posted credentials.
func (c *Client) Callback(ctx handler.Context) client.Result {
	username, _ := ctx.Param(c.cfg.UsernameParam)
	password, _ := ctx.Param(c.cfg.PasswordParam)
	if username == "" || password == "" {
		return client.NoCredentials()
	}

	p, err := c.auth.Authenticate(ctx, username, password)
	if err != nil {
		return client.Failed(err)
	}
	if p == nil {
		return client.Failed(client.ErrInvalidCredentials)
	}

	p.ClientName = c.cfg.Name
	return client.Ok(p)
}

var loginPage = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Sign in</title></head>
<body>
{{if .Failed}}<p role="alert">Invalid username or password.</p>{{end}}
<form method="post" action="{{.Action}}">
<label>Username <input type="text" name="{{.Username}}" autocomplete="username" required></label>
<label>Password <input type="password" name="{{.Password}}" autocomplete="current-password" required></label>
<button type="submit">Sign in</button>
</form>
</body>
</html>
`))

func (c *Client) page(callbackURL string, failed bool) (action.Action, error) {
	var buf bytes.Buffer
	err := loginPage.Execute(&buf, struct {
		Action, Username, Password string
		Failed                     bool
	}{callbackURL, c.cfg.UsernameParam, c.cfg.PasswordParam, failed})
	if err != nil {
		return action.Action{}, err
	}
	return action.Content(buf.String()), nil
}
