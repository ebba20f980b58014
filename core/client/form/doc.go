// Package form implements an indirect client for username/password login
// forms.
//
// Redirect sends the user to an external login page (Config.LoginURL) with
// the callback URL in the "callback" query parameter. Without a login URL the
// client renders a minimal login page itself. The page posts the username and
// password fields to the callback URL, where Callback validates them through a
// basic.Authenticator.
package form
