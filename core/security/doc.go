// Package security decides what happens to a request for a protected
// resource.
//
// Three logics share one Config:
//
//   - Logic runs on every protected request. It restores profiles from the
//     request or session, tries direct clients, checks authorizers and
//     returns a grant, a 401, a 403 or a redirect into an indirect login.
//   - CallbackLogic finishes an indirect login, stores the profile, rotates
//     the session and sends the user back to the URL they first asked for.
//   - LogoutLogic forgets the profiles and optionally the whole session.
//
// The logics never write responses. Each returns a Result whose Action the
// transport layer renders; see the middleware package for net/http.
//
//	logic, err := security.New(security.Config{
//		Clients:     clients,
//		Authorizers: authorizers,
//		Store:       store,
//	})
//	res, err := logic.Perform(ctx, security.Params{Clients: "FormClient", Authorizers: "admin"})
//
// Perform returns an error only for misconfiguration, such as an unknown
// client or authorizer name, and does so before touching the session.
package security
