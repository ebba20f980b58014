// Package middleware adapts the security logics to net/http.
//
// Security guards a handler, Callback and Logout are endpoints of their own:
//
//	mux.Handle("/admin/", middleware.Security(logic, security.Params{
//		Clients:     "FormClient",
//		Authorizers: "admin",
//	})(adminHandler))
//	mux.Handle("/callback", middleware.Callback(callback, security.CallbackParams{DefaultURL: "/"}))
//	mux.Handle("/logout", middleware.Logout(logout, security.LogoutParams{DefaultURL: "/"}))
//
// Granted handlers read the authenticated profiles with Profiles.
//
// RequestID, Logging and SecurityHeaders are general-purpose middleware meant
// to wrap the whole mux.
package middleware
