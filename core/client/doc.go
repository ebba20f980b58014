// Package client defines authentication strategies and how a request selects
// one.
//
// A Client turns request credentials into a profile. Direct clients verify
// credentials that come with every request (bearer tokens, HTTP Basic).
// Indirect clients need a round trip: Redirect sends the user to a login page
// or identity provider and Callback validates what comes back.
//
// Clients report their outcome as a Result instead of panicking or returning
// sentinel actions through errors:
//
//	res := c.Authenticate(ctx)
//	if p, ok := res.Profile(); ok { ... }          // authenticated
//	if a, ok := res.Action(); ok { ... }           // client needs an HTTP response
//	if client.IsCredentialError(res.Err()) { ... } // missing or bad credentials
//
// # Registry and Finder
//
// A Registry holds the configured clients in order and is immutable once
// built. A Finder resolves the comma-separated client names of a protected
// route against the registry. A client_name request parameter may narrow the
// selection to one of those names, never widen it.
//
//	reg, err := client.NewRegistry(
//		client.WithClients(formClient, bearerClient),
//		client.WithCallbackURL("https://app.example.com/callback"),
//	)
//	clients, err := client.NewFinder(reg).Find(ctx, "FormClient,BearerClient")
package client
