// Package basic implements a direct client for HTTP Basic authentication and
// a static, bcrypt-backed user directory.
//
//	hash, _ := basic.HashPassword("s3cret-passw0rd")
//	users := basic.NewStaticAuthenticator(map[string]basic.User{
//		"alice": {PasswordHash: hash, Roles: []string{"admin"}},
//	})
//	c := basic.New(users, basic.WithRealm("admin"))
//
// The Authenticator interface is shared with the form client, so the same
// directory can back both.
package basic
