// Package config loads environment-backed configuration structs.
//
// Load parses environment variables into a struct using caarlos0/env tags.
// A .env file in the working directory is read once, before the first parse,
// and never overrides variables that are already set. Parsed values are cached
// per struct type, so repeated loads of the same type are free and consistent.
//
//	type SessionConfig struct {
//		Backend string        `env:"SESSION_BACKEND" envDefault:"memory"`
//		Secret  string        `env:"SESSION_SECRET,required"`
//		TTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
//	}
//
//	var cfg SessionConfig
//	if err := config.Load(&cfg); err != nil {
//		return err // wraps config.ErrParse
//	}
//
// MustLoad is the startup variant and panics instead of returning an error.
//
// Component packages expose their own Config types (server.Config,
// cookie.Config, redis.Config, security.Settings) which the application
// embeds with an envPrefix, so one Load call fills the whole tree.
package config
