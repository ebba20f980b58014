package bearer

import "time"

// DefaultName is the client name used when Config.Name is empty.
const DefaultName = "BearerClient"

// MinSecretLength is the shortest accepted HS256 secret.
const MinSecretLength = 32

// Config configures the bearer client.
type Config struct {
	Name     string        `env:"BEARER_CLIENT_NAME" envDefault:"BearerClient"`
	Secret   string        `env:"BEARER_JWT_SECRET,required"`
	Issuer   string        `env:"BEARER_JWT_ISSUER" envDefault:""`
	Audience string        `env:"BEARER_JWT_AUDIENCE" envDefault:""`
	TTL      time.Duration `env:"BEARER_JWT_TTL" envDefault:"15m"`
	Leeway   time.Duration `env:"BEARER_JWT_LEEWAY" envDefault:"30s"`
	Realm    string        `env:"BEARER_REALM" envDefault:"api"`
}

// DefaultConfig returns defaults without a secret.
func DefaultConfig() Config {
	return Config{
		Name:   DefaultName,
		TTL:    15 * time.Minute,
		Leeway: 30 * time.Second,
		Realm:  "api",
	}
}
