package simple

import (
	"time"

	"github.com/dmitrymomot/gatekeeper/core/client/bearer"
	"github.com/dmitrymomot/gatekeeper/core/client/form"
	"github.com/dmitrymomot/gatekeeper/core/cookie"
	"github.com/dmitrymomot/gatekeeper/core/security"
	"github.com/dmitrymomot/gatekeeper/core/server"
	"github.com/dmitrymomot/gatekeeper/integration/database/redis"
	"github.com/dmitrymomot/gatekeeper/integration/metrics/prometheus"
)

// Session backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendCookie = "cookie"
)

type Config struct {
	Server   server.Config
	Cookie   cookie.Config
	Redis    redis.Config
	Security security.Settings
	Bearer   bearer.Config
	Form     form.Config
	Metrics  prometheus.Config

	AppName  string `env:"APP_NAME" envDefault:"gatekeeper-simple"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	SessionBackend  string        `env:"SESSION_BACKEND" envDefault:"memory"`
	SessionSecret   string        `env:"SESSION_SECRET,required"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SessionCapacity int           `env:"SESSION_CAPACITY" envDefault:"10000"`

	AdminUsername     string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}
