package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekeeper/core/config"
)

// Each test uses its own type since values are cached per type.

type defaultsConfig struct {
	Name string        `env:"GK_TEST_DEFAULTS_NAME" envDefault:"gatekeeper"`
	TTL  time.Duration `env:"GK_TEST_DEFAULTS_TTL" envDefault:"30m"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "gatekeeper", cfg.Name)
	assert.Equal(t, 30*time.Minute, cfg.TTL)
}

type envConfig struct {
	Secret string `env:"GK_TEST_ENV_SECRET,required"`
	Nested struct {
		Enabled bool `env:"GK_TEST_ENV_ENABLED" envDefault:"false"`
	}
}

func TestLoadFromEnvironmentIsCached(t *testing.T) {
	t.Setenv("GK_TEST_ENV_SECRET", "first")
	t.Setenv("GK_TEST_ENV_ENABLED", "true")

	var cfg envConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "first", cfg.Secret)
	assert.True(t, cfg.Nested.Enabled)

	t.Setenv("GK_TEST_ENV_SECRET", "second")
	var again envConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "first", again.Secret)
}

type requiredConfig struct {
	Secret string `env:"GK_TEST_REQUIRED_SECRET,required"`
}

func TestLoadMissingRequired(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrParse)

	assert.Panics(t, func() { config.MustLoad(&requiredConfig{}) })
}
