package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParse is returned when the environment does not satisfy a config type.
var ErrParse = errors.New("config: failed to parse environment")

var (
	dotenv sync.Once
	loaded sync.Map // reflect.Type -> value
)

// Load fills cfg from the environment. The first call reads a .env file in
// the working directory if there is one; later calls for the same type
// return the cached value.
func Load[T any](cfg *T) error {
	dotenv.Do(func() {
		// A missing .env file is normal outside development.
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()
	if v, ok := loaded.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	var fresh T
	if err := env.Parse(&fresh); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	v, _ := loaded.LoadOrStore(key, fresh)
	*cfg = v.(T)
	return nil
}

// MustLoad is Load that panics on failure. Meant for program startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
