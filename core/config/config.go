package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cacheMu sync.Mutex
	cache   = make(map[reflect.Type]any)

	loadDotenv sync.Once
)

// Load parses environment variables into cfg. Each concrete type is parsed
// once per process; later calls for the same type return the cached value.
// A .env file in the working directory is applied before the first parse,
// without overriding variables already set in the environment.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return fmt.Errorf("config: nil target")
	}

	loadDotenv.Do(func() {
		// Missing .env files are expected outside local development.
		_ = godotenv.Load()
	})

	typ := reflect.TypeOf(*cfg)

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[typ]; ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", typ, err)
	}

	cache[typ] = *cfg
	return nil
}

// MustLoad is Load but panics on failure. Intended for application startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
