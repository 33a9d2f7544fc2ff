// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	type SessionConfig struct {
//		IdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"720h"`
//		MaxAge  time.Duration `env:"SESSION_MAX_AGE" envDefault:"720h"`
//	}
//
//	func main() {
//		var cfg SessionConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 SessionConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 SessionConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently, so packages declare and load
// their own configuration structs without coordinating.
package config
