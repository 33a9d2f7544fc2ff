package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authcore/core/config"
)

type serverConfig struct {
	Host    string        `env:"TEST_CFG_HOST" envDefault:"localhost"`
	Port    int           `env:"TEST_CFG_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"TEST_CFG_TIMEOUT" envDefault:"30s"`
}

type requiredConfig struct {
	Secret string `env:"TEST_CFG_MISSING_SECRET,required"`
}

type cachedConfig struct {
	Value string `env:"TEST_CFG_CACHED" envDefault:"initial"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg serverConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
	})

	t.Run("environment override", func(t *testing.T) {
		type overrideConfig struct {
			Host string `env:"TEST_CFG_OVERRIDE_HOST" envDefault:"localhost"`
		}
		t.Setenv("TEST_CFG_OVERRIDE_HOST", "example.com")

		var cfg overrideConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "example.com", cfg.Host)
	})

	t.Run("missing required", func(t *testing.T) {
		var cfg requiredConfig
		assert.Error(t, config.Load(&cfg))
	})

	t.Run("cached per type", func(t *testing.T) {
		t.Setenv("TEST_CFG_CACHED", "first")

		var cfg1 cachedConfig
		require.NoError(t, config.Load(&cfg1))
		assert.Equal(t, "first", cfg1.Value)

		// Later environment changes do not affect the cached value.
		t.Setenv("TEST_CFG_CACHED", "second")

		var cfg2 cachedConfig
		require.NoError(t, config.Load(&cfg2))
		assert.Equal(t, "first", cfg2.Value)
	})

	t.Run("nil target", func(t *testing.T) {
		assert.Error(t, config.Load[serverConfig](nil))
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on error", func(t *testing.T) {
		assert.Panics(t, func() {
			var cfg requiredConfig
			config.MustLoad(&cfg)
		})
	})

	t.Run("succeeds with defaults", func(t *testing.T) {
		assert.NotPanics(t, func() {
			var cfg serverConfig
			config.MustLoad(&cfg)
		})
	})
}
