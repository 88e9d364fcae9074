/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testEnvironment struct {
	Host      string        `env:"TEST_CACHE_HOST"`
	Debug     bool          `env:"TEST_CACHE_DEBUG"`
	Port      int           `env:"TEST_CACHE_PORT"`
	Shards    uint8         `env:"TEST_CACHE_SHARDS"`
	Ratio     float64       `env:"TEST_CACHE_RATIO"`
	TTL       time.Duration `env:"TEST_CACHE_TTL"`
	Regions   []string      `env:"TEST_CACHE_REGIONS"`
	Untouched string        `env:"TEST_CACHE_UNSET"`
	NoTag     string
}

func TestSetFromEnv(t *testing.T) {
	t.Run("fill tagged fields", func(t *testing.T) {
		t.Setenv("TEST_CACHE_HOST", "localhost")
		t.Setenv("TEST_CACHE_DEBUG", "true")
		t.Setenv("TEST_CACHE_PORT", "8080")
		t.Setenv("TEST_CACHE_SHARDS", "16")
		t.Setenv("TEST_CACHE_RATIO", "0.75")
		t.Setenv("TEST_CACHE_TTL", "90s")
		t.Setenv("TEST_CACHE_REGIONS", "no-east, no-west")

		env := testEnvironment{Untouched: "default", NoTag: "default"}
		require.NoError(t, SetFromEnv(&env))
		require.Equal(t, testEnvironment{
			Host:      "localhost",
			Debug:     true,
			Port:      8080,
			Shards:    16,
			Ratio:     0.75,
			TTL:       90 * time.Second,
			Regions:   []string{"no-east", "no-west"},
			Untouched: "default",
			NoTag:     "default",
		}, env)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("TEST_CACHE_SHARDS", "300")

		var env testEnvironment
		err := SetFromEnv(&env)
		require.ErrorContains(t, err, "TEST_CACHE_SHARDS")

		var keyErr *KeyError
		require.ErrorAs(t, err, &keyErr)
	})

	t.Run("not a pointer to struct", func(t *testing.T) {
		require.Error(t, SetFromEnv(testEnvironment{}))
		require.Error(t, SetFromEnv((*testEnvironment)(nil)))
		s := "str"
		require.Error(t, SetFromEnv(&s))
	})
}
