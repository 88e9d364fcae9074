/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testServiceConfig struct {
	Address string
}

func (c *testServiceConfig) SetProviderDefaults(dp DataProvider) {
	dp.SetDefault("service.addr", ":80")
}

func (c *testServiceConfig) Set(dp DataProvider) error {
	var err error
	c.Address, err = dp.GetString("service.addr")
	return err
}

type testPrefixedConfig struct {
	MaxEntries int
}

func (c *testPrefixedConfig) KeyPrefix() string {
	return "cache"
}

func (c *testPrefixedConfig) SetProviderDefaults(dp DataProvider) {
	dp.SetDefault("maxEntries", 1000)
}

func (c *testPrefixedConfig) Set(dp DataProvider) error {
	var err error
	c.MaxEntries, err = dp.GetInt("maxEntries")
	return err
}

func TestLoader_LoadFromReader(t *testing.T) {
	t.Run("load config, use defaults", func(t *testing.T) {
		cfg := &testServiceConfig{}
		err := NewLoader(NewViperAdapter()).LoadFromReader(bytes.NewBufferString(`{}`), DataTypeJSON, cfg)
		require.NoError(t, err)
		require.Equal(t, ":80", cfg.Address)
	})

	t.Run("load config", func(t *testing.T) {
		cfg := &testServiceConfig{}
		err := NewLoader(NewViperAdapter()).LoadFromReader(
			bytes.NewBufferString(`{"service":{"addr":":777"}}`), DataTypeJSON, cfg)
		require.NoError(t, err)
		require.Equal(t, ":777", cfg.Address)
	})

	t.Run("load several configs, use key prefix", func(t *testing.T) {
		serviceCfg := &testServiceConfig{}
		cacheCfg := &testPrefixedConfig{}
		err := NewLoader(NewViperAdapter()).LoadFromReader(
			bytes.NewBufferString(testCacheConfigJSON), DataTypeJSON, serviceCfg, cacheCfg)
		require.NoError(t, err)
		require.Equal(t, ":80", serviceCfg.Address)
		require.Equal(t, 4, cacheCfg.MaxEntries)
	})
}

func TestLoader_LoadFromEnv(t *testing.T) {
	t.Setenv("MYAPP_SERVICE_ADDR", ":8080")
	t.Setenv("MYAPP_CACHE_MAXENTRIES", "42")

	serviceCfg := &testServiceConfig{}
	cacheCfg := &testPrefixedConfig{}
	require.NoError(t, NewDefaultLoader("myapp").LoadFromEnv(serviceCfg, cacheCfg))
	require.Equal(t, ":8080", serviceCfg.Address)
	require.Equal(t, 42, cacheCfg.MaxEntries)
}

func TestLoader_LoadFromFile(t *testing.T) {
	t.Run("load config", func(t *testing.T) {
		fname := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(fname, []byte(testCacheConfigJSON), 0o600))

		cacheCfg := &testPrefixedConfig{}
		require.NoError(t, NewLoader(NewViperAdapter()).LoadFromFile(fname, DataTypeJSON, cacheCfg))
		require.Equal(t, 4, cacheCfg.MaxEntries)
	})

	t.Run("missing file", func(t *testing.T) {
		fname := filepath.Join(t.TempDir(), "missing.json")
		err := NewLoader(NewViperAdapter()).LoadFromFile(fname, DataTypeJSON, &testPrefixedConfig{})
		require.ErrorContains(t, err, fname)
	})
}
