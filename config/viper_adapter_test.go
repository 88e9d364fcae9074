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
	"time"

	"github.com/stretchr/testify/require"
)

const testCacheConfigYAML = `
cache:
  entryDuration: 90m
  maxEntries: 4
  mode: Strict
log:
  rotation:
    maxSize: 250M
    maxSizeK8s: 1Gi
    maxSizeInt: 1024
    maxSizeNeg: -1
`

const testCacheConfigJSON = `
{
  "cache": {
    "entryDuration": "90m",
    "maxEntries": 4,
    "mode": "Strict"
  }
}
`

func TestViperAdapter_SetFromReader(t *testing.T) {
	tests := []struct {
		name     string
		dataType DataType
		data     string
	}{
		{name: "yaml", dataType: DataTypeYAML, data: testCacheConfigYAML},
		{name: "json", dataType: DataTypeJSON, data: testCacheConfigJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			va := NewViperAdapter()
			require.NoError(t, va.SetFromReader(bytes.NewBufferString(tt.data), tt.dataType))

			maxEntries, err := va.GetInt("cache.maxEntries")
			require.NoError(t, err)
			require.Equal(t, 4, maxEntries)

			entryDuration, err := va.GetDuration("cache.entryDuration")
			require.NoError(t, err)
			require.Equal(t, 90*time.Minute, entryDuration)

			require.True(t, va.IsSet("cache.mode"))
			require.False(t, va.IsSet("cache.unknown"))
		})
	}
}

func TestViperAdapter_SetFromFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(fname, []byte(testCacheConfigYAML), 0o600))

	va := NewViperAdapter()
	require.NoError(t, va.SetFromFile(fname, DataTypeYAML))

	maxEntries, err := va.GetInt("cache.maxEntries")
	require.NoError(t, err)
	require.Equal(t, 4, maxEntries)
}

func TestViperAdapter_GetStringFromSet(t *testing.T) {
	va := NewViperAdapter()
	require.NoError(t, va.SetFromReader(bytes.NewBufferString(testCacheConfigYAML), DataTypeYAML))

	mode, err := va.GetStringFromSet("cache.mode", []string{"strict", "lenient"}, true)
	require.NoError(t, err)
	require.Equal(t, "Strict", mode)

	_, err = va.GetStringFromSet("cache.mode", []string{"strict", "lenient"}, false)
	require.EqualError(t, err, `cache.mode: unknown value "Strict", should be one of [strict lenient]`)
}

func TestViperAdapter_GetBytesCount(t *testing.T) {
	va := NewViperAdapter()
	require.NoError(t, va.SetFromReader(bytes.NewBufferString(testCacheConfigYAML), DataTypeYAML))

	tests := []struct {
		key     string
		want    BytesCount
		wantErr bool
	}{
		{key: "log.rotation.maxSize", want: 250 * 1024 * 1024},
		{key: "log.rotation.maxSizeK8s", want: 1024 * 1024 * 1024},
		{key: "log.rotation.maxSizeInt", want: 1024},
		{key: "log.rotation.maxSizeNeg", wantErr: true},
		{key: "log.rotation.missing", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := va.GetBytesCount(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.key)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestViperAdapter_UseEnvVars(t *testing.T) {
	t.Setenv("LOCALCACHE_CACHE_MAXENTRIES", "16")

	va := NewViperAdapter()
	va.UseEnvVars("localcache")
	va.SetDefault("cache.maxEntries", 1000)

	maxEntries, err := va.GetInt("cache.maxEntries")
	require.NoError(t, err)
	require.Equal(t, 16, maxEntries)
}

func TestViperAdapter_UnmarshalKey(t *testing.T) {
	type rotation struct {
		MaxSize    BytesCount `mapstructure:"maxSize"`
		MaxSizeInt BytesCount `mapstructure:"maxSizeInt"`
	}

	va := NewViperAdapter()
	require.NoError(t, va.SetFromReader(bytes.NewBufferString(testCacheConfigYAML), DataTypeYAML))

	var got rotation
	require.NoError(t, va.UnmarshalKey("log.rotation", &got, WithTextUnmarshalerHook()))
	require.Equal(t, rotation{MaxSize: 250 * 1024 * 1024, MaxSizeInt: 1024}, got)

	var cacheSection struct {
		EntryDuration TimeDuration `mapstructure:"entryDuration"`
	}
	dp := NewKeyPrefixedDataProvider(va, "cache")
	require.NoError(t, dp.UnmarshalKey("", &cacheSection, WithTextUnmarshalerHook()))
	require.Equal(t, TimeDuration(90*time.Minute), cacheSection.EntryDuration)
}

func TestViperAdapter_GetInt_InvalidValue(t *testing.T) {
	va := NewViperAdapter()
	va.Set("cache.maxEntries", "many")

	_, err := va.GetInt("cache.maxEntries")
	require.Error(t, err)

	var keyErr *KeyError
	require.ErrorAs(t, err, &keyErr)
	require.Equal(t, "cache.maxEntries", keyErr.Key)
}
