/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"io"
	"time"

	"github.com/mitchellh/mapstructure"
)

// DataType is a format of configuration data.
type DataType string

const (
	DataTypeYAML DataType = "yaml"
	DataTypeJSON DataType = "json"
)

// DataProvider is a source of configuration values addressed by dot-separated keys.
// Getters return a *KeyError when the stored value cannot be converted to the requested type.
type DataProvider interface {
	// Loading.
	UseEnvVars(prefix string)
	SetFromFile(path string, dataType DataType) error
	SetFromReader(reader io.Reader, dataType DataType) error

	// Writing. Values passed to Set take precedence over everything else,
	// values passed to SetDefault are used only when no other source has the key.
	Set(key string, value interface{})
	SetDefault(key string, value interface{})

	// Reading.
	IsSet(key string) bool
	Get(key string) interface{}
	GetBool(key string) (bool, error)
	GetInt(key string) (int, error)
	GetString(key string) (string, error)
	GetStringFromSet(key string, set []string, ignoreCase bool) (string, error)
	GetDuration(key string) (time.Duration, error)
	GetBytesCount(key string) (BytesCount, error)
	UnmarshalKey(key string, rawVal interface{}, opts ...DecoderConfigOption) error

	WrapKeyErr(key string, err error) error
}

// DecoderConfigOption tunes the mapstructure decoder used by UnmarshalKey.
type DecoderConfigOption func(*mapstructure.DecoderConfig)

// WithDecodeHook sets the decode hook applied by UnmarshalKey.
func WithDecodeHook(hook mapstructure.DecodeHookFunc) DecoderConfigOption {
	return func(c *mapstructure.DecoderConfig) {
		c.DecodeHook = hook
	}
}

// WithTextUnmarshalerHook makes UnmarshalKey decode strings into fields implementing encoding.TextUnmarshaler,
// such as BytesCount and TimeDuration.
func WithTextUnmarshalerHook() DecoderConfigOption {
	return WithDecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}
