/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// ViperAdapter is a DataProvider backed by viper. Values are converted with spf13/cast.
type ViperAdapter struct {
	viper *viper.Viper
}

var _ DataProvider = (*ViperAdapter)(nil)

// NewViperAdapter creates a new ViperAdapter with its own viper instance.
func NewViperAdapter() *ViperAdapter {
	return &ViperAdapter{viper: viper.New()}
}

// UseEnvVars makes every key resolvable from the environment.
// With the prefix "myapp" the key "cache.maxEntries" is looked up as MYAPP_CACHE_MAXENTRIES.
func (va *ViperAdapter) UseEnvVars(prefix string) {
	va.viper.SetEnvPrefix(prefix)
	va.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	va.viper.AutomaticEnv()
}

func (va *ViperAdapter) SetFromFile(path string, dataType DataType) error {
	va.viper.SetConfigFile(path)
	va.viper.SetConfigType(string(dataType))
	return va.viper.ReadInConfig()
}

func (va *ViperAdapter) SetFromReader(reader io.Reader, dataType DataType) error {
	va.viper.SetConfigType(string(dataType))
	return va.viper.ReadConfig(reader)
}

func (va *ViperAdapter) Set(key string, value interface{}) {
	va.viper.Set(key, value)
}

func (va *ViperAdapter) SetDefault(key string, value interface{}) {
	va.viper.SetDefault(key, value)
}

func (va *ViperAdapter) IsSet(key string) bool {
	return va.viper.IsSet(key)
}

func (va *ViperAdapter) Get(key string) interface{} {
	return va.viper.Get(key)
}

func (va *ViperAdapter) GetBool(key string) (bool, error) {
	return castKey(va, key, cast.ToBoolE)
}

func (va *ViperAdapter) GetInt(key string) (int, error) {
	return castKey(va, key, cast.ToIntE)
}

func (va *ViperAdapter) GetString(key string) (string, error) {
	return castKey(va, key, cast.ToStringE)
}

// GetStringFromSet returns the string value of the key if it is one of set.
// With ignoreCase the value is returned as stored, not as spelled in set.
func (va *ViperAdapter) GetStringFromSet(key string, set []string, ignoreCase bool) (string, error) {
	val, err := va.GetString(key)
	if err != nil {
		return "", err
	}
	equal := func(s string) bool { return s == val }
	if ignoreCase {
		equal = func(s string) bool { return strings.EqualFold(s, val) }
	}
	for _, s := range set {
		if equal(s) {
			return val, nil
		}
	}
	return "", WrapKeyErr(key, fmt.Errorf("unknown value %q, should be one of %v", val, set))
}

// GetDuration returns 0 for a missing key. Strings are parsed with time.ParseDuration,
// numbers are treated as nanoseconds.
func (va *ViperAdapter) GetDuration(key string) (time.Duration, error) {
	if va.Get(key) == nil {
		return 0, nil
	}
	return castKey(va, key, cast.ToDurationE)
}

// GetBytesCount returns 0 for a missing key.
// Both numbers and human-readable strings (e.g. "250M", "1Gi") are accepted.
func (va *ViperAdapter) GetBytesCount(key string) (BytesCount, error) {
	switch v := va.Get(key).(type) {
	case nil:
		return 0, nil
	case BytesCount:
		return v, nil
	case string:
		res, err := parseBytesCount(v)
		return res, WrapKeyErrIfNeeded(key, err)
	default:
		num, err := cast.ToInt64E(v)
		if err != nil {
			return 0, WrapKeyErr(key, fmt.Errorf("unsupported type for bytes count: %T", v))
		}
		if num < 0 {
			return 0, WrapKeyErr(key, fmt.Errorf("negative value is not allowed: %d", num))
		}
		return BytesCount(num), nil
	}
}

// UnmarshalKey decodes the subtree under the key into rawVal using mapstructure.
func (va *ViperAdapter) UnmarshalKey(key string, rawVal interface{}, opts ...DecoderConfigOption) error {
	viperOpts := make([]viper.DecoderConfigOption, 0, len(opts))
	for _, opt := range opts {
		viperOpts = append(viperOpts, viper.DecoderConfigOption(opt))
	}
	return WrapKeyErrIfNeeded(key, va.viper.UnmarshalKey(key, rawVal, viperOpts...))
}

func (va *ViperAdapter) WrapKeyErr(key string, err error) error {
	return WrapKeyErr(key, err)
}

func castKey[T any](va *ViperAdapter, key string, conv func(interface{}) (T, error)) (T, error) {
	res, err := conv(va.Get(key))
	if err != nil {
		var zero T
		return zero, WrapKeyErr(key, err)
	}
	return res, nil
}
