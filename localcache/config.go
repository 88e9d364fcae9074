/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package localcache

import (
	"fmt"
	"time"

	"github.com/acronis/go-localcache/config"
)

const cfgDefaultKeyPrefix = "cache"

const (
	cfgKeyEntryDuration = "entryDuration"
	cfgKeyMaxEntries    = "maxEntries"
)

// Default values.
const (
	DefaultEntryDuration = time.Hour
	DefaultMaxEntries    = 1000
)

// Config represents a set of configuration parameters for the cache.
// It can be loaded with config.Loader from YAML, JSON or environment variables.
type Config struct {
	EntryDuration config.TimeDuration `mapstructure:"entryDuration" yaml:"entryDuration" json:"entryDuration"`
	MaxEntries    int                 `mapstructure:"maxEntries" yaml:"maxEntries" json:"maxEntries"`

	keyPrefix string
}

var _ config.Config = (*Config)(nil)
var _ config.KeyPrefixProvider = (*Config)(nil)

// NewConfig creates a new instance of the Config. An empty keyPrefix means the default one ("cache").
func NewConfig(keyPrefix string) *Config {
	return &Config{keyPrefix: keyPrefix}
}

// NewDefaultConfig creates a new instance of the Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		EntryDuration: config.TimeDuration(DefaultEntryDuration),
		MaxEntries:    DefaultMaxEntries,
	}
}

// KeyPrefix returns a key prefix with which all configuration parameters should be presented.
func (c *Config) KeyPrefix() string {
	if c.keyPrefix == "" {
		return cfgDefaultKeyPrefix
	}
	return c.keyPrefix
}

// SetProviderDefaults sets default configuration values for the cache in config.DataProvider.
func (c *Config) SetProviderDefaults(dp config.DataProvider) {
	dp.SetDefault(cfgKeyEntryDuration, DefaultEntryDuration.String())
	dp.SetDefault(cfgKeyMaxEntries, DefaultMaxEntries)
}

// Set sets cache configuration values from config.DataProvider.
func (c *Config) Set(dp config.DataProvider) error {
	entryDuration, err := dp.GetDuration(cfgKeyEntryDuration)
	if err != nil {
		return err
	}
	if entryDuration < 0 {
		return dp.WrapKeyErr(cfgKeyEntryDuration, fmt.Errorf("should be >= 0"))
	}
	c.EntryDuration = config.TimeDuration(entryDuration)

	if c.MaxEntries, err = dp.GetInt(cfgKeyMaxEntries); err != nil {
		return err
	}
	if c.MaxEntries <= 0 {
		return dp.WrapKeyErr(cfgKeyMaxEntries, ErrInvalidMaxEntries)
	}
	return nil
}

// NewWithConfig creates a new LocalCache from the configuration.
// Entry duration and maximum number of entries in opts are overridden by the configuration.
func NewWithConfig[V any](cfg *Config, opts Options) (*LocalCache[V], error) {
	opts.EntryDuration = time.Duration(cfg.EntryDuration)
	opts.MaxEntries = cfg.MaxEntries
	return NewWithOpts[V](opts)
}
