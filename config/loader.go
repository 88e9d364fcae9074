/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"fmt"
	"io"
)

// Loader fills configuration objects from a DataProvider.
type Loader struct {
	DataProvider DataProvider
}

// NewDefaultLoader creates a Loader backed by viper that also looks up environment variables
// named <ENVVARSPREFIX>_<KEY> (dots in the key are replaced by underscores).
func NewDefaultLoader(envVarsPrefix string) *Loader {
	va := NewViperAdapter()
	va.UseEnvVars(envVarsPrefix)
	return &Loader{DataProvider: va}
}

// NewLoader creates a Loader backed by the given DataProvider.
func NewLoader(dp DataProvider) *Loader {
	return &Loader{DataProvider: dp}
}

// LoadFromFile reads the file and fills the configuration objects.
func (l *Loader) LoadFromFile(path string, dataType DataType, cfg Config, cfgs ...Config) error {
	if err := l.DataProvider.SetFromFile(path, dataType); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return l.apply(append([]Config{cfg}, cfgs...))
}

// LoadFromReader reads the data and fills the configuration objects.
func (l *Loader) LoadFromReader(reader io.Reader, dataType DataType, cfg Config, cfgs ...Config) error {
	if err := l.DataProvider.SetFromReader(reader, dataType); err != nil {
		return fmt.Errorf("read config data: %w", err)
	}
	return l.apply(append([]Config{cfg}, cfgs...))
}

// LoadFromEnv fills the configuration objects from defaults and environment variables only.
// Environment variables must be enabled in the DataProvider (see NewDefaultLoader).
func (l *Loader) LoadFromEnv(cfg Config, cfgs ...Config) error {
	return l.apply(append([]Config{cfg}, cfgs...))
}

// apply registers defaults of all objects before reading any value.
func (l *Loader) apply(cfgs []Config) error {
	providers := make([]DataProvider, len(cfgs))
	for i, cfg := range cfgs {
		providers[i] = l.providerFor(cfg)
		cfg.SetProviderDefaults(providers[i])
	}
	for i, cfg := range cfgs {
		if err := cfg.Set(providers[i]); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) providerFor(cfg Config) DataProvider {
	kp, ok := cfg.(KeyPrefixProvider)
	if !ok || kp.KeyPrefix() == "" {
		return l.DataProvider
	}
	return NewKeyPrefixedDataProvider(l.DataProvider, kp.KeyPrefix())
}
