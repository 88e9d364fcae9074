/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package config loads configuration of library components from files, readers and environment variables.
//
// A component describes its parameters by implementing Config.
// Loader first lets every component register defaults and then asks each of them to read its values,
// so a component may rely on defaults of another one.
package config

import "errors"

// Config is implemented by configuration objects that Loader can fill.
type Config interface {
	SetProviderDefaults(dp DataProvider)
	Set(dp DataProvider) error
}

// KeyPrefixProvider is implemented by configuration objects whose keys live under a common prefix
// (e.g. "cache" for "cache.maxEntries").
type KeyPrefixProvider interface {
	KeyPrefix() string
}

// KeyError reports a configuration key with a missing or malformed value.
type KeyError struct {
	Key string
	Err error
}

func (e *KeyError) Error() string {
	return e.Key + ": " + e.Err.Error()
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

// WrapKeyErr attaches the key to err. The result can be inspected with errors.As(err, **KeyError).
func WrapKeyErr(key string, err error) error {
	var keyErr *KeyError
	if errors.As(err, &keyErr) && keyErr.Key == key {
		return err
	}
	return &KeyError{Key: key, Err: err}
}

// WrapKeyErrIfNeeded works like WrapKeyErr but keeps nil as is.
func WrapKeyErrIfNeeded(key string, err error) error {
	if err == nil {
		return nil
	}
	return WrapKeyErr(key, err)
}
