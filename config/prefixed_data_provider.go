/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"strings"
	"time"
)

// KeyPrefixedDataProvider reads and writes keys of the underlying DataProvider under a fixed prefix.
// Loading methods are passed through unchanged.
type KeyPrefixedDataProvider struct {
	DataProvider
	keyPrefix string
}

// NewKeyPrefixedDataProvider creates a new KeyPrefixedDataProvider.
func NewKeyPrefixedDataProvider(delegate DataProvider, keyPrefix string) *KeyPrefixedDataProvider {
	return &KeyPrefixedDataProvider{DataProvider: delegate, keyPrefix: keyPrefix}
}

func (kp *KeyPrefixedDataProvider) fullKey(key string) string {
	return strings.Trim(kp.keyPrefix+"."+key, ".")
}

func (kp *KeyPrefixedDataProvider) Set(key string, value interface{}) {
	kp.DataProvider.Set(kp.fullKey(key), value)
}

func (kp *KeyPrefixedDataProvider) SetDefault(key string, value interface{}) {
	kp.DataProvider.SetDefault(kp.fullKey(key), value)
}

func (kp *KeyPrefixedDataProvider) IsSet(key string) bool {
	return kp.DataProvider.IsSet(kp.fullKey(key))
}

func (kp *KeyPrefixedDataProvider) Get(key string) interface{} {
	return kp.DataProvider.Get(kp.fullKey(key))
}

func (kp *KeyPrefixedDataProvider) GetBool(key string) (bool, error) {
	return kp.DataProvider.GetBool(kp.fullKey(key))
}

func (kp *KeyPrefixedDataProvider) GetInt(key string) (int, error) {
	return kp.DataProvider.GetInt(kp.fullKey(key))
}

func (kp *KeyPrefixedDataProvider) GetString(key string) (string, error) {
	return kp.DataProvider.GetString(kp.fullKey(key))
}

func (kp *KeyPrefixedDataProvider) GetStringFromSet(key string, set []string, ignoreCase bool) (string, error) {
	return kp.DataProvider.GetStringFromSet(kp.fullKey(key), set, ignoreCase)
}

func (kp *KeyPrefixedDataProvider) GetDuration(key string) (time.Duration, error) {
	return kp.DataProvider.GetDuration(kp.fullKey(key))
}

func (kp *KeyPrefixedDataProvider) GetBytesCount(key string) (BytesCount, error) {
	return kp.DataProvider.GetBytesCount(kp.fullKey(key))
}

func (kp *KeyPrefixedDataProvider) UnmarshalKey(key string, rawVal interface{}, opts ...DecoderConfigOption) error {
	return kp.DataProvider.UnmarshalKey(kp.fullKey(key), rawVal, opts...)
}

func (kp *KeyPrefixedDataProvider) WrapKeyErr(key string, err error) error {
	return WrapKeyErr(kp.fullKey(key), err)
}
