/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
)

const envTagName = "env"

// SetFromEnv fills exported fields of the struct pointed to by obj from environment variables.
// A field takes part only if it has an `env:"VARIABLE_NAME"` tag.
// Fields whose variable is not set keep their current value.
//
// Supported field kinds are string, bool, signed and unsigned integers, floats, time.Duration
// and []string (comma-separated or space-separated value).
func SetFromEnv(obj interface{}) error {
	ptr := reflect.ValueOf(obj)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() || ptr.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("expected non-nil pointer to struct, got %T", obj)
	}
	el := ptr.Elem()
	for i := 0; i < el.NumField(); i++ {
		field := el.Type().Field(i)
		name, ok := field.Tag.Lookup(envTagName)
		if !ok || name == "" || !field.IsExported() {
			continue
		}
		raw, found := os.LookupEnv(name)
		if !found {
			continue
		}
		if err := setFieldFromString(el.Field(i), raw); err != nil {
			return WrapKeyErr(name, err)
		}
	}
	return nil
}

var durationType = reflect.TypeOf(time.Duration(0))

func setFieldFromString(v reflect.Value, raw string) error {
	if v.Type() == durationType {
		d, err := cast.ToDurationE(raw)
		if err != nil {
			return err
		}
		v.SetInt(int64(d))
		return nil
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Bool:
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := cast.ToInt64E(raw)
		if err != nil {
			return err
		}
		if v.OverflowInt(n) {
			return fmt.Errorf("value %d overflows %s", n, v.Type())
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := cast.ToUint64E(raw)
		if err != nil {
			return err
		}
		if v.OverflowUint(n) {
			return fmt.Errorf("value %d overflows %s", n, v.Type())
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported field type %s", v.Type())
		}
		v.Set(reflect.ValueOf(splitEnvList(raw)))
	default:
		return fmt.Errorf("unsupported field type %s", v.Type())
	}
	return nil
}

func splitEnvList(raw string) []string {
	var res []string
	for _, part := range cast.ToStringSlice(strings.ReplaceAll(raw, ",", " ")) {
		if part != "" {
			res = append(res, part)
		}
	}
	return res
}
