/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package config

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"gopkg.in/yaml.v3"
)

// BytesCount is a size in bytes. In JSON, YAML and text it may be written
// as a plain number or in a human-readable form ("250M", "1Gi").
// It is always encoded in the human-readable form.
type BytesCount uint64

func (b *BytesCount) UnmarshalText(text []byte) error {
	v, err := parseBytesCount(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (b *BytesCount) UnmarshalJSON(data []byte) error {
	return b.UnmarshalText(bytes.Trim(data, `"`))
}

func (b *BytesCount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("invalid bytes count: scalar expected at line %d", node.Line)
	}
	return b.UnmarshalText([]byte(node.Value))
}

func (b BytesCount) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b BytesCount) String() string {
	return bytefmt.ByteSize(uint64(b))
}

// TimeDuration is a time.Duration that may be written as a Go duration string ("1h30m")
// or as a non-negative number of nanoseconds.
// It is always encoded as a Go duration string.
type TimeDuration time.Duration

func (d *TimeDuration) UnmarshalText(text []byte) error {
	v, err := parseTimeDuration(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d *TimeDuration) UnmarshalJSON(data []byte) error {
	return d.UnmarshalText(bytes.Trim(data, `"`))
}

func (d *TimeDuration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("invalid time duration: scalar expected at line %d", node.Line)
	}
	return d.UnmarshalText([]byte(node.Value))
}

func (d TimeDuration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d TimeDuration) String() string {
	return time.Duration(d).String()
}

func parseTimeDuration(s string) (TimeDuration, error) {
	s = strings.TrimSpace(s)
	if num, err := strconv.ParseInt(s, 10, 64); err == nil {
		if num < 0 {
			return 0, fmt.Errorf("negative value is not allowed: %d", num)
		}
		return TimeDuration(num), nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid time duration %q: %w", s, err)
	}
	return TimeDuration(dur), nil
}

// k8sByteSuffixes are power-of-two suffixes that bytefmt understands without the trailing "i".
var k8sByteSuffixes = [...]string{"Ki", "Mi", "Gi", "Ti", "Pi", "Ei"}

func parseBytesCount(s string) (BytesCount, error) {
	v := strings.TrimSpace(s)
	if num, err := strconv.ParseUint(v, 10, 64); err == nil {
		return BytesCount(num), nil
	}
	for _, suffix := range k8sByteSuffixes {
		if strings.HasSuffix(v, suffix) {
			v = strings.TrimSuffix(v, "i")
			break
		}
	}
	num, err := bytefmt.ToBytes(v)
	if err != nil {
		return 0, fmt.Errorf("invalid bytes count %q: %w", s, err)
	}
	return BytesCount(num), nil
}
