/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package log

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// CallIDKey is the log field key under which the call id is stored.
const CallIDKey = "callId"

type ctxKeyScope struct{}

// scope is an immutable set of string log fields attached to a context.
// Keys keep the order in which they were first added.
type scope struct {
	keys   []string
	values map[string]string
}

func scopeFromContext(ctx context.Context) *scope {
	s, _ := ctx.Value(ctxKeyScope{}).(*scope)
	return s
}

func (s *scope) with(fields map[string]string, order []string) *scope {
	res := &scope{values: make(map[string]string, len(fields))}
	if s != nil {
		res.keys = append(res.keys, s.keys...)
		for k, v := range s.values {
			res.values[k] = v
		}
	}
	for _, k := range order {
		if _, exists := res.values[k]; !exists {
			res.keys = append(res.keys, k)
		}
		res.values[k] = fields[k]
	}
	return res
}

// WithLogFields returns a copy of ctx carrying the given log fields in addition to the ones already there.
// A key already present in ctx is shadowed in the returned context only, the parent context is not affected.
// Fields are added in alternating key, value order; a trailing key without a value is ignored.
func WithLogFields(ctx context.Context, keysAndValues ...string) context.Context {
	fields := make(map[string]string, len(keysAndValues)/2)
	order := make([]string, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if _, dup := fields[keysAndValues[i]]; !dup {
			order = append(order, keysAndValues[i])
		}
		fields[keysAndValues[i]] = keysAndValues[i+1]
	}
	if len(order) == 0 {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyScope{}, scopeFromContext(ctx).with(fields, order))
}

// LogFieldValue returns the value of the scoped log field with the given key.
func LogFieldValue(ctx context.Context, key string) (string, bool) {
	s := scopeFromContext(ctx)
	if s == nil {
		return "", false
	}
	v, ok := s.values[key]
	return v, ok
}

// FieldsFromContext returns the log fields scoped to ctx.
func FieldsFromContext(ctx context.Context) []Field {
	s := scopeFromContext(ctx)
	if s == nil {
		return nil
	}
	fields := make([]Field, 0, len(s.keys))
	for _, k := range s.keys {
		fields = append(fields, String(k, s.values[k]))
	}
	return fields
}

// FromContext returns the logger enriched with the log fields scoped to ctx.
func FromContext(ctx context.Context, logger FieldLogger) FieldLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// CallID returns the call id scoped to ctx, or a new one if there is none.
// A newly generated id is not stored anywhere.
func CallID(ctx context.Context) string {
	if id, ok := LogFieldValue(ctx, CallIDKey); ok {
		return id
	}
	return NewCallID()
}

// WithCallID returns a copy of ctx with a new call id in the form "CallId_<random>_<unix millis>".
func WithCallID(ctx context.Context) context.Context {
	return WithLogFields(ctx, CallIDKey, NewCallID())
}

// WithCallIDAsUUID returns a copy of ctx with a new random UUID as call id.
func WithCallIDAsUUID(ctx context.Context) context.Context {
	return WithLogFields(ctx, CallIDKey, uuid.NewString())
}

// NewCallID generates a call id in the form "CallId_<random>_<unix millis>".
func NewCallID() string {
	return fmt.Sprintf("CallId_%d_%d", rand.Uint32(), time.Now().UnixMilli()) //nolint:gosec // not a secret
}
