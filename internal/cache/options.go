package cache

import (
	"reflect"
	"time"
)

// DefaultExpiry is the TTL applied to entries when no override is given.
const DefaultExpiry = 15 * time.Minute

// nilResult is the marker matched by NilResult.
type nilResult struct{}

// NilResult is the sentinel type for "the operation returned nothing":
// a nil pointer, nil slice, nil map or nil interface. Passing it to
// WithExcludeResultTypes keeps not-found sentinels out of the store.
var NilResult = reflect.TypeOf(nilResult{})

// TypeOf resolves the reflect.Type of T for use with WithExcludeResultTypes.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// opConfig is the immutable per-operation configuration, set once at wrap
// time and never mutated afterwards.
type opConfig struct {
	prefix       string
	expiry       time.Duration
	excludeTypes []reflect.Type
}

// Option customizes a single wrapped operation.
type Option func(*opConfig)

// WithExpiry overrides the TTL for entries written by this operation.
func WithExpiry(d time.Duration) Option {
	return func(c *opConfig) {
		c.expiry = d
	}
}

// WithPrefix overrides the key namespace, which otherwise defaults to the
// operation name given at wrap time.
func WithPrefix(prefix string) Option {
	return func(c *opConfig) {
		c.prefix = prefix
	}
}

// WithExcludeResultTypes lists runtime result types that are returned to
// the caller but never written to the store.
func WithExcludeResultTypes(types ...reflect.Type) Option {
	return func(c *opConfig) {
		c.excludeTypes = append(c.excludeTypes, types...)
	}
}

func (m *Memoizer) newOpConfig(name string, opts ...Option) opConfig {
	cfg := opConfig{
		prefix: name,
		expiry: m.defaultExpiry,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// excludesResult reports whether the result's runtime type is configured
// as non-cacheable.
func (c *opConfig) excludesResult(v interface{}) bool {
	if len(c.excludeTypes) == 0 {
		return false
	}

	t := resultType(v)
	for _, excluded := range c.excludeTypes {
		if t == excluded {
			return true
		}
	}
	return false
}

func resultType(v interface{}) reflect.Type {
	if v == nil {
		return NilResult
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface, reflect.Chan, reflect.Func:
		if rv.IsNil() {
			return NilResult
		}
	}
	return reflect.TypeOf(v)
}
