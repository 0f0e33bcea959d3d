// Package cache implements the generic memoization core: deterministic
// key derivation from call arguments, envelope serialization of
// heterogeneous results, and best-effort write-through caching of
// asynchronous operations against a key-value store.
//
// Caching is transparent: no failure inside the pipeline changes the
// caller-visible outcome versus running the operation uncached. The one
// exception is a wiring defect (unset provider, non-data arguments),
// which surfaces as a configuration error.
package cache

import (
	"context"
	"time"

	"watchcatalog.app/internal/ports"
	"watchcatalog.app/pkg/errors"
	"watchcatalog.app/pkg/logger"
)

// Memoizer wraps operations so that repeated calls with equivalent
// arguments are served from the store until the entry's TTL elapses.
//
// There is no single-flight de-duplication: concurrent calls racing on
// the same missing key each execute the backing operation and each
// attempt the write, last writer wins. Callers must not assume
// at-most-once execution.
type Memoizer struct {
	store         ports.CacheProvider
	serializer    ports.CacheSerializer
	keys          ports.KeyDeriver
	metrics       ports.CacheMetrics
	log           *logger.Logger
	defaultExpiry time.Duration
}

// MemoizerOption customizes a Memoizer at construction time.
type MemoizerOption func(*Memoizer)

// WithSerializer replaces the default envelope serializer.
func WithSerializer(s ports.CacheSerializer) MemoizerOption {
	return func(m *Memoizer) {
		m.serializer = s
	}
}

// WithKeyDeriver replaces the default key deriver.
func WithKeyDeriver(k ports.KeyDeriver) MemoizerOption {
	return func(m *Memoizer) {
		m.keys = k
	}
}

// WithMetrics attaches a hit/miss/latency collector.
func WithMetrics(metrics ports.CacheMetrics) MemoizerOption {
	return func(m *Memoizer) {
		m.metrics = metrics
	}
}

// WithDefaultExpiry overrides the TTL used when an operation does not
// configure its own.
func WithDefaultExpiry(d time.Duration) MemoizerOption {
	return func(m *Memoizer) {
		m.defaultExpiry = d
	}
}

// NewMemoizer creates a memoizer over the given store.
func NewMemoizer(store ports.CacheProvider, log *logger.Logger, opts ...MemoizerOption) (*Memoizer, error) {
	if store == nil {
		return nil, errors.NewConfigurationError("cache store cannot be nil", nil)
	}
	if log == nil {
		log = logger.New()
	}

	m := &Memoizer{
		store:         store,
		serializer:    NewSerializer(),
		keys:          NewKeyDeriver(),
		log:           log,
		defaultExpiry: DefaultExpiry,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Named carries by-name arguments through FuncN. When the final argument
// of a FuncN call is a Named map, its entries are hashed sorted by name
// so that argument order never changes the key.
type Named map[string]interface{}

// Func0 wraps a no-argument operation.
func Func0[R any](m *Memoizer, name string, op func(context.Context) (R, error), opts ...Option) func(context.Context) (R, error) {
	cfg := m.newOpConfig(name, opts...)
	return func(ctx context.Context) (R, error) {
		return run(m, cfg, ctx, nil, op)
	}
}

// Func1 wraps a single-argument operation.
func Func1[A, R any](m *Memoizer, name string, op func(context.Context, A) (R, error), opts ...Option) func(context.Context, A) (R, error) {
	cfg := m.newOpConfig(name, opts...)
	return func(ctx context.Context, a A) (R, error) {
		return run(m, cfg, ctx, []interface{}{a}, func(ctx context.Context) (R, error) {
			return op(ctx, a)
		})
	}
}

// Func2 wraps a two-argument operation.
func Func2[A, B, R any](m *Memoizer, name string, op func(context.Context, A, B) (R, error), opts ...Option) func(context.Context, A, B) (R, error) {
	cfg := m.newOpConfig(name, opts...)
	return func(ctx context.Context, a A, b B) (R, error) {
		return run(m, cfg, ctx, []interface{}{a, b}, func(ctx context.Context) (R, error) {
			return op(ctx, a, b)
		})
	}
}

// FuncN wraps a variadic operation. A trailing Named argument is treated
// as the by-name argument set.
func FuncN[R any](m *Memoizer, name string, op func(context.Context, ...interface{}) (R, error), opts ...Option) func(context.Context, ...interface{}) (R, error) {
	cfg := m.newOpConfig(name, opts...)
	return func(ctx context.Context, args ...interface{}) (R, error) {
		return run(m, cfg, ctx, args, func(ctx context.Context) (R, error) {
			return op(ctx, args...)
		})
	}
}

// run executes the memoization protocol: derive key, look up, decode on
// hit; on miss invoke the operation, then serialize and write through.
// Every store or codec failure degrades to the live result.
func run[R any](m *Memoizer, cfg opConfig, ctx context.Context, args []interface{}, invoke func(context.Context) (R, error)) (R, error) {
	var zero R

	positional, named := splitNamed(args)
	key, err := m.keys.Derive(cfg.prefix, positional, named)
	if err != nil {
		// Non-data arguments are a programming error, not a cache hiccup.
		return zero, err
	}

	hit := new(R)
	if m.lookup(ctx, key, hit) {
		return *hit, nil
	}

	result, err := invoke(ctx)
	if err != nil {
		// Backing operation errors propagate untouched.
		return zero, err
	}

	if cfg.excludesResult(result) {
		return result, nil
	}

	payload, err := m.serializer.Serialize(result)
	if err != nil {
		m.log.Error("result serialization failed, returning uncached", "key", key, "error", err)
		return result, nil
	}

	start := time.Now()
	if err := m.store.Set(ctx, key, payload, cfg.expiry); err != nil {
		m.log.Error("cache write failed", "key", key, "error", err)
	}
	m.recordOperation("set", time.Since(start))

	return result, nil
}

// lookup attempts a hit: fetch the entry and decode it into target.
// Store failures and undecodable entries are logged and reported as a
// miss, never to the caller.
func (m *Memoizer) lookup(ctx context.Context, key string, target interface{}) bool {
	start := time.Now()
	data, err := m.store.Get(ctx, key)
	m.recordOperation("get", time.Since(start))

	if err != nil {
		if !errors.IsType(err, errors.ErrorTypeNotFound) {
			m.log.Error("cache lookup failed, treating as miss", "key", key, "error", err)
		}
		m.recordMiss()
		return false
	}
	if len(data) == 0 {
		m.recordMiss()
		return false
	}

	if err := m.serializer.DeserializeInto(data, target); err != nil {
		m.log.Error("cached entry could not be decoded, treating as miss", "key", key, "error", err)
		m.recordMiss()
		return false
	}

	m.recordHit()
	return true
}

func splitNamed(args []interface{}) ([]interface{}, map[string]interface{}) {
	if len(args) == 0 {
		return nil, nil
	}
	if named, ok := args[len(args)-1].(Named); ok {
		return args[:len(args)-1], named
	}
	return args, nil
}

func (m *Memoizer) recordHit() {
	if m.metrics != nil {
		m.metrics.RecordHit()
	}
}

func (m *Memoizer) recordMiss() {
	if m.metrics != nil {
		m.metrics.RecordMiss()
	}
}

func (m *Memoizer) recordOperation(operation string, duration time.Duration) {
	if m.metrics != nil {
		m.metrics.RecordOperation(operation, duration)
	}
}
