package cache

import (
	"crypto/md5" //nolint:gosec // cache keys are not a security boundary
	"encoding/hex"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"watchcatalog.app/pkg/errors"
)

// KeyDeriver produces stable cache keys from an operation prefix and its
// call arguments. Identical inputs always yield identical keys, within a
// process and across restarts: the rendered form of an argument depends
// only on its value, never on memory addresses or iteration order.
//
// Arguments must be plain data (scalars, strings, slices, string-keyed
// maps, structs of plain data). Functions, channels and other non-data
// kinds are rejected with a configuration error.
type KeyDeriver struct{}

func NewKeyDeriver() *KeyDeriver {
	return &KeyDeriver{}
}

// Derive builds a key of the form "{prefix}:{hexdigest}" where the digest
// covers the positional arguments followed by the named arguments sorted
// by name.
func (d *KeyDeriver) Derive(prefix string, args []interface{}, named map[string]interface{}) (string, error) {
	if prefix == "" {
		return "", errors.NewValidationError("key prefix cannot be empty")
	}

	var b strings.Builder
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := renderValue(&b, arg); err != nil {
			return "", err
		}
	}
	b.WriteByte(')')

	if len(named) > 0 {
		names := make([]string, 0, len(named))
		for name := range named {
			names = append(names, name)
		}
		sort.Strings(names)

		b.WriteByte('[')
		for i, name := range names {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(name)
			b.WriteByte('=')
			if err := renderValue(&b, named[name]); err != nil {
				return "", err
			}
		}
		b.WriteByte(']')
	}

	sum := md5.Sum([]byte(b.String())) //nolint:gosec
	return prefix + ":" + hex.EncodeToString(sum[:]), nil
}

// renderValue writes a deterministic textual form of v into b.
func renderValue(b *strings.Builder, v interface{}) error {
	if v == nil {
		b.WriteString("nil")
		return nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		fmt.Fprintf(b, "%v", v)
		return nil

	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			b.WriteString("nil")
			return nil
		}
		return renderValue(b, rv.Elem().Interface())

	case reflect.Slice:
		if rv.IsNil() {
			b.WriteString("nil")
			return nil
		}
		return renderSequence(b, rv)

	case reflect.Array:
		return renderSequence(b, rv)

	case reflect.Map:
		return renderMap(b, rv)

	case reflect.Struct:
		return renderStruct(b, rv)

	default:
		// func, chan, unsafe pointer: no stable value-based rendering exists
		return errors.NewConfigurationError(
			fmt.Sprintf("cache argument of type %T is not plain data", v), nil)
	}
}

func renderSequence(b *strings.Builder, rv reflect.Value) error {
	b.WriteByte('[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := renderValue(b, rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	b.WriteByte(']')
	return nil
}

// renderMap writes map entries sorted by their rendered key, so that
// Go's randomized map iteration order never leaks into the digest.
func renderMap(b *strings.Builder, rv reflect.Value) error {
	if rv.IsNil() {
		b.WriteString("nil")
		return nil
	}

	type pair struct {
		key   string
		value interface{}
	}

	pairs := make([]pair, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		var kb strings.Builder
		if err := renderValue(&kb, iter.Key().Interface()); err != nil {
			return err
		}
		pairs = append(pairs, pair{key: kb.String(), value: iter.Value().Interface()})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	b.WriteString("map{")
	for i, p := range pairs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.key)
		b.WriteByte(':')
		if err := renderValue(b, p.value); err != nil {
			return err
		}
	}
	b.WriteByte('}')
	return nil
}

// renderStruct prefers a value-based Stringer (decimal.Decimal, time.Time)
// and otherwise descends into exported fields in declaration order.
func renderStruct(b *strings.Builder, rv reflect.Value) error {
	if s, ok := rv.Interface().(fmt.Stringer); ok {
		b.WriteString(s.String())
		return nil
	}

	rt := rv.Type()
	b.WriteString(rt.Name())
	b.WriteByte('{')
	written := 0
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		if written > 0 {
			b.WriteString(", ")
		}
		b.WriteString(field.Name)
		b.WriteByte(':')
		if err := renderValue(b, rv.Field(i).Interface()); err != nil {
			return err
		}
		written++
	}
	b.WriteByte('}')
	return nil
}
