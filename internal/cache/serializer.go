package cache

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/shopspring/decimal"
	"watchcatalog.app/pkg/errors"
)

// Envelope kinds. The variant set is closed: a value is classified exactly
// once and the discriminant is stored alongside the payload, so decoding
// never has to guess what shape the bytes held.
const (
	kindScalar  = "scalar"
	kindDecimal = "decimal"
	kindSeq     = "seq"
	kindMapping = "map"
	kindRecord  = "record"
)

type envelope struct {
	Kind  string          `json:"k"`
	Value json.RawMessage `json:"v"`
}

// Serializer converts supported application values to and from the byte
// encoding stored in the cache. Supported shapes: scalars, decimals
// (encoded as strings to preserve precision), slices/arrays, string-keyed
// maps, and record structs. Anything else is a serialization error naming
// the offending type.
//
// Serializer is pure: failures never touch the store.
type Serializer struct{}

func NewSerializer() *Serializer {
	return &Serializer{}
}

// Serialize encodes value into its transportable envelope form.
func (s *Serializer) Serialize(value interface{}) ([]byte, error) {
	kind, err := classify(value)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return nil, errors.NewSerializationError(
			fmt.Sprintf("failed to encode value of type %T", value), err)
	}

	data, err := json.Marshal(envelope{Kind: kind, Value: payload})
	if err != nil {
		return nil, errors.NewSerializationError("failed to encode envelope", err)
	}
	return data, nil
}

// Deserialize decodes an envelope back into its generic value shape:
// scalars as themselves, decimals as decimal.Decimal, sequences as
// []interface{}, mappings and records as map[string]interface{}.
func (s *Serializer) Deserialize(data []byte) (interface{}, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}

	switch env.Kind {
	case kindScalar:
		var out interface{}
		if err := json.Unmarshal(env.Value, &out); err != nil {
			return nil, errors.NewDeserializationError("malformed scalar payload", err)
		}
		return out, nil

	case kindDecimal:
		var text string
		if err := json.Unmarshal(env.Value, &text); err != nil {
			return nil, errors.NewDeserializationError("malformed decimal payload", err)
		}
		d, err := decimal.NewFromString(text)
		if err != nil {
			return nil, errors.NewDeserializationError("invalid decimal value", err)
		}
		return d, nil

	case kindSeq:
		var out []interface{}
		if err := json.Unmarshal(env.Value, &out); err != nil {
			return nil, errors.NewDeserializationError("malformed sequence payload", err)
		}
		return out, nil

	case kindMapping, kindRecord:
		var out map[string]interface{}
		if err := json.Unmarshal(env.Value, &out); err != nil {
			return nil, errors.NewDeserializationError("malformed mapping payload", err)
		}
		return out, nil

	default:
		return nil, errors.NewDeserializationError(
			fmt.Sprintf("unknown envelope kind %q", env.Kind), nil)
	}
}

// DeserializeInto decodes an envelope payload into a typed target, which
// must be a non-nil pointer.
func (s *Serializer) DeserializeInto(data []byte, target interface{}) error {
	if target == nil {
		return errors.NewValidationError("deserialization target cannot be nil")
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.NewValidationError("deserialization target must be a non-nil pointer")
	}

	env, err := decodeEnvelope(data)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(env.Value, target); err != nil {
		return errors.NewDeserializationError(
			fmt.Sprintf("failed to decode payload into %T", target), err)
	}
	return nil
}

func decodeEnvelope(data []byte) (*envelope, error) {
	if len(data) == 0 {
		return nil, errors.NewDeserializationError("empty cache entry", nil)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.NewDeserializationError("malformed envelope", err)
	}
	if env.Kind == "" || env.Value == nil {
		return nil, errors.NewDeserializationError("truncated envelope", nil)
	}
	return &env, nil
}

// classify resolves the envelope kind for value, walking nested elements
// so that an unsupported type anywhere is reported before any bytes are
// produced.
func classify(value interface{}) (string, error) {
	if value == nil {
		return kindScalar, nil
	}

	switch d := value.(type) {
	case decimal.Decimal:
		return kindDecimal, nil
	case *decimal.Decimal:
		if d == nil {
			return kindScalar, nil
		}
		return kindDecimal, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return kindScalar, nil

	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return kindScalar, nil
		}
		return classify(rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return kindSeq, nil
		}
		for i := 0; i < rv.Len(); i++ {
			if _, err := classify(rv.Index(i).Interface()); err != nil {
				return "", err
			}
		}
		return kindSeq, nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return "", errors.NewSerializationError(
				fmt.Sprintf("unsupported map key type in %T: mappings must be string-keyed", value), nil)
		}
		iter := rv.MapRange()
		for iter.Next() {
			if _, err := classify(iter.Value().Interface()); err != nil {
				return "", err
			}
		}
		return kindMapping, nil

	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			if !rt.Field(i).IsExported() {
				continue
			}
			if _, err := classify(rv.Field(i).Interface()); err != nil {
				return "", err
			}
		}
		return kindRecord, nil

	default:
		return "", errors.NewSerializationError(
			fmt.Sprintf("unsupported type %T", value), nil)
	}
}
