// Package method defines the static binding between a JSON-RPC wire method
// name and its parameter and result shapes.
//
// A Method is a compile-time descriptor: the name is fixed for the lifetime
// of the descriptor, and serialization of both shapes is owned by the
// descriptor's hooks. The rest of the engine only ever sees opaque
// json.RawMessage payloads.
package method

import (
	"encoding/json"
	"fmt"
)

// Codec converts a value of type T to and from its wire representation.
type Codec[T any] struct {
	Encode func(T) (json.RawMessage, error)
	Decode func(json.RawMessage) (T, error)
}

// JSONCodec returns a codec backed by encoding/json.
func JSONCodec[T any]() Codec[T] {
	return Codec[T]{
		Encode: func(v T) (json.RawMessage, error) {
			return json.Marshal(v)
		},
		Decode: func(data json.RawMessage) (T, error) {
			var v T
			if err := json.Unmarshal(data, &v); err != nil {
				return v, err
			}
			return v, nil
		},
	}
}

// Method describes a JSON-RPC method with parameter shape P and result
// shape R.
type Method[P, R any] struct {
	name   string
	params Codec[P]
	result Codec[R]
}

// New creates a method descriptor using encoding/json for both shapes.
func New[P, R any](name string) Method[P, R] {
	return NewWithCodecs(name, JSONCodec[P](), JSONCodec[R]())
}

// NewWithCodecs creates a method descriptor with custom serialization hooks.
// Used by methods whose wire representation differs from the default JSON
// encoding of their Go shapes (e.g. hex-encoded byte strings).
func NewWithCodecs[P, R any](name string, params Codec[P], result Codec[R]) Method[P, R] {
	return Method[P, R]{name: name, params: params, result: result}
}

// Name returns the wire method name.
func (m Method[P, R]) Name() string {
	return m.name
}

// EncodeParams serializes params into an opaque JSON value.
func (m Method[P, R]) EncodeParams(params P) (json.RawMessage, error) {
	data, err := m.params.Encode(params)
	if err != nil {
		return nil, fmt.Errorf("%s: encode params: %w", m.name, err)
	}
	return data, nil
}

// DecodeParams parses an opaque JSON value back into the parameter shape.
func (m Method[P, R]) DecodeParams(data json.RawMessage) (P, error) {
	params, err := m.params.Decode(data)
	if err != nil {
		var zero P
		return zero, fmt.Errorf("%s: decode params: %w", m.name, err)
	}
	return params, nil
}

// EncodeResult serializes a result value into an opaque JSON value.
func (m Method[P, R]) EncodeResult(result R) (json.RawMessage, error) {
	data, err := m.result.Encode(result)
	if err != nil {
		return nil, fmt.Errorf("%s: encode result: %w", m.name, err)
	}
	return data, nil
}

// DecodeResult parses an opaque JSON value back into the result shape.
func (m Method[P, R]) DecodeResult(data json.RawMessage) (R, error) {
	result, err := m.result.Decode(data)
	if err != nil {
		var zero R
		return zero, fmt.Errorf("%s: decode result: %w", m.name, err)
	}
	return result, nil
}

// Bound is a type-erased (descriptor, params) pair. It is what heterogeneous
// batches are made of: the engine can encode the request and decode the
// matching result without knowing the concrete shapes.
type Bound struct {
	name   string
	encode func() (json.RawMessage, error)
	decode func(json.RawMessage) (any, error)
}

// Bind associates a descriptor with a concrete parameter value.
func Bind[P, R any](m Method[P, R], params P) Bound {
	return Bound{
		name: m.name,
		encode: func() (json.RawMessage, error) {
			return m.EncodeParams(params)
		},
		decode: func(data json.RawMessage) (any, error) {
			return m.DecodeResult(data)
		},
	}
}

// Name returns the wire method name of the bound call.
func (b Bound) Name() string {
	return b.name
}

// EncodeParams serializes the bound parameter value.
func (b Bound) EncodeParams() (json.RawMessage, error) {
	return b.encode()
}

// DecodeResult parses a result payload into the bound result shape.
func (b Bound) DecodeResult(data json.RawMessage) (any, error) {
	return b.decode(data)
}

// As recovers a typed result from a type-erased batch outcome.
func As[R any](v any) (R, error) {
	result, ok := v.(R)
	if !ok {
		var zero R
		return zero, fmt.Errorf("unexpected result type %T", v)
	}
	return result, nil
}
