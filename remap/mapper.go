package remap

import "fmt"

// MapOption configures one top-level decode or encode call.
type MapOption func(*Map)

// WithUserInfo threads an opaque payload into every Map of the call; mapping
// routines read it from Map.UserInfo.
func WithUserInfo(v any) MapOption {
	return func(m *Map) { m.UserInfo = v }
}

// ============================================================
// Decode
// ============================================================

// Decode parses JSON text and runs e's mapping routine in decode direction.
// Per-field failures keep the field's default; only a parse failure or a
// binding usage error (bad key) is returned.
func Decode(text string, e Mappable, opts ...MapOption) error {
	root, err := Parse(text)
	if err != nil {
		return err
	}
	return DecodeValue(root, e, opts...)
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(data []byte, e Mappable, opts ...MapOption) error {
	root, err := ParseBytes(data)
	if err != nil {
		return err
	}
	return DecodeValue(root, e, opts...)
}

// DecodeValue runs e's mapping routine against an already-parsed tree.
func DecodeValue(root *Value, e Mappable, opts ...MapOption) error {
	m := newMap(root, DirectionDecode)
	for _, o := range opts {
		o(m)
	}
	e.MapJSON(m)
	return m.Err()
}

// DecodeSlice parses a JSON array and decodes each element into a T.
func DecodeSlice[T any, PT interface {
	Mappable
	*T
}](text string, opts ...MapOption) ([]T, error) {
	root, err := Parse(text)
	if err != nil {
		return nil, err
	}
	arr, err := root.AsArray()
	if err != nil {
		return nil, fmt.Errorf("remap: top-level value: %w", err)
	}
	out := make([]T, len(arr))
	for i, elem := range arr {
		if err := DecodeValue(elem, PT(&out[i]), opts...); err != nil {
			return nil, fmt.Errorf("remap: element %d: %w", i, err)
		}
	}
	return out, nil
}

// DecodeStrict parses JSON text and constructs a T through a strict factory.
// The first failed required access aborts the whole construction with a
// typed error naming the offending key.
func DecodeStrict[T any](text string, f Factory[T], opts ...MapOption) (T, error) {
	var zero T
	root, err := Parse(text)
	if err != nil {
		return zero, err
	}
	return DecodeStrictValue(root, f, opts...)
}

// DecodeStrictValue is DecodeStrict over an already-parsed tree.
func DecodeStrictValue[T any](root *Value, f Factory[T], opts ...MapOption) (T, error) {
	var zero T
	m := newMap(root, DirectionDecode)
	m.strict = true
	for _, o := range opts {
		o(m)
	}
	out, err := f(m)
	if err != nil {
		return zero, err
	}
	if m.err != nil {
		return zero, m.err
	}
	return out, nil
}

// DecodePoly parses JSON text, lets pick inspect the tree to select a
// concrete Mappable (class-cluster style, typically on a discriminant
// member), then decodes into it.
func DecodePoly(text string, pick func(root *Value) (Mappable, error), opts ...MapOption) (Mappable, error) {
	root, err := Parse(text)
	if err != nil {
		return nil, err
	}
	e, err := pick(root)
	if err != nil {
		return nil, err
	}
	if err := DecodeValue(root, e, opts...); err != nil {
		return nil, err
	}
	return e, nil
}

// ============================================================
// Encode
// ============================================================

// Encode runs e's mapping routine in encode direction and returns the built
// tree.
func Encode(e Mappable, opts ...MapOption) (*Value, error) {
	m := newMap(Object(), DirectionEncode)
	for _, o := range opts {
		o(m)
	}
	e.MapJSON(m)
	if err := m.Err(); err != nil {
		return nil, err
	}
	return m.root, nil
}

// EncodeString encodes e to JSON text, compact or pretty.
func EncodeString(e Mappable, pretty bool, opts ...MapOption) (string, error) {
	v, err := Encode(e, opts...)
	if err != nil {
		return "", err
	}
	if pretty {
		return SerializePretty(v), nil
	}
	return Serialize(v), nil
}

// EncodeSlice encodes an ordered sequence of entities to a JSON array.
func EncodeSlice[T any, PT interface {
	Mappable
	*T
}](items []T, pretty bool, opts ...MapOption) (string, error) {
	arr := Array()
	for i := range items {
		v, err := Encode(PT(&items[i]), opts...)
		if err != nil {
			return "", fmt.Errorf("remap: element %d: %w", i, err)
		}
		arr.arrVal = append(arr.arrVal, v)
	}
	if pretty {
		return SerializePretty(arr), nil
	}
	return Serialize(arr), nil
}
