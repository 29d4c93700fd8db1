package remap

// Strict accessors back the fail-fast construction style: every access
// either yields the value or records a typed error on the cursor, and the
// facade fails the whole construction on the first one. The Opt forms are
// the explicit best-effort escape hatch, returning a caller-chosen fallback
// instead of failing.
//
// These are decode-direction getters; strict types encode through their
// ordinary MapJSON routine, which in encode direction only writes into the
// tree.

// Factory is the strict construction form: the function is the only place
// fields are assigned, and it either returns the finished value or the
// construction fails as a whole.
type Factory[T any] func(m *Map) (T, error)

func reqScalar[T any](m *Map, key string, dec func(*Value) (T, bool), want Kind, opts []FieldOption) T {
	var zero T
	p, ok := m.fieldPath(key, opts)
	if !ok {
		return zero
	}
	v := Resolve(m.root, p)
	if v == nil {
		m.record(&KeyNotFoundError{Key: key})
		return zero
	}
	got, ok := dec(v)
	if !ok {
		m.record(&TypeMismatchError{Key: key, Want: want, Got: v.Kind()})
		return zero
	}
	return got
}

func optScalar[T any](m *Map, key string, fallback T, dec func(*Value) (T, bool), opts []FieldOption) T {
	p, ok := m.fieldPath(key, opts)
	if !ok {
		return fallback
	}
	v := Resolve(m.root, p)
	if v == nil {
		return fallback
	}
	got, ok := dec(v)
	if !ok {
		return fallback
	}
	return got
}

// ReqBool reads a required bool at key, recording the failure otherwise.
func (m *Map) ReqBool(key string, opts ...FieldOption) bool {
	return reqScalar(m, key, asBool, KindBool, opts)
}

// ReqInt reads a required whole-valued number at key.
func (m *Map) ReqInt(key string, opts ...FieldOption) int {
	return reqScalar(m, key, asInt, KindNumber, opts)
}

// ReqInt64 reads a required whole-valued number at key.
func (m *Map) ReqInt64(key string, opts ...FieldOption) int64 {
	return reqScalar(m, key, asInt64, KindNumber, opts)
}

// ReqFloat64 reads a required number at key.
func (m *Map) ReqFloat64(key string, opts ...FieldOption) float64 {
	return reqScalar(m, key, asFloat64, KindNumber, opts)
}

// ReqString reads a required string at key.
func (m *Map) ReqString(key string, opts ...FieldOption) string {
	return reqScalar(m, key, asString, KindString, opts)
}

// OptBool reads a bool at key, falling back on absence or mismatch.
func (m *Map) OptBool(key string, fallback bool, opts ...FieldOption) bool {
	return optScalar(m, key, fallback, asBool, opts)
}

// OptInt reads a whole-valued number at key, falling back on failure.
func (m *Map) OptInt(key string, fallback int, opts ...FieldOption) int {
	return optScalar(m, key, fallback, asInt, opts)
}

// OptInt64 reads a whole-valued number at key, falling back on failure.
func (m *Map) OptInt64(key string, fallback int64, opts ...FieldOption) int64 {
	return optScalar(m, key, fallback, asInt64, opts)
}

// OptFloat64 reads a number at key, falling back on failure.
func (m *Map) OptFloat64(key string, fallback float64, opts ...FieldOption) float64 {
	return optScalar(m, key, fallback, asFloat64, opts)
}

// OptString reads a string at key, falling back on failure.
func (m *Map) OptString(key string, fallback string, opts ...FieldOption) string {
	return optScalar(m, key, fallback, asString, opts)
}

// Req reads a required value at key through a Transform, recording
// TransformError when the transform declines.
func Req[T any](m *Map, key string, tr Transform[T], opts ...FieldOption) T {
	var zero T
	p, ok := m.fieldPath(key, opts)
	if !ok {
		return zero
	}
	v := Resolve(m.root, p)
	if v == nil {
		m.record(&KeyNotFoundError{Key: key})
		return zero
	}
	got, ok := tr.Decode(v)
	if !ok {
		m.record(&TransformError{Key: key, Direction: DirectionDecode})
		return zero
	}
	return got
}

// Opt reads a value at key through a Transform, falling back on failure.
func Opt[T any](m *Map, key string, fallback T, tr Transform[T], opts ...FieldOption) T {
	p, ok := m.fieldPath(key, opts)
	if !ok {
		return fallback
	}
	v := Resolve(m.root, p)
	if v == nil {
		return fallback
	}
	got, ok := tr.Decode(v)
	if !ok {
		return fallback
	}
	return got
}

// ReqStruct reads a required nested value at key via a strict factory.
func ReqStruct[T any](m *Map, key string, f Factory[T], opts ...FieldOption) T {
	var zero T
	p, ok := m.fieldPath(key, opts)
	if !ok {
		return zero
	}
	v := Resolve(m.root, p)
	if v == nil {
		m.record(&KeyNotFoundError{Key: key})
		return zero
	}
	if v.Kind() != KindObject {
		m.record(&TypeMismatchError{Key: key, Want: KindObject, Got: v.Kind()})
		return zero
	}
	child := m.child(v)
	out, err := f(child)
	if err != nil {
		m.record(err)
		return zero
	}
	m.propagate(child)
	return out
}
