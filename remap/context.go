package remap

import "sort"

// Direction states whether a Map call is populating fields from JSON or a
// JSON tree from fields. Set once per top-level call, never changed
// mid-operation.
type Direction uint8

const (
	DirectionDecode Direction = iota
	DirectionEncode
)

// String returns the direction name.
func (d Direction) String() string {
	if d == DirectionEncode {
		return "encode"
	}
	return "decode"
}

// Mappable is the capability a type needs to participate in mapping. The
// same routine runs in both directions; each binding reads or writes its
// field depending on the Map's direction.
//
// A type that embeds another Mappable should delegate to the embedded
// MapJSON first so base fields are always processed.
type Mappable interface {
	MapJSON(m *Map)
}

// Map is the cursor for one decode or encode operation: the current JSON
// subtree, the direction, and an optional caller payload. One Map tree is
// built per top-level call and never reused.
type Map struct {
	root   *Value
	dir    Direction
	strict bool
	err    error

	// UserInfo is an opaque caller payload, threaded unchanged into every
	// nested Map for the duration of one top-level call.
	UserInfo any
}

func newMap(root *Value, dir Direction) *Map {
	return &Map{root: root, dir: dir}
}

// child opens a nested cursor over a subtree, same direction and payload.
func (m *Map) child(root *Value) *Map {
	return &Map{root: root, dir: m.dir, strict: m.strict, UserInfo: m.UserInfo}
}

// Root returns the JSON subtree this cursor operates on. In decode direction
// a mapping routine may consult it directly, e.g. for required-key checks.
func (m *Map) Root() *Value {
	return m.root
}

// Direction returns the cursor direction.
func (m *Map) Direction() Direction {
	return m.dir
}

// Err returns the first recorded error: usage errors always, per-field data
// errors only in strict mode.
func (m *Map) Err() error {
	return m.err
}

// record keeps the first error unconditionally (usage and strict failures).
func (m *Map) record(err error) {
	if m.err == nil {
		m.err = err
	}
}

// fail records a per-field data error. Outside strict mode the field simply
// keeps its default, so the error is dropped.
func (m *Map) fail(err error) {
	if m.strict {
		m.record(err)
	}
}

// propagate carries a nested cursor's error up.
func (m *Map) propagate(child *Map) {
	if child.err != nil {
		m.record(child.err)
	}
}

// ============================================================
// Field options
// ============================================================

type fieldOpts struct {
	nested bool
	delim  string
}

// FieldOption adjusts how one binding key is interpreted.
type FieldOption func(*fieldOpts)

// Literal makes the key a single verbatim segment; delimiters in it are not
// split.
func Literal() FieldOption {
	return func(o *fieldOpts) { o.nested = false }
}

// Delimiter overrides the path delimiter for this key (default ".").
func Delimiter(d string) FieldOption {
	return func(o *fieldOpts) { o.delim = d }
}

// fieldPath splits a binding key, recording usage errors on the cursor.
func (m *Map) fieldPath(key string, opts []FieldOption) (Path, bool) {
	o := fieldOpts{nested: true, delim: "."}
	for _, fn := range opts {
		fn(&o)
	}
	p, err := SplitKey(key, o.delim, o.nested)
	if err != nil {
		m.record(err)
		return nil, false
	}
	return p, true
}

func (m *Map) store(p Path, v *Value) {
	if err := Store(m.root, p, v); err != nil {
		m.record(err)
	}
}

// ============================================================
// Scalar bindings
// ============================================================

// bindScalar is the engine behind the scalar binding methods. Decode leaves
// the field untouched on absent or mismatched values; encode omits the key
// when enc declines.
func bindScalar[T any](m *Map, key string, field *T, dec func(*Value) (T, bool), enc func(T) *Value, want Kind, opts []FieldOption) {
	p, ok := m.fieldPath(key, opts)
	if !ok {
		return
	}
	switch m.dir {
	case DirectionDecode:
		v := Resolve(m.root, p)
		if v == nil {
			m.fail(&KeyNotFoundError{Key: key})
			return
		}
		got, ok := dec(v)
		if !ok {
			m.fail(&TypeMismatchError{Key: key, Want: want, Got: v.Kind()})
			return
		}
		*field = got
	case DirectionEncode:
		if out := enc(*field); out != nil {
			m.store(p, out)
		}
	}
}

// Bool binds a bool field to key.
func (m *Map) Bool(key string, field *bool, opts ...FieldOption) {
	bindScalar(m, key, field, asBool, func(b bool) *Value { return Bool(b) }, KindBool, opts)
}

// Int binds an int field to key. Decode requires a whole-valued number.
func (m *Map) Int(key string, field *int, opts ...FieldOption) {
	bindScalar(m, key, field, asInt, func(n int) *Value { return Number(float64(n)) }, KindNumber, opts)
}

// Int64 binds an int64 field to key. Decode requires a whole-valued number.
func (m *Map) Int64(key string, field *int64, opts ...FieldOption) {
	bindScalar(m, key, field, asInt64, func(n int64) *Value { return Number(float64(n)) }, KindNumber, opts)
}

// Float64 binds a float64 field to key.
func (m *Map) Float64(key string, field *float64, opts ...FieldOption) {
	bindScalar(m, key, field, asFloat64, func(f float64) *Value { return Number(f) }, KindNumber, opts)
}

// String binds a string field to key.
func (m *Map) String(key string, field *string, opts ...FieldOption) {
	bindScalar(m, key, field, asString, func(s string) *Value { return String(s) }, KindString, opts)
}

// Value binds a raw subtree to key, for fields that keep generic JSON.
func (m *Map) Value(key string, field **Value, opts ...FieldOption) {
	bindScalar(m, key, field,
		func(v *Value) (*Value, bool) { return v, true },
		func(v *Value) *Value { return v },
		KindNull, opts)
}

// ============================================================
// Transformed and structural bindings
// ============================================================

// Transformed binds a field through a custom Transform. Decode failures
// classify as TransformError (strict mode); encode failures omit the key.
func Transformed[T any](m *Map, key string, field *T, tr Transform[T], opts ...FieldOption) {
	p, ok := m.fieldPath(key, opts)
	if !ok {
		return
	}
	switch m.dir {
	case DirectionDecode:
		v := Resolve(m.root, p)
		if v == nil {
			m.fail(&KeyNotFoundError{Key: key})
			return
		}
		got, ok := tr.Decode(v)
		if !ok {
			m.fail(&TransformError{Key: key, Direction: DirectionDecode})
			return
		}
		*field = got
	case DirectionEncode:
		if out, ok := tr.Encode(*field); ok && out != nil {
			m.store(p, out)
		}
	}
}

// Struct binds a nested Mappable value field to key, recursing with a cursor
// rooted at the resolved subtree.
func Struct[T any, PT interface {
	Mappable
	*T
}](m *Map, key string, field *T, opts ...FieldOption) {
	p, ok := m.fieldPath(key, opts)
	if !ok {
		return
	}
	switch m.dir {
	case DirectionDecode:
		v := Resolve(m.root, p)
		if v == nil {
			m.fail(&KeyNotFoundError{Key: key})
			return
		}
		if v.Kind() != KindObject {
			m.fail(&TypeMismatchError{Key: key, Want: KindObject, Got: v.Kind()})
			return
		}
		child := m.child(v)
		PT(field).MapJSON(child)
		m.propagate(child)
	case DirectionEncode:
		child := m.child(Object())
		PT(field).MapJSON(child)
		m.propagate(child)
		m.store(p, child.root)
	}
}

// StructPtr binds an optional nested Mappable behind a pointer. Decode
// allocates on success; encode omits the key for a nil pointer.
func StructPtr[T any, PT interface {
	Mappable
	*T
}](m *Map, key string, field **T, opts ...FieldOption) {
	p, ok := m.fieldPath(key, opts)
	if !ok {
		return
	}
	switch m.dir {
	case DirectionDecode:
		v := Resolve(m.root, p)
		if v == nil {
			m.fail(&KeyNotFoundError{Key: key})
			return
		}
		if v.Kind() != KindObject {
			m.fail(&TypeMismatchError{Key: key, Want: KindObject, Got: v.Kind()})
			return
		}
		val := new(T)
		child := m.child(v)
		PT(val).MapJSON(child)
		m.propagate(child)
		*field = val
	case DirectionEncode:
		if *field == nil {
			return
		}
		child := m.child(Object())
		PT(*field).MapJSON(child)
		m.propagate(child)
		m.store(p, child.root)
	}
}

// ============================================================
// Collection bindings
// ============================================================

// Slice binds an ordered sequence of Mappable elements, preserving source
// order. Decode replaces the whole slice; a non-object element stays at its
// zero value (or fails the construction in strict mode).
func Slice[T any, PT interface {
	Mappable
	*T
}](m *Map, key string, field *[]T, opts ...FieldOption) {
	p, ok := m.fieldPath(key, opts)
	if !ok {
		return
	}
	switch m.dir {
	case DirectionDecode:
		v := Resolve(m.root, p)
		if v == nil {
			m.fail(&KeyNotFoundError{Key: key})
			return
		}
		arr, err := v.AsArray()
		if err != nil {
			m.fail(&TypeMismatchError{Key: key, Want: KindArray, Got: v.Kind()})
			return
		}
		out := make([]T, len(arr))
		for i, elem := range arr {
			if elem.Kind() != KindObject {
				m.fail(&TypeMismatchError{Key: key, Want: KindObject, Got: elem.Kind()})
				continue
			}
			child := m.child(elem)
			PT(&out[i]).MapJSON(child)
			m.propagate(child)
		}
		*field = out
	case DirectionEncode:
		arr := Array()
		for i := range *field {
			child := m.child(Object())
			PT(&(*field)[i]).MapJSON(child)
			m.propagate(child)
			arr.arrVal = append(arr.arrVal, child.root)
		}
		m.store(p, arr)
	}
}

// SliceOf binds an ordered sequence of transformed elements. Elements the
// transform declines are skipped on decode (or fail the construction in
// strict mode) and omitted on encode.
func SliceOf[T any](m *Map, key string, field *[]T, tr Transform[T], opts ...FieldOption) {
	p, ok := m.fieldPath(key, opts)
	if !ok {
		return
	}
	switch m.dir {
	case DirectionDecode:
		v := Resolve(m.root, p)
		if v == nil {
			m.fail(&KeyNotFoundError{Key: key})
			return
		}
		arr, err := v.AsArray()
		if err != nil {
			m.fail(&TypeMismatchError{Key: key, Want: KindArray, Got: v.Kind()})
			return
		}
		out := make([]T, 0, len(arr))
		for _, elem := range arr {
			got, ok := tr.Decode(elem)
			if !ok {
				m.fail(&TransformError{Key: key, Direction: DirectionDecode})
				continue
			}
			out = append(out, got)
		}
		*field = out
	case DirectionEncode:
		arr := Array()
		for _, item := range *field {
			if out, ok := tr.Encode(item); ok && out != nil {
				arr.arrVal = append(arr.arrVal, out)
			}
		}
		m.store(p, arr)
	}
}

// StringMap binds a string-keyed container of Mappable values. Go maps carry
// no order, so decode cannot retain JSON member order and encode writes
// members in sorted-key order for deterministic output.
func StringMap[T any, PT interface {
	Mappable
	*T
}](m *Map, key string, field *map[string]T, opts ...FieldOption) {
	p, ok := m.fieldPath(key, opts)
	if !ok {
		return
	}
	switch m.dir {
	case DirectionDecode:
		v := Resolve(m.root, p)
		if v == nil {
			m.fail(&KeyNotFoundError{Key: key})
			return
		}
		members, err := v.AsObject()
		if err != nil {
			m.fail(&TypeMismatchError{Key: key, Want: KindObject, Got: v.Kind()})
			return
		}
		out := make(map[string]T, len(members))
		for _, member := range members {
			if member.Value.Kind() != KindObject {
				m.fail(&TypeMismatchError{Key: key, Want: KindObject, Got: member.Value.Kind()})
				continue
			}
			var item T
			child := m.child(member.Value)
			PT(&item).MapJSON(child)
			m.propagate(child)
			out[member.Key] = item
		}
		*field = out
	case DirectionEncode:
		keys := make([]string, 0, len(*field))
		for k := range *field {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := Object()
		for _, k := range keys {
			item := (*field)[k]
			child := m.child(Object())
			PT(&item).MapJSON(child)
			m.propagate(child)
			obj.SetMember(k, child.root)
		}
		m.store(p, obj)
	}
}

// StringMapOf binds a string-keyed container of transformed values, with the
// same ordering caveats as StringMap.
func StringMapOf[T any](m *Map, key string, field *map[string]T, tr Transform[T], opts ...FieldOption) {
	p, ok := m.fieldPath(key, opts)
	if !ok {
		return
	}
	switch m.dir {
	case DirectionDecode:
		v := Resolve(m.root, p)
		if v == nil {
			m.fail(&KeyNotFoundError{Key: key})
			return
		}
		members, err := v.AsObject()
		if err != nil {
			m.fail(&TypeMismatchError{Key: key, Want: KindObject, Got: v.Kind()})
			return
		}
		out := make(map[string]T, len(members))
		for _, member := range members {
			got, ok := tr.Decode(member.Value)
			if !ok {
				m.fail(&TransformError{Key: key, Direction: DirectionDecode})
				continue
			}
			out[member.Key] = got
		}
		*field = out
	case DirectionEncode:
		keys := make([]string, 0, len(*field))
		for k := range *field {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := Object()
		for _, k := range keys {
			if out, ok := tr.Encode((*field)[k]); ok && out != nil {
				obj.SetMember(k, out)
			}
		}
		m.store(p, obj)
	}
}

// Set binds a deduplicated collection of transformed elements. Decode drops
// duplicates by Go equality; encode writes elements sorted by their
// serialized form, since the set carries no order of its own.
func Set[T comparable](m *Map, key string, field *map[T]struct{}, tr Transform[T], opts ...FieldOption) {
	p, ok := m.fieldPath(key, opts)
	if !ok {
		return
	}
	switch m.dir {
	case DirectionDecode:
		v := Resolve(m.root, p)
		if v == nil {
			m.fail(&KeyNotFoundError{Key: key})
			return
		}
		arr, err := v.AsArray()
		if err != nil {
			m.fail(&TypeMismatchError{Key: key, Want: KindArray, Got: v.Kind()})
			return
		}
		out := make(map[T]struct{}, len(arr))
		for _, elem := range arr {
			got, ok := tr.Decode(elem)
			if !ok {
				m.fail(&TransformError{Key: key, Direction: DirectionDecode})
				continue
			}
			out[got] = struct{}{}
		}
		*field = out
	case DirectionEncode:
		encoded := make([]*Value, 0, len(*field))
		for item := range *field {
			if out, ok := tr.Encode(item); ok && out != nil {
				encoded = append(encoded, out)
			}
		}
		sort.Slice(encoded, func(i, j int) bool {
			return Serialize(encoded[i]) < Serialize(encoded[j])
		})
		m.store(p, Array(encoded...))
	}
}
