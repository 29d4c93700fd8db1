package remap

import "fmt"

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value represents a parsed JSON value.
//
// A nil *Value means absent: the location did not exist in the tree. Absent
// is distinct from an explicit JSON null.
type Value struct {
	kind Kind

	// Scalar values (only one valid based on kind)
	boolVal bool
	numVal  float64
	strVal  string

	// Container values
	arrVal []*Value
	objVal []Member
}

// Member represents a key-value pair in an object. Member order is the
// insertion order and is preserved through parse and serialize.
type Member struct {
	Key   string
	Value *Value
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Number creates a number value.
func Number(v float64) *Value {
	return &Value{kind: KindNumber, numVal: v}
}

// String creates a string value.
func String(v string) *Value {
	return &Value{kind: KindString, strVal: v}
}

// Array creates an array value.
func Array(values ...*Value) *Value {
	return &Value{kind: KindArray, arrVal: values}
}

// Object creates an object value from key-value pairs.
func Object(members ...Member) *Value {
	return &Value{kind: KindObject, objVal: members}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind. A nil (absent) value reports KindNull.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull returns true for absent and explicit null values.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if v == nil {
		return false, fmt.Errorf("remap: absent value")
	}
	if v.kind != KindBool {
		return false, fmt.Errorf("remap: expected bool, got %s", v.kind)
	}
	return v.boolVal, nil
}

// AsNumber returns the number value.
func (v *Value) AsNumber() (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("remap: absent value")
	}
	if v.kind != KindNumber {
		return 0, fmt.Errorf("remap: expected number, got %s", v.kind)
	}
	return v.numVal, nil
}

// AsString returns the string value.
func (v *Value) AsString() (string, error) {
	if v == nil {
		return "", fmt.Errorf("remap: absent value")
	}
	if v.kind != KindString {
		return "", fmt.Errorf("remap: expected string, got %s", v.kind)
	}
	return v.strVal, nil
}

// AsArray returns the array elements.
func (v *Value) AsArray() ([]*Value, error) {
	if v == nil {
		return nil, fmt.Errorf("remap: absent value")
	}
	if v.kind != KindArray {
		return nil, fmt.Errorf("remap: expected array, got %s", v.kind)
	}
	return v.arrVal, nil
}

// AsObject returns the object members in insertion order.
func (v *Value) AsObject() ([]Member, error) {
	if v == nil {
		return nil, fmt.Errorf("remap: absent value")
	}
	if v.kind != KindObject {
		return nil, fmt.Errorf("remap: expected object, got %s", v.kind)
	}
	return v.objVal, nil
}

// Len returns the element count for arrays and the member count for objects,
// and 0 for everything else.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindArray:
		return len(v.arrVal)
	case KindObject:
		return len(v.objVal)
	default:
		return 0
	}
}

// At returns the i-th array element, or nil (absent) when v is not an array
// or i is out of bounds.
func (v *Value) At(i int) *Value {
	if v == nil || v.kind != KindArray || i < 0 || i >= len(v.arrVal) {
		return nil
	}
	return v.arrVal[i]
}

// Member returns the value for key, or nil (absent) when v is not an object
// or the key is missing.
func (v *Value) Member(key string) *Value {
	if v == nil || v.kind != KindObject {
		return nil
	}
	for _, m := range v.objVal {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// SetMember writes key to val. An existing member keeps its position; a new
// member is appended. A non-object receiver is replaced by a fresh object
// first (the documented overwrite-in-place policy).
func (v *Value) SetMember(key string, val *Value) {
	if v.kind != KindObject {
		*v = Value{kind: KindObject}
	}
	for i, m := range v.objVal {
		if m.Key == key {
			v.objVal[i].Value = val
			return
		}
	}
	v.objVal = append(v.objVal, Member{Key: key, Value: val})
}

// ============================================================
// Comparison and copying
// ============================================================

// Equal reports deep equality. Object member order is significant. Absent
// (nil) only equals absent.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == nil && o == nil
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == o.boolVal
	case KindNumber:
		return v.numVal == o.numVal
	case KindString:
		return v.strVal == o.strVal
	case KindArray:
		if len(v.arrVal) != len(o.arrVal) {
			return false
		}
		for i := range v.arrVal {
			if !v.arrVal[i].Equal(o.arrVal[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.objVal) != len(o.objVal) {
			return false
		}
		for i := range v.objVal {
			if v.objVal[i].Key != o.objVal[i].Key {
				return false
			}
			if !v.objVal[i].Value.Equal(o.objVal[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Clone returns a deep copy. Cloning absent yields absent.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	out := &Value{kind: v.kind, boolVal: v.boolVal, numVal: v.numVal, strVal: v.strVal}
	switch v.kind {
	case KindArray:
		out.arrVal = make([]*Value, len(v.arrVal))
		for i, e := range v.arrVal {
			out.arrVal[i] = e.Clone()
		}
	case KindObject:
		out.objVal = make([]Member, len(v.objVal))
		for i, m := range v.objVal {
			out.objVal[i] = Member{Key: m.Key, Value: m.Value.Clone()}
		}
	}
	return out
}

// String returns the compact JSON form, for debugging.
func (v *Value) String() string {
	if v == nil {
		return "<absent>"
	}
	return Serialize(v)
}
