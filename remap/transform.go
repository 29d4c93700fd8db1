package remap

import (
	"math"
	"strconv"
	"time"
)

// Transform converts between a JSON value and a typed value, one direction
// per method. Transforms never panic and signal failure by returning false,
// leaving the default/required decision to the binding layer. Transforms are
// stateless and reusable across fields and objects.
type Transform[T any] interface {
	// Decode converts a JSON value to T.
	Decode(v *Value) (T, bool)

	// Encode converts T back to a JSON value.
	Encode(t T) (*Value, bool)
}

// TransformOf builds a Transform from two closures. A nil closure fails its
// direction, which makes one-way transforms easy to declare.
type TransformOf[T any] struct {
	DecodeFunc func(*Value) (T, bool)
	EncodeFunc func(T) (*Value, bool)
}

func (t TransformOf[T]) Decode(v *Value) (T, bool) {
	if t.DecodeFunc == nil || v == nil {
		var zero T
		return zero, false
	}
	return t.DecodeFunc(v)
}

func (t TransformOf[T]) Encode(val T) (*Value, bool) {
	if t.EncodeFunc == nil {
		return nil, false
	}
	return t.EncodeFunc(val)
}

// ============================================================
// Built-in transforms
// ============================================================

// IntString maps an int field to a JSON string ("42" <-> 42).
func IntString() Transform[int] {
	return TransformOf[int]{
		DecodeFunc: func(v *Value) (int, bool) {
			s, err := v.AsString()
			if err != nil {
				return 0, false
			}
			n, err := strconv.Atoi(s)
			if err != nil {
				return 0, false
			}
			return n, true
		},
		EncodeFunc: func(n int) (*Value, bool) {
			return String(strconv.Itoa(n)), true
		},
	}
}

// TimeRFC3339 maps a time.Time field to an RFC 3339 JSON string.
func TimeRFC3339() Transform[time.Time] {
	return TransformOf[time.Time]{
		DecodeFunc: func(v *Value) (time.Time, bool) {
			s, err := v.AsString()
			if err != nil {
				return time.Time{}, false
			}
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return time.Time{}, false
			}
			return t, true
		},
		EncodeFunc: func(t time.Time) (*Value, bool) {
			return String(t.Format(time.RFC3339)), true
		},
	}
}

// TimeUnix maps a time.Time field to seconds since the epoch as a JSON
// number.
func TimeUnix() Transform[time.Time] {
	return TransformOf[time.Time]{
		DecodeFunc: func(v *Value) (time.Time, bool) {
			f, err := v.AsNumber()
			if err != nil {
				return time.Time{}, false
			}
			sec, frac := math.Modf(f)
			return time.Unix(int64(sec), int64(frac*1e9)).UTC(), true
		},
		EncodeFunc: func(t time.Time) (*Value, bool) {
			return Number(float64(t.Unix())), true
		},
	}
}

// ============================================================
// Scalar conversions used by the binding methods
// ============================================================

func asBool(v *Value) (bool, bool) {
	b, err := v.AsBool()
	return b, err == nil
}

func asFloat64(v *Value) (float64, bool) {
	f, err := v.AsNumber()
	return f, err == nil
}

func asInt64(v *Value) (int64, bool) {
	f, err := v.AsNumber()
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

func asInt(v *Value) (int, bool) {
	n, ok := asInt64(v)
	return int(n), ok
}

func asString(v *Value) (string, bool) {
	s, err := v.AsString()
	return s, err == nil
}
