package remap

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// SerializeOptions configures the serializer.
type SerializeOptions struct {
	// Pretty adds newlines and indentation.
	Pretty bool

	// Indent string for pretty mode (default: "  ")
	Indent string

	// SortKeys sorts object members alphabetically instead of keeping
	// insertion order. Useful for canonical output.
	SortKeys bool
}

// DefaultSerializeOptions returns compact, insertion-ordered output.
func DefaultSerializeOptions() SerializeOptions {
	return SerializeOptions{Indent: "  "}
}

// Serialize converts a Value to compact JSON text.
func Serialize(v *Value) string {
	return SerializeWithOptions(v, DefaultSerializeOptions())
}

// SerializePretty converts a Value to indented JSON text.
func SerializePretty(v *Value) string {
	opts := DefaultSerializeOptions()
	opts.Pretty = true
	return SerializeWithOptions(v, opts)
}

// SerializeWithOptions converts a Value with custom options.
func SerializeWithOptions(v *Value, opts SerializeOptions) string {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	s := &serializer{opts: opts}
	s.write(v, 0)
	return s.sb.String()
}

type serializer struct {
	sb   strings.Builder
	opts SerializeOptions
}

func (s *serializer) write(v *Value, depth int) {
	if v == nil {
		s.sb.WriteString("null")
		return
	}
	switch v.kind {
	case KindNull:
		s.sb.WriteString("null")
	case KindBool:
		if v.boolVal {
			s.sb.WriteString("true")
		} else {
			s.sb.WriteString("false")
		}
	case KindNumber:
		s.writeNumber(v.numVal)
	case KindString:
		s.writeString(v.strVal)
	case KindArray:
		s.writeArray(v, depth)
	case KindObject:
		s.writeObject(v, depth)
	}
}

// writeNumber emits whole values without a fractional marker.
func (s *serializer) writeNumber(f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		s.sb.WriteString("null")
		return
	}
	if f == math.Trunc(f) && math.Abs(f) <= 1<<53 {
		s.sb.WriteString(strconv.FormatInt(int64(f), 10))
		return
	}
	s.sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
}

func (s *serializer) writeString(str string) {
	s.sb.WriteByte('"')
	for _, c := range []byte(str) {
		switch c {
		case '"':
			s.sb.WriteString(`\"`)
		case '\\':
			s.sb.WriteString(`\\`)
		case '\b':
			s.sb.WriteString(`\b`)
		case '\f':
			s.sb.WriteString(`\f`)
		case '\n':
			s.sb.WriteString(`\n`)
		case '\r':
			s.sb.WriteString(`\r`)
		case '\t':
			s.sb.WriteString(`\t`)
		default:
			if c < 0x20 {
				fmt.Fprintf(&s.sb, `\u%04x`, c)
			} else {
				s.sb.WriteByte(c)
			}
		}
	}
	s.sb.WriteByte('"')
}

func (s *serializer) writeArray(v *Value, depth int) {
	if len(v.arrVal) == 0 {
		s.sb.WriteString("[]")
		return
	}
	s.sb.WriteByte('[')
	for i, elem := range v.arrVal {
		if i > 0 {
			s.sb.WriteByte(',')
		}
		s.newlineIndent(depth + 1)
		s.write(elem, depth+1)
	}
	s.newlineIndent(depth)
	s.sb.WriteByte(']')
}

func (s *serializer) writeObject(v *Value, depth int) {
	if len(v.objVal) == 0 {
		s.sb.WriteString("{}")
		return
	}
	members := v.objVal
	if s.opts.SortKeys {
		members = append([]Member(nil), members...)
		sort.Slice(members, func(i, j int) bool { return members[i].Key < members[j].Key })
	}
	s.sb.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			s.sb.WriteByte(',')
		}
		s.newlineIndent(depth + 1)
		s.writeString(m.Key)
		s.sb.WriteByte(':')
		if s.opts.Pretty {
			s.sb.WriteByte(' ')
		}
		s.write(m.Value, depth+1)
	}
	s.newlineIndent(depth)
	s.sb.WriteByte('}')
}

func (s *serializer) newlineIndent(depth int) {
	if !s.opts.Pretty {
		return
	}
	s.sb.WriteByte('\n')
	for i := 0; i < depth; i++ {
		s.sb.WriteString(s.opts.Indent)
	}
}
