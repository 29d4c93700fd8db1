// Package msgpack bridges remap value trees to MessagePack. It drives the
// encoder and decoder by hand rather than going through interface{} maps so
// object member order survives the round trip.
package msgpack

import (
	"bytes"
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/Neumenon/remap/remap"
)

// Encode converts a value tree to MessagePack bytes. Whole-valued numbers
// are written as integers.
func Encode(v *remap.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := encodeValue(enc, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode converts MessagePack bytes back to a value tree. Integers come back
// as numbers (float64), matching the JSON data model.
func Decode(data []byte) (*remap.Value, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	return decodeValue(dec)
}

func encodeValue(enc *msgpack.Encoder, v *remap.Value) error {
	switch v.Kind() {
	case remap.KindNull:
		return enc.EncodeNil()

	case remap.KindBool:
		b, _ := v.AsBool()
		return enc.EncodeBool(b)

	case remap.KindNumber:
		f, _ := v.AsNumber()
		if f == math.Trunc(f) && math.Abs(f) <= 1<<53 {
			return enc.EncodeInt(int64(f))
		}
		return enc.EncodeFloat64(f)

	case remap.KindString:
		s, _ := v.AsString()
		return enc.EncodeString(s)

	case remap.KindArray:
		arr, _ := v.AsArray()
		if err := enc.EncodeArrayLen(len(arr)); err != nil {
			return err
		}
		for _, elem := range arr {
			if err := encodeValue(enc, elem); err != nil {
				return err
			}
		}
		return nil

	case remap.KindObject:
		members, _ := v.AsObject()
		if err := enc.EncodeMapLen(len(members)); err != nil {
			return err
		}
		for _, m := range members {
			if err := enc.EncodeString(m.Key); err != nil {
				return err
			}
			if err := encodeValue(enc, m.Value); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("msgpack: unsupported kind %s", v.Kind())
	}
}

func decodeValue(dec *msgpack.Decoder) (*remap.Value, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return nil, err
	}
	switch {
	case c == msgpcode.Nil:
		if err := dec.DecodeNil(); err != nil {
			return nil, err
		}
		return remap.Null(), nil

	case c == msgpcode.True, c == msgpcode.False:
		b, err := dec.DecodeBool()
		if err != nil {
			return nil, err
		}
		return remap.Bool(b), nil

	case c == msgpcode.Uint8, c == msgpcode.Uint16, c == msgpcode.Uint32, c == msgpcode.Uint64:
		n, err := dec.DecodeUint64()
		if err != nil {
			return nil, err
		}
		return remap.Number(float64(n)), nil

	case msgpcode.IsFixedNum(c),
		c == msgpcode.Int8, c == msgpcode.Int16, c == msgpcode.Int32, c == msgpcode.Int64:
		n, err := dec.DecodeInt64()
		if err != nil {
			return nil, err
		}
		return remap.Number(float64(n)), nil

	case c == msgpcode.Float, c == msgpcode.Double:
		f, err := dec.DecodeFloat64()
		if err != nil {
			return nil, err
		}
		return remap.Number(f), nil

	case msgpcode.IsString(c):
		s, err := dec.DecodeString()
		if err != nil {
			return nil, err
		}
		return remap.String(s), nil

	case msgpcode.IsFixedArray(c), c == msgpcode.Array16, c == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		elems := make([]*remap.Value, 0, n)
		for i := 0; i < n; i++ {
			elem, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return remap.Array(elems...), nil

	case msgpcode.IsFixedMap(c), c == msgpcode.Map16, c == msgpcode.Map32:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return nil, err
		}
		members := make([]remap.Member, 0, n)
		for i := 0; i < n; i++ {
			key, err := dec.DecodeString()
			if err != nil {
				return nil, err
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			members = append(members, remap.Member{Key: key, Value: val})
		}
		return remap.Object(members...), nil

	default:
		return nil, fmt.Errorf("msgpack: unsupported code 0x%02x", c)
	}
}
