package remap

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a key path: an object key, or an array index when
// the segment is numeric. A numeric segment carries both forms; the resolver
// indexes arrays with it and falls back to an object-key lookup otherwise.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path is an ordered sequence of segments identifying a location in a tree.
type Path []Segment

// String returns the dotted form of the path.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = seg.Key
	}
	return strings.Join(parts, ".")
}

// SplitKey splits a raw binding key into a Path.
//
// With nested false the key becomes a single literal segment, delimiters and
// all. Otherwise the key is split on delimiter ("." when empty); an empty
// resulting segment is a usage error.
func SplitKey(key, delimiter string, nested bool) (Path, error) {
	if key == "" {
		return nil, fmt.Errorf("remap: empty key")
	}
	if !nested {
		return Path{makeSegment(key)}, nil
	}
	if delimiter == "" {
		delimiter = "."
	}
	parts := strings.Split(key, delimiter)
	path := make(Path, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("remap: empty segment in key %q", key)
		}
		path = append(path, makeSegment(part))
	}
	return path, nil
}

func makeSegment(s string) Segment {
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return Segment{Key: s, Index: n, IsIndex: true}
	}
	return Segment{Key: s}
}

// Resolve walks root along path and returns the value found, or nil (absent)
// when any segment cannot be resolved. A numeric segment indexes arrays
// (absent when out of bounds) and looks up an object key otherwise; any kind
// conflict along the way yields absent rather than an error.
func Resolve(root *Value, path Path) *Value {
	cur := root
	for _, seg := range path {
		if cur == nil {
			return nil
		}
		switch cur.Kind() {
		case KindArray:
			if !seg.IsIndex {
				return nil
			}
			cur = cur.At(seg.Index)
		case KindObject:
			cur = cur.Member(seg.Key)
		default:
			return nil
		}
	}
	return cur
}

// Store writes v at path under root, creating intermediate containers as
// needed: an array when the next segment is numeric, an object otherwise.
// Arrays grow with null padding to reach an index. Sibling data at existing
// intermediate nodes is preserved.
//
// When a segment meets a container of a conflicting kind (a numeric segment
// over a scalar, or a string segment over anything but an object), the node
// is overwritten in place with a fresh container of the needed kind. This is
// the library-wide conflict policy; Resolve treats the same conflicts as
// absent.
func Store(root *Value, path Path, v *Value) error {
	if root == nil {
		return fmt.Errorf("remap: store into absent root")
	}
	if len(path) == 0 {
		return fmt.Errorf("remap: store with empty path")
	}
	cur := root
	for i, seg := range path {
		last := i == len(path)-1

		// A numeric segment addresses an array, unless the node is already
		// an object (then it falls back to an object key, mirroring Resolve).
		useIndex := seg.IsIndex && cur.Kind() != KindObject
		if useIndex && cur.Kind() != KindArray {
			*cur = Value{kind: KindArray}
		}
		if !useIndex && cur.Kind() != KindObject {
			*cur = Value{kind: KindObject}
		}

		if useIndex {
			for len(cur.arrVal) <= seg.Index {
				cur.arrVal = append(cur.arrVal, Null())
			}
			if last {
				cur.arrVal[seg.Index] = v
				return nil
			}
			cur = cur.arrVal[seg.Index]
			continue
		}

		if last {
			cur.SetMember(seg.Key, v)
			return nil
		}
		next := cur.Member(seg.Key)
		if next == nil {
			next = Null() // becomes a container on the next step
			cur.SetMember(seg.Key, next)
		}
		cur = next
	}
	return nil
}
