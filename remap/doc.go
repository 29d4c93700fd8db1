// Package remap implements REMAP, a reflection-free bidirectional
// JSON-to-object mapping library.
//
// Model types declare once, in a mapping routine, how each field reads from
// and writes to a JSON tree; the same declaration drives both decode and
// encode:
//
//	type User struct {
//	    Name   string
//	    Age    int
//	    Friend *User
//	}
//
//	func (u *User) MapJSON(m *remap.Map) {
//	    m.String("name", &u.Name)
//	    m.Int("age", &u.Age)
//	    remap.StructPtr(m, "friend", &u.Friend)
//	}
//
//	var u User
//	_ = remap.Decode(`{"name":"ada","age":36}`, &u)
//	out, _ := remap.EncodeString(&u, true)
//
// # Data Model
//
// Values form a small tagged union: null, bool, number (float64), string,
// array, object. Objects preserve member insertion order. A nil *Value means
// absent, which is distinct from an explicit JSON null.
//
// # Key Paths
//
// Binding keys are dotted paths by default: "distance.value" walks nested
// objects, "distances.0.value" indexes arrays. Pass Literal() to look a key
// containing dots up verbatim, or Delimiter to split on something else.
//
// # Strict Mapping
//
// The default (mutable) style is forgiving: a field whose key is missing or
// of the wrong shape keeps its current value. The strict style fails the
// whole construction on the first bad access instead:
//
//	u, err := remap.DecodeStrict(text, func(m *remap.Map) (User, error) {
//	    return User{
//	        Name: m.ReqString("name"),
//	        Age:  m.OptInt("age", 18),
//	    }, nil
//	})
//
// Both styles coexist; strict types encode through the ordinary MapJSON
// routine, which in encode direction only reads fields.
package remap
