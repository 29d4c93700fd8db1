package remap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test entities in the mutable mapping style.

type testAddress struct {
	City string
	Zip  string
}

func (a *testAddress) MapJSON(m *Map) {
	m.String("city", &a.City)
	m.String("zip", &a.Zip)
}

type testUser struct {
	Name    string
	Age     int
	Score   float64
	Active  bool
	Home    testAddress
	Work    *testAddress
	Friends []testUser
	Tags    map[string]string
	Joined  time.Time
	Extra   *Value
}

func (u *testUser) MapJSON(m *Map) {
	m.String("name", &u.Name)
	m.Int("age", &u.Age)
	m.Float64("score", &u.Score)
	m.Bool("active", &u.Active)
	Struct(m, "home", &u.Home)
	StructPtr(m, "work", &u.Work)
	Slice(m, "friends", &u.Friends)
	StringMapOf(m, "tags", &u.Tags, stringIdentity())
	Transformed(m, "joined", &u.Joined, TimeRFC3339())
	m.Value("extra", &u.Extra)
}

func stringIdentity() Transform[string] {
	return TransformOf[string]{
		DecodeFunc: func(v *Value) (string, bool) {
			s, err := v.AsString()
			return s, err == nil
		},
		EncodeFunc: func(s string) (*Value, bool) { return String(s), true },
	}
}

const testUserJSON = `{
  "name": "ada",
  "age": 36,
  "score": 9.5,
  "active": true,
  "home": {"city": "London", "zip": "N1"},
  "work": {"city": "Cambridge", "zip": "CB2"},
  "friends": [{"name": "grace", "age": 30, "score": 1, "active": false,
    "home": {"city": "NYC", "zip": "10001"}, "friends": [], "tags": {},
    "joined": "2024-01-01T00:00:00Z", "extra": null}],
  "tags": {"role": "admin", "team": "core"},
  "joined": "2025-12-19T20:00:00Z",
  "extra": {"anything": [1, 2]}
}`

func TestMap_Decode(t *testing.T) {
	var u testUser
	require.NoError(t, Decode(testUserJSON, &u))

	assert.Equal(t, "ada", u.Name)
	assert.Equal(t, 36, u.Age)
	assert.Equal(t, 9.5, u.Score)
	assert.True(t, u.Active)
	assert.Equal(t, testAddress{City: "London", Zip: "N1"}, u.Home)
	require.NotNil(t, u.Work)
	assert.Equal(t, "Cambridge", u.Work.City)
	require.Len(t, u.Friends, 1)
	assert.Equal(t, "grace", u.Friends[0].Name)
	assert.Equal(t, map[string]string{"role": "admin", "team": "core"}, u.Tags)
	assert.Equal(t, time.Date(2025, 12, 19, 20, 0, 0, 0, time.UTC), u.Joined)
	require.NotNil(t, u.Extra)
	assert.Equal(t, KindObject, u.Extra.Kind())
}

func TestMap_DecodeEncodeSymmetry(t *testing.T) {
	var u testUser
	require.NoError(t, Decode(testUserJSON, &u))

	out, err := Encode(&u)
	require.NoError(t, err)

	var again testUser
	require.NoError(t, DecodeValue(out, &again))
	assert.Equal(t, u.Name, again.Name)
	assert.Equal(t, u.Age, again.Age)
	assert.Equal(t, u.Home, again.Home)
	assert.Equal(t, u.Tags, again.Tags)
	assert.Equal(t, u.Friends, again.Friends)
	assert.True(t, u.Joined.Equal(again.Joined))
}

func TestMap_DecodeKeepsDefaultsOnFailure(t *testing.T) {
	u := testUser{Name: "default", Age: 7}
	// name has the wrong kind, age is missing entirely; neither aborts.
	require.NoError(t, Decode(`{"name": 12, "score": 1.5}`, &u))

	assert.Equal(t, "default", u.Name)
	assert.Equal(t, 7, u.Age)
	assert.Equal(t, 1.5, u.Score)
}

func TestMap_IntRejectsFraction(t *testing.T) {
	u := testUser{Age: 1}
	require.NoError(t, Decode(`{"age": 3.5}`, &u))
	assert.Equal(t, 1, u.Age, "fractional number does not decode into int")
}

func TestMap_EncodeOmitsNilPointerAndDeclinedTransforms(t *testing.T) {
	u := testUser{Name: "solo"}
	out, err := Encode(&u)
	require.NoError(t, err)

	assert.Nil(t, out.Member("work"), "nil pointer field is omitted")
	assert.NotNil(t, out.Member("home"), "value struct field always encodes")
	assert.Nil(t, out.Member("extra"), "nil raw value is omitted")
}

type dottedKeys struct {
	NestedVal  float64
	LiteralVal float64
	ArrowVal   float64
}

func (d *dottedKeys) MapJSON(m *Map) {
	m.Float64("distance.value", &d.NestedVal)
	m.Float64("distance.value", &d.LiteralVal, Literal())
	m.Float64("a->b", &d.ArrowVal, Delimiter("->"))
}

func TestMap_KeyOptions(t *testing.T) {
	input := `{"distance":{"value":31},"distance.value":7,"a":{"b":5}}`

	var d dottedKeys
	require.NoError(t, Decode(input, &d))
	assert.Equal(t, 31.0, d.NestedVal)
	assert.Equal(t, 7.0, d.LiteralVal)
	assert.Equal(t, 5.0, d.ArrowVal)
}

func TestMap_LiteralKeyAbsentOnNestedInput(t *testing.T) {
	type literalOnly struct{ V float64 }
	input := `{"distance":{"value":31}}`

	v := 99.0
	m := newMap(mustParse(t, input), DirectionDecode)
	m.Float64("distance.value", &v, Literal())
	assert.Equal(t, 99.0, v, "literal lookup must not walk nested objects")
	_ = literalOnly{}
}

func TestMap_EncodeBuildsNestedPaths(t *testing.T) {
	var d dottedKeys
	d.NestedVal = 31
	d.LiteralVal = 7
	d.ArrowVal = 5

	out, err := Encode(&d)
	require.NoError(t, err)

	// Nested and literal spellings of the same key target different spots;
	// the literal binding runs second and wins the flat member.
	n, err := out.Member("distance").Member("value").AsNumber()
	require.NoError(t, err)
	assert.Equal(t, 31.0, n)
	lit, err := out.Member("distance.value").AsNumber()
	require.NoError(t, err)
	assert.Equal(t, 7.0, lit)
	arrow, err := out.Member("a").Member("b").AsNumber()
	require.NoError(t, err)
	assert.Equal(t, 5.0, arrow)
}

func TestMap_BadKeyIsUsageError(t *testing.T) {
	type badKey struct{ V float64 }
	var b badKey
	m := newMap(Object(), DirectionDecode)
	m.Float64("a..b", &b.V)
	assert.Error(t, m.Err(), "empty segment surfaces even outside strict mode")
}

// Embedding: the derived routine delegates to the base routine first.

type baseEvent struct {
	ID string
}

func (e *baseEvent) MapJSON(m *Map) {
	m.String("id", &e.ID)
}

type goalEvent struct {
	baseEvent
	Minute int
}

func (e *goalEvent) MapJSON(m *Map) {
	e.baseEvent.MapJSON(m)
	m.Int("minute", &e.Minute)
}

func TestMap_EmbeddedDelegation(t *testing.T) {
	var e goalEvent
	require.NoError(t, Decode(`{"id":"g1","minute":88}`, &e))
	assert.Equal(t, "g1", e.ID)
	assert.Equal(t, 88, e.Minute)

	out, err := EncodeString(&e, false)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"g1","minute":88}`, out)
}

type ctxAware struct {
	Seen any
}

func (c *ctxAware) MapJSON(m *Map) {
	c.Seen = m.UserInfo
}

type ctxParent struct {
	Child ctxAware
}

func (p *ctxParent) MapJSON(m *Map) {
	Struct(m, "child", &p.Child)
}

func TestMap_UserInfoThreadsIntoNestedContexts(t *testing.T) {
	var p ctxParent
	require.NoError(t, Decode(`{"child":{}}`, &p, WithUserInfo("payload")))
	assert.Equal(t, "payload", p.Child.Seen)
}

func TestMap_SetBinding(t *testing.T) {
	type tagged struct {
		Tags map[string]struct{}
	}
	decodeEncode := func(input string) (map[string]struct{}, string) {
		var v tagged
		m := newMap(mustParse(t, input), DirectionDecode)
		Set(m, "tags", &v.Tags, stringIdentity())
		require.NoError(t, m.Err())

		enc := newMap(Object(), DirectionEncode)
		Set(enc, "tags", &v.Tags, stringIdentity())
		require.NoError(t, enc.Err())
		return v.Tags, Serialize(enc.root)
	}

	tags, out := decodeEncode(`{"tags":["b","a","b","a"]}`)
	assert.Equal(t, map[string]struct{}{"a": {}, "b": {}}, tags, "duplicates collapse")
	assert.Equal(t, `{"tags":["a","b"]}`, out, "encode is deterministic")
}

func TestMap_SliceOfSkipsBadElements(t *testing.T) {
	type holder struct{ Nums []int }
	var h holder
	m := newMap(mustParse(t, `{"nums":["1","x","3"]}`), DirectionDecode)
	SliceOf(m, "nums", &h.Nums, IntString())
	require.NoError(t, m.Err())
	assert.Equal(t, []int{1, 3}, h.Nums)
}

func mustParse(t *testing.T, input string) *Value {
	t.Helper()
	v, err := Parse(input)
	require.NoError(t, err)
	return v
}
