package remap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Strict construction style: the factory is the only place fields are
// assigned, and the first failed required access fails the whole thing.

type strictMatch struct {
	ID   string
	Kick string
	XH   float64
	Tier int
}

func newStrictMatch(m *Map) (strictMatch, error) {
	return strictMatch{
		ID:   m.ReqString("id"),
		Kick: m.ReqString("kickoff"),
		XH:   m.ReqFloat64("odds.home"),
		Tier: m.OptInt("tier", 1),
	}, nil
}

func (s *strictMatch) MapJSON(m *Map) {
	m.String("id", &s.ID)
	m.String("kickoff", &s.Kick)
	m.Float64("odds.home", &s.XH)
	m.Int("tier", &s.Tier)
}

const strictMatchJSON = `{"id":"m1","kickoff":"2025-12-19T20:00Z","odds":{"home":1.72}}`

func TestDecodeStrict_OK(t *testing.T) {
	got, err := DecodeStrict(strictMatchJSON, newStrictMatch)
	require.NoError(t, err)
	assert.Equal(t, strictMatch{ID: "m1", Kick: "2025-12-19T20:00Z", XH: 1.72, Tier: 1}, got)
}

func TestDecodeStrict_MissingKeyFailsWholeConstruction(t *testing.T) {
	_, err := DecodeStrict(`{"id":"m1","odds":{"home":1.72}}`, newStrictMatch)
	require.Error(t, err)

	var notFound *KeyNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "kickoff", notFound.Key)
}

func TestDecodeStrict_TypeMismatchNamesKey(t *testing.T) {
	_, err := DecodeStrict(`{"id":"m1","kickoff":true,"odds":{"home":1.72}}`, newStrictMatch)
	require.Error(t, err)

	var mismatch *TypeMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "kickoff", mismatch.Key)
	assert.Equal(t, KindString, mismatch.Want)
	assert.Equal(t, KindBool, mismatch.Got)
}

func TestDecodeStrict_FirstErrorWins(t *testing.T) {
	_, err := DecodeStrict(`{}`, newStrictMatch)
	require.Error(t, err)

	var notFound *KeyNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "id", notFound.Key)
}

func TestDecodeStrict_OptFallsBack(t *testing.T) {
	got, err := DecodeStrict(`{"id":"m1","kickoff":"k","odds":{"home":1.72},"tier":"not a number"}`, newStrictMatch)
	require.NoError(t, err, "best-effort access swallows the mismatch")
	assert.Equal(t, 1, got.Tier)

	got, err = DecodeStrict(`{"id":"m1","kickoff":"k","odds":{"home":1.72},"tier":3}`, newStrictMatch)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Tier)
}

func TestDecodeStrict_FactoryErrorPropagates(t *testing.T) {
	boom := errors.New("bad payload")
	_, err := DecodeStrict(`{}`, func(m *Map) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
}

func TestDecodeStrict_TransformFailure(t *testing.T) {
	_, err := DecodeStrict(`{"n":"nope"}`, func(m *Map) (int, error) {
		return Req(m, "n", IntString()), nil
	})
	require.Error(t, err)

	var terr *TransformError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "n", terr.Key)
	assert.Equal(t, DirectionDecode, terr.Direction)
}

func TestReqStruct(t *testing.T) {
	type pair struct {
		Outer string
		Inner strictMatch
	}
	input := `{"outer":"x","match":` + strictMatchJSON + `}`

	got, err := DecodeStrict(input, func(m *Map) (pair, error) {
		return pair{
			Outer: m.ReqString("outer"),
			Inner: ReqStruct(m, "match", newStrictMatch),
		}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "x", got.Outer)
	assert.Equal(t, "m1", got.Inner.ID)

	_, err = DecodeStrict(`{"outer":"x"}`, func(m *Map) (pair, error) {
		return pair{
			Outer: m.ReqString("outer"),
			Inner: ReqStruct(m, "match", newStrictMatch),
		}, nil
	})
	var notFound *KeyNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "match", notFound.Key)
}

func TestStrictType_EncodesThroughMapJSON(t *testing.T) {
	got, err := DecodeStrict(strictMatchJSON, newStrictMatch)
	require.NoError(t, err)

	out, err := EncodeString(&got, false)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"m1","kickoff":"2025-12-19T20:00Z","odds":{"home":1.72},"tier":1}`, out)
}

func TestOptGetters(t *testing.T) {
	m := newMap(mustParse(t, `{"b":true,"n":2.5,"i":7,"s":"x"}`), DirectionDecode)
	m.strict = true

	assert.Equal(t, true, m.OptBool("b", false))
	assert.Equal(t, 2.5, m.OptFloat64("n", 0))
	assert.Equal(t, 7, m.OptInt("i", 0))
	assert.Equal(t, int64(7), m.OptInt64("i", 0))
	assert.Equal(t, "x", m.OptString("s", ""))

	assert.Equal(t, true, m.OptBool("missing", true))
	assert.Equal(t, 9, m.OptInt("n", 9), "fractional number falls back")
	assert.Equal(t, "fb", m.OptString("b", "fb"))
	require.NoError(t, m.Err(), "best-effort access records nothing")
}
