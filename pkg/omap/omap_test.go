package omap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONPreservesKeyOrder(t *testing.T) {
	input := `{"zeta":1,"alpha":{"b":2,"a":3},"mid":[1,"two",{"y":true,"x":null}]}`

	v, err := DecodeJSON([]byte(input))
	require.NoError(t, err)

	m, ok := v.(*Map)
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())

	nested, ok := m.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, nested.(*Map).Keys())

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
	// byte-for-byte: key order survived the round trip
	assert.Equal(t, input, string(out))
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"a":1} extra`))
	assert.Error(t, err)
}

func TestDecodeJSONKeepsNumberLiterals(t *testing.T) {
	v, err := DecodeJSON([]byte(`{"big":12345678901234567890,"dec":1.50}`))
	require.NoError(t, err)

	out, err := json.Marshal(v.(*Map))
	require.NoError(t, err)
	assert.Equal(t, `{"big":12345678901234567890,"dec":1.50}`, string(out))
}

func TestSetDeleteOrder(t *testing.T) {
	m := New()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)
	m.Set("a", 10) // re-set keeps position
	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())

	m.Delete("b")
	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.False(t, m.Has("b"))

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestCloneIsDeep(t *testing.T) {
	inner := New()
	inner.Set("x", "1")
	m := New()
	m.Set("inner", inner)
	m.Set("list", []any{"a"})

	c := m.Clone()
	got, _ := c.Get("inner")
	got.(*Map).Set("x", "changed")
	list, _ := c.Get("list")
	list.([]any)[0] = "changed"

	orig, _ := m.Get("inner")
	ox, _ := orig.(*Map).Get("x")
	assert.Equal(t, "1", ox)
	olist, _ := m.Get("list")
	assert.Equal(t, "a", olist.([]any)[0])
}

func TestEncodeJSONIndents(t *testing.T) {
	m := New()
	m.Set("a", json.Number("1"))
	out, err := EncodeJSON(m)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", string(out))
}

func TestNilMapIsSafe(t *testing.T) {
	var m *Map
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	assert.False(t, m.Has("a"))
	_, ok := m.Get("a")
	assert.False(t, ok)
}
