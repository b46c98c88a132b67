package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSectionKeepsInsertionOrder(t *testing.T) {
	s := NewSection()
	s.Set("c", "3")
	s.Set("a", "1")
	s.Set("b", "2")
	s.Set("a", "updated")

	assert.Equal(t, []string{"c", "a", "b"}, s.Keys())
	v, _ := s.String("a")
	assert.Equal(t, "updated", v)
}

func TestSectionRemove(t *testing.T) {
	s := NewSection()
	s.Set("a", "1")
	s.Set("b", "2")

	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"))
	assert.Equal(t, []string{"b"}, s.Keys())
}

func TestSectionSetNilRemoves(t *testing.T) {
	s := NewSection()
	s.Set("a", "1")
	s.Set("a", nil)

	assert.False(t, s.Has("a"))
	assert.Equal(t, 0, s.Len())
}

func TestSectionNormalizesNumbers(t *testing.T) {
	s := NewSection()
	s.Set("i", 7)
	s.Set("f", float32(1.5))

	i, ok := s.Int("i")
	require.True(t, ok)
	assert.Equal(t, int64(7), i)

	f, ok := s.Float("f")
	require.True(t, ok)
	assert.Equal(t, 1.5, f)
}

func TestSectionFloatAcceptsIntegers(t *testing.T) {
	s := NewSection()
	s.Set("x", int64(64))

	f, ok := s.Float("x")
	require.True(t, ok)
	assert.Equal(t, 64.0, f)
}

func TestSectionRejectsUnsupportedTypes(t *testing.T) {
	s := NewSection()
	assert.Panics(t, func() {
		s.Set("bad", []string{"a"})
	})
}

func TestSectionCloneIsDeep(t *testing.T) {
	s := NewSection()
	child := NewSection()
	child.Set("k", "v")
	s.Set("child", child)

	c := s.Clone()
	cc, _ := c.Child("child")
	cc.Set("k", "changed")

	orig, _ := s.Child("child")
	v, _ := orig.String("k")
	assert.Equal(t, "v", v)
}

func TestSectionYAMLRoundTrip(t *testing.T) {
	s := NewSection()
	s.Set("name", "Steve")
	s.Set("count", int64(3))
	s.Set("whole", 64.0)
	s.Set("frac", -0.1)
	s.Set("ok", true)
	s.Set("numeric-string", "123")
	child := NewSection()
	child.Set("z", "last")
	child.Set("a", "first")
	s.Set("nested", child)

	data, err := yaml.Marshal(s)
	require.NoError(t, err)

	out := NewSection()
	require.NoError(t, yaml.Unmarshal(data, out))

	assert.Equal(t, []string{"name", "count", "whole", "frac", "ok", "numeric-string", "nested"}, out.Keys())
	name, _ := out.String("name")
	assert.Equal(t, "Steve", name)
	count, _ := out.Int("count")
	assert.Equal(t, int64(3), count)
	whole, ok := out.Get("whole")
	require.True(t, ok)
	assert.Equal(t, 64.0, whole)
	frac, _ := out.Float("frac")
	assert.Equal(t, -0.1, frac)
	b, _ := out.Bool("ok")
	assert.True(t, b)
	str, ok := out.String("numeric-string")
	require.True(t, ok)
	assert.Equal(t, "123", str)
	nested, ok := out.Child("nested")
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a"}, nested.Keys())
}

func TestSectionUnmarshalSkipsSequencesAndNulls(t *testing.T) {
	doc := "list:\n  - a\n  - b\nempty:\nkept: yes-string\n"

	out := NewSection()
	require.NoError(t, yaml.Unmarshal([]byte(doc), out))

	assert.Equal(t, []string{"kept"}, out.Keys())
}

func TestSectionUnmarshalRejectsNonMapping(t *testing.T) {
	out := NewSection()
	err := yaml.Unmarshal([]byte("- a\n- b\n"), out)
	assert.Error(t, err)
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{64, "64.0"},
		{-0.5, "-0.5"},
		{1e21, "1e+21"},
		{0.1, "0.1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFloat(tt.in))
	}
}
