package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_BasicIteration(t *testing.T) {
	sc := New([]byte("abc"))
	assert.Equal(t, 0, sc.Pos())

	ch, ok := sc.Next()
	require.True(t, ok)
	assert.Equal(t, byte('a'), ch)
	assert.Equal(t, 1, sc.Pos())

	ch, ok = sc.Next()
	require.True(t, ok)
	assert.Equal(t, byte('b'), ch)

	ch, ok = sc.Next()
	require.True(t, ok)
	assert.Equal(t, byte('c'), ch)
	assert.True(t, sc.EOF())

	_, ok = sc.Next()
	assert.False(t, ok)
}

func TestScanner_PeekDoesNotConsume(t *testing.T) {
	sc := New([]byte("xy"))
	ch, ok := sc.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('x'), ch)
	assert.Equal(t, 0, sc.Pos())

	ch, _ = sc.Next()
	assert.Equal(t, byte('x'), ch)

	sc.Next()
	_, ok = sc.Peek()
	assert.False(t, ok)
}

func TestScanner_LineTracking(t *testing.T) {
	sc := New([]byte("a\nb\nc"))
	sc.Next() // a
	assert.Equal(t, 1, sc.Line())
	sc.Next() // \n
	assert.Equal(t, 2, sc.Line())
	sc.Next() // b
	assert.Equal(t, 2, sc.Line())
	sc.Next() // \n
	assert.Equal(t, 3, sc.Line())
}

func TestScanner_LookingAt(t *testing.T) {
	sc := New([]byte("SID(x)"))
	assert.True(t, sc.LookingAt("SID("))
	assert.False(t, sc.LookingAt("SID(y"))

	sc.Next()
	assert.False(t, sc.LookingAt("SID("))
	assert.True(t, sc.LookingAt("ID("))

	// A prefix longer than the remaining input never matches.
	sc = New([]byte("SI"))
	assert.False(t, sc.LookingAt("SID("))
}

func TestScanner_Skip(t *testing.T) {
	sc := New([]byte("abcdef"))
	assert.Equal(t, 4, sc.Skip(4))
	assert.Equal(t, 4, sc.Pos())

	ch, _ := sc.Next()
	assert.Equal(t, byte('e'), ch)

	// Skip past end of input reports how much was consumed.
	assert.Equal(t, 1, sc.Skip(10))
	assert.True(t, sc.EOF())
}

func TestScanner_EmptyInput(t *testing.T) {
	sc := New(nil)
	assert.True(t, sc.EOF())
	_, ok := sc.Next()
	assert.False(t, ok)
	_, ok = sc.Peek()
	assert.False(t, ok)
}

func TestIsSpace(t *testing.T) {
	for _, ch := range []byte{' ', '\t', '\n', '\v', '\f', '\r'} {
		assert.True(t, IsSpace(ch), "IsSpace(%q)", ch)
	}
	for _, ch := range []byte{'a', '0', '(', 0} {
		assert.False(t, IsSpace(ch), "IsSpace(%q)", ch)
	}
}

func TestIsAlnum(t *testing.T) {
	for _, ch := range []byte{'a', 'z', 'A', 'Z', '0', '9'} {
		assert.True(t, IsAlnum(ch), "IsAlnum(%q)", ch)
	}
	for _, ch := range []byte{'_', ' ', '(', '"', '\\', 0} {
		assert.False(t, IsAlnum(ch), "IsAlnum(%q)", ch)
	}
}
