package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineValidation(t *testing.T) {
	tab := New()
	assert.Error(t, tab.Define("bad name", "x"))
	assert.Error(t, tab.Define("zero{0}", "x"))
	assert.Error(t, tab.Define("neg{-1}", "x"))
	assert.Error(t, tab.Define("open{2", "x"))
	assert.NoError(t, tab.Define("sideeffect", "\\par Side Effects:"))
	assert.NoError(t, tab.Define("pair{2}", "first=\\1 second=\\2"))
	assert.Equal(t, 2, tab.Len())
}

func TestExpand(t *testing.T) {
	tab := New()
	require.NoError(t, tab.Define("version", "2.4"))
	assert.Equal(t, "release 2.4 final", tab.Expand("release \\version final"))
	assert.Equal(t, "release 2.4 final", tab.Expand("release @version final"))
}

func TestExpandArgs(t *testing.T) {
	tab := New()
	require.NoError(t, tab.Define("pair{2}", "first=\\1 second=\\2"))
	assert.Equal(t, "first=a second=b", tab.Expand("\\pair{a,b}"))
	// escaped commas stay inside one argument
	assert.Equal(t, "first=a,b second=c", tab.Expand("\\pair{a\\,b,c}"))
}

func TestExpandNested(t *testing.T) {
	tab := New()
	require.NoError(t, tab.Define("inner", "X"))
	require.NoError(t, tab.Define("outer", "\\inner!"))
	got := tab.Expand("\\outer")
	assert.Equal(t, "X!", got)
	// expansion is a fixed point once no references remain
	assert.Equal(t, got, tab.Expand(got))
}

func TestExpandRecursionCap(t *testing.T) {
	tab := New()
	require.NoError(t, tab.Define("loop", "\\loop"))
	assert.Equal(t, "\\loop", tab.Expand("\\loop"))
}

func TestExpandEscapedCommandChar(t *testing.T) {
	tab := New()
	require.NoError(t, tab.Define("loop", "\\loop"))
	assert.Equal(t, "\\\\loop", tab.Expand("\\\\loop"))
}

func TestExpandUnterminatedArgs(t *testing.T) {
	tab := New()
	require.NoError(t, tab.Define("pair{2}", "first=\\1 second=\\2"))
	assert.Equal(t, "\\pair{a,b", tab.Expand("\\pair{a,b"))
}

func TestExpandUnknownName(t *testing.T) {
	tab := New()
	require.NoError(t, tab.Define("known", "K"))
	assert.Equal(t, "\\unknown stays", tab.Expand("\\unknown stays"))
}
