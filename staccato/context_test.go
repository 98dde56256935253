package staccato

import (
	"testing"

	"github.com/Conceptual-Machines/staccato-agents-go/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext_SeedDictionary(t *testing.T) {
	ctx := NewContext(nil)

	v, ok := ctx.Lookup(PercussionName)
	require.True(t, ok)
	assert.Equal(t, 9, v)

	for program, name := range InstrumentNames {
		v, ok := ctx.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, program, v, name)
	}
	assert.Len(t, ctx.Dictionary, len(InstrumentNames)+1)
}

func TestNewContext_Defaults(t *testing.T) {
	ctx := NewContext(nil)
	assert.Equal(t, theory.DefaultKey, ctx.Key)
	assert.Equal(t, theory.DefaultTimeSignature, ctx.TimeSignature)
	assert.IsType(t, ListenerAdapter{}, ctx.Listener())
}

func TestContext_DefineIsPerContext(t *testing.T) {
	a := NewContext(nil)
	b := NewContext(nil)

	a.Define("LEAD", 81)
	a.Define("PIANO", 4)

	v, ok := a.Lookup("LEAD")
	require.True(t, ok)
	assert.Equal(t, 81, v)
	v, _ = a.Lookup("PIANO")
	assert.Equal(t, 4, v)

	_, ok = b.Lookup("LEAD")
	assert.False(t, ok)
	v, _ = b.Lookup("PIANO")
	assert.Equal(t, 0, v)

	_, ok = NewContext(nil).Lookup("LEAD")
	assert.False(t, ok)
}
