package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Conceptual-Machines/staccato-agents-go/midisink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInput(t *testing.T) {
	music, err := readInput("", []string{"V0", "I[PIANO]"})
	require.NoError(t, err)
	assert.Equal(t, "V0 I[PIANO]", music)

	path := filepath.Join(t.TempDir(), "song.staccato")
	require.NoError(t, os.WriteFile(path, []byte("KEY:Cmaj\nV0 I0\n"), 0o600))
	music, err = readInput(path, []string{"ignored"})
	require.NoError(t, err)
	assert.Equal(t, "KEY:Cmaj\nV0 I0\n", music)

	_, err = readInput("", nil)
	assert.Error(t, err)

	_, err = readInput(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestWriteMIDI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mid")
	require.NoError(t, writeMIDI(midisink.New(), path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "MThd", string(b[:4]))
}
