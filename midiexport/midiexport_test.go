package midiexport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reharmonia/singable"
	"reharmonia/theory"
)

func TestWriteProducesNonEmptyFile(t *testing.T) {
	c4, err := theory.ParseNote("C4")
	require.NoError(t, err)

	song := singable.Key{Start: 0, Length: 1, Note: &c4, Channel: 0, Velocity: 1}

	path := filepath.Join(t.TempDir(), "out.mid")
	err = Write(path, song, Options{Tempo: 100, Programs: map[int]uint8{0: 0}})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestToTickAndVelocityConversions(t *testing.T) {
	assert.Equal(t, uint32(480), toTick(1))
	assert.Equal(t, uint32(960), toTick(2))
	assert.Equal(t, uint8(127), toVelocity(1))
	assert.Equal(t, uint8(0), toVelocity(0))
}
