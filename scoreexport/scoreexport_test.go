package scoreexport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reharmonia/singable"
	"reharmonia/theory"
)

func TestRenderEmitsNoteAndRest(t *testing.T) {
	c4, err := theory.ParseNote("C4")
	require.NoError(t, err)

	keys := []singable.Key{
		{Start: 0, Length: 1, Note: &c4, Channel: 0, Velocity: 1},
		{Start: 2, Length: 1, Note: &c4, Channel: 0, Velocity: 1},
	}
	out := Render(singable.Parallel()([]singable.Singable{keys[0], keys[1]}), nil)

	assert.Contains(t, out, "c")
	assert.Contains(t, out, "r4") // the 1-beat gap between the two notes
}

func TestNoteLengthFallsBackForUnknownLengths(t *testing.T) {
	assert.Equal(t, "4", noteLength(1))
	assert.True(t, strings.HasPrefix(noteLength(5), "("))
}
