package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reharmonia/reharmonize"
	"reharmonia/theory"
)

func TestRenderIncludesTitleAndChords(t *testing.T) {
	tonic, err := theory.ParseNote("C4")
	require.NoError(t, err)
	scale := &theory.Scale{Tonic: tonic, Mode: theory.MajorMode{}}

	out := Render(Summary{
		Title:      "Test Piece",
		Scale:      scale,
		Pattern:    "AABA",
		TensionMin: 1,
		TensionMax: 5,
		Placements: []reharmonize.Placement{
			{Number: "i", Chord: mustChord(t, "C")},
			{Number: "v", Chord: mustChord(t, "G")},
		},
	})

	assert.Contains(t, out, "Test Piece")
	assert.Contains(t, out, "Chord Progression (2 chords)")
	assert.True(t, strings.Contains(out, "C") && strings.Contains(out, "G"))
}

func mustChord(t *testing.T, symbol string) theory.Chord {
	t.Helper()
	c, err := theory.ParseChord(symbol)
	require.NoError(t, err)
	return c
}
