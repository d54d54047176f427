package reharmonize

import (
	"testing"

	"reharmonia/singable"
	"reharmonia/theory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func note(s string) theory.Note {
	n, err := theory.ParseNote(s)
	if err != nil {
		panic(err)
	}
	return n
}

func TestSliceMelodyClipsAtBoundaries(t *testing.T) {
	c := note("C4")
	keys := []singable.Key{
		{Start: 0, Length: 3, Note: &c},
		{Start: 3, Length: 2, Note: &c},
	}
	out := sliceMelody(keys, 1, 2)
	require.Len(t, out, 1)
	assert.Equal(t, 1.0, out[0].Start)
	assert.Equal(t, 2.0, out[0].Length)
}

func TestScoreWindowEmptyIsZero(t *testing.T) {
	tonic := note("C4")
	scale := &theory.Scale{Tonic: tonic, Mode: theory.MajorMode{}}
	score, err := scoreWindow(scale, nil, "i")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestScoreWindowFavorsChordTones(t *testing.T) {
	tonic := note("C4")
	scale := &theory.Scale{Tonic: tonic, Mode: theory.MajorMode{}}
	c4 := note("C4")
	keys := []singable.Key{{Start: 0, Length: 1, Note: &c4}}

	scoreI, err := scoreWindow(scale, keys, "i")
	require.NoError(t, err)
	scoreV, err := scoreWindow(scale, keys, "v")
	require.NoError(t, err)
	assert.Greater(t, scoreI, scoreV)
}

func TestReharmonizeProducesOneChordPerWindow(t *testing.T) {
	tonic := note("C4")
	scale := &theory.Scale{Tonic: tonic, Mode: theory.MajorMode{Simple: true}}

	var melody []singable.Key
	for i := 0; i < 8; i++ {
		n := note("C4")
		melody = append(melody, singable.Key{Start: float64(i), Length: 1, Note: &n})
	}

	_, placements, err := Reharmonize(melody, scale, Options{Granularity: []float64{4}})
	require.NoError(t, err)
	require.Len(t, placements, 2)
	assert.Equal(t, 0.0, placements[0].Start)
	assert.Equal(t, 4.0, placements[1].Start)
}

func TestDagSolvePrefersTransitableChain(t *testing.T) {
	tonic := note("C4")
	scale := &theory.Scale{Tonic: tonic, Mode: theory.MajorMode{}}

	// iii -> v is not in the major transition graph; iv -> v is.
	dag := &Dag{}
	dag.AddNode("iii", 1, 0, 4)
	dag.AddNode("iv", 1, 0, 4)
	dag.AddNode("v", 10, 4, 4)

	path := dag.Solve(scale)
	require.Len(t, path, 2)
	assert.Equal(t, "iv", path[0].Number)
	assert.Equal(t, "v", path[1].Number)
}
