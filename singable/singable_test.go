package singable

import (
	"testing"

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

func TestKeySings(t *testing.T) {
	n := note("C4")
	k := Key{Start: 0, Length: 1, Note: &n, Channel: 0, Velocity: 1}
	got := Materialize(k)
	require.Len(t, got, 1)
	assert.Equal(t, k, got[0])
}

func TestEnumerateChainsByExtent(t *testing.T) {
	a := note("C4")
	b := note("D4")
	slots := []Slot{
		One(Key{Start: 0, Length: 2, Note: &a, Velocity: 1}),
		One(Key{Start: 0, Length: 1, Note: &b, Velocity: 1}),
	}
	out := Materialize(Enumerate(nil)(slots))
	require.Len(t, out, 2)
	assert.Equal(t, 0.0, out[0].Start)
	assert.Equal(t, 2.0, out[1].Start)
}

func TestEnumerateFixedInterval(t *testing.T) {
	a := note("C4")
	interval := 1.5
	slots := []Slot{
		One(Key{Start: 0, Length: 2, Note: &a, Velocity: 1}),
		One(Key{Start: 0, Length: 2, Note: &a, Velocity: 1}),
	}
	out := Materialize(Enumerate(&interval)(slots))
	require.Len(t, out, 2)
	assert.Equal(t, 0.0, out[0].Start)
	assert.Equal(t, 1.5, out[1].Start)
}

func TestLengthenScalesLengthNotStart(t *testing.T) {
	a := note("C4")
	k := Key{Start: 3, Length: 2, Note: &a, Velocity: 1}
	out := Materialize(Lengthen(2)(k))
	require.Len(t, out, 1)
	assert.Equal(t, 3.0, out[0].Start)
	assert.Equal(t, 4.0, out[0].Length)
}

func TestTransposeLeavesRestsAlone(t *testing.T) {
	rest := Key{Start: 0, Length: 1, Note: nil, Velocity: 0}
	out := Materialize(Transpose(theory.MajorThird)(rest))
	require.Len(t, out, 1)
	assert.Nil(t, out[0].Note)
}

func TestArpeggioClipClampsBothEnds(t *testing.T) {
	c1, c2, c3 := note("C4"), note("E4"), note("G4")
	chord := Parallel()([]Singable{
		Key{Start: 0, Length: 4, Note: &c1, Velocity: 1},
		Key{Start: 0, Length: 4, Note: &c2, Velocity: 1},
		Key{Start: 0, Length: 4, Note: &c3, Velocity: 1},
	})
	low := note("C3")  // MIDI 48, far below offset 60: index very negative
	high := note("C6")  // MIDI 84, far above: index very positive
	pattern := Parallel()([]Singable{
		Key{Start: 0, Length: 1, Note: &low, Velocity: 1},
		Key{Start: 1, Length: 1, Note: &high, Velocity: 1},
	})
	out := Materialize(Arpeggio(ArpeggioOptions{Outliers: ArpeggioClip, NumberOffset: 60})(chord, pattern))
	require.Len(t, out, 2)
	assert.Equal(t, c1, *out[0].Note)
	assert.Equal(t, c3, *out[1].Note)
}

func TestHarmonizeEmitsBothVoices(t *testing.T) {
	a := note("C4")
	out := Materialize(Harmonize(theory.MajorThird)(Key{Start: 0, Length: 1, Note: &a, Velocity: 1}))
	require.Len(t, out, 2)
	assert.Equal(t, a, *out[0].Note)
	assert.Equal(t, a.Add(theory.MajorThird), *out[1].Note)
}
