package theory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterval(t *testing.T) {
	iv, err := ParseInterval("M3")
	require.NoError(t, err)
	assert.Equal(t, Interval{3, Major, false}, iv)

	_, err = ParseInterval("Q3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))

	_, err = ParseInterval("m1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDomainRange))
}

func TestIntervalSemitonesAndEquality(t *testing.T) {
	cases := []struct {
		iv   Interval
		want int
	}{
		{Interval{1, Perfect, false}, 0},
		{Interval{3, Major, false}, 4},
		{Interval{3, Minor, false}, 3},
		{Interval{5, Perfect, false}, 7},
		{Interval{5, Diminished, false}, 6},
		{Interval{5, Augmented, false}, 8},
		{Interval{8, Perfect, false}, 12},
		{Interval{9, Major, false}, 14},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.iv.Semitones(), c.iv.String())
	}

	a5 := Interval{5, Augmented, false}
	d5 := Interval{5, Diminished, false}
	assert.False(t, a5.Equal(d5))
	assert.True(t, Interval{5, Augmented, false}.Equal(Interval{5, Augmented, false}))
}

func TestNoteParseAndMIDI(t *testing.T) {
	n, err := ParseNote("C4")
	require.NoError(t, err)
	assert.Equal(t, 60, n.MIDI())

	n, err = ParseNote("Bb4")
	require.NoError(t, err)
	assert.Equal(t, 70, n.MIDI())

	n, err = ParseNote("C#x5")
	require.NoError(t, err)
	assert.Equal(t, 75, n.MIDI())
}

func TestNoteAddPreservesSpelling(t *testing.T) {
	bb4, err := ParseNote("Bb4")
	require.NoError(t, err)
	d5, err := ParseNote("D5")
	require.NoError(t, err)

	result := bb4.Add(Interval{3, Major, false})
	assert.Equal(t, d5, result)
}

func TestNoteSubDiatonicQuality(t *testing.T) {
	ab5, err := ParseNote("Ab5")
	require.NoError(t, err)
	ds5, err := ParseNote("D#5")
	require.NoError(t, err)

	iv, err := ab5.Sub(ds5)
	require.NoError(t, err)
	assert.Equal(t, Interval{5, DoublyDiminished, false}, iv)

	d5, _ := ParseNote("D5")
	bb4, _ := ParseNote("Bb4")
	iv, err = d5.Sub(bb4)
	require.NoError(t, err)
	assert.Equal(t, Interval{3, Major, false}, iv)
}

func TestChordParseAndRealize(t *testing.T) {
	c, err := ParseChord("Cdimsus4M7")
	require.NoError(t, err)
	notes := c.Realize(5)

	want := []string{"C5", "F5", "Gb5", "B5"}
	got := make([]string, len(notes))
	for i, n := range notes {
		got[i] = n.String()
	}
	assert.Equal(t, want, got)
}

func TestChordDefaultTriadIsMajor(t *testing.T) {
	c, err := ParseChord("C7")
	require.NoError(t, err)
	require.True(t, c.Tags[TagMajor])
	require.True(t, c.Tags[TagSeventh])
}

func TestChordFromNotesRoundTrip(t *testing.T) {
	c, err := ParseChord("Dm7")
	require.NoError(t, err)
	notes := c.Realize(4)

	back, err := ChordFromNotes(notes)
	require.NoError(t, err)
	assert.True(t, back.Tags[TagMinor])
	assert.True(t, back.Tags[TagSeventh])
}

func TestNaturalMinorRaisedDominant(t *testing.T) {
	tonic, err := ParseNote("A4")
	require.NoError(t, err)
	scale := &Scale{Tonic: tonic, Mode: NaturalMinorMode{}}

	notes, err := scale.Chord("v")
	require.NoError(t, err)
	chord, err := ChordFromNotes(notes)
	require.NoError(t, err)
	assert.True(t, chord.Tags[TagMajor])
}

func TestSecondaryDominantRoot(t *testing.T) {
	tonic, err := ParseNote("C4")
	require.NoError(t, err)
	scale := &Scale{Tonic: tonic, Mode: MajorMode{}}

	notes, err := scale.Chord("v7/ii")
	require.NoError(t, err)
	require.Len(t, notes, 4)

	ii := scale.DegreeNote(2)
	wantRoot := ii.Add(PerfectFifth)
	assert.Equal(t, wantRoot, notes[0])
}

func TestIsTransitableSecondaryDominant(t *testing.T) {
	tonic, _ := ParseNote("C4")
	scale := &Scale{Tonic: tonic, Mode: MajorMode{}}

	assert.True(t, scale.IsTransitable("vi", "v7/ii"))
	assert.True(t, scale.IsTransitable("v7/ii", "ii"))
	assert.False(t, scale.IsTransitable("v7/ii", "iii"))
}
