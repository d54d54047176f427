package theory

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var letters = "CDEFGAB"

var letterBaseMIDI = map[byte]int{
	'C': 12, 'D': 14, 'E': 16, 'F': 17, 'G': 19, 'A': 21, 'B': 23,
}

var accidentalNotation = map[int]string{
	3: "#x", 2: "x", 1: "#", 0: "", -1: "b", -2: "bb", -3: "bbb",
}

// Note is a letter-spelled pitch: a natural-letter name, an
// accidental offset in semitones, and an octave. Two notes with the
// same MIDI number but different spelling (Bb4 and A#4) are not
// Note-equal, only enharmonically equal.
type Note struct {
	Letter     byte
	Accidental int
	Octave     int
}

func letterIndex(l byte) int {
	return strings.IndexByte(letters, l)
}

func floorDivMod(a, b int) (q, r int) {
	q = a / b
	r = a % b
	if r < 0 {
		r += b
		q--
	}
	return
}

var notePattern = regexp.MustCompile(`^([A-G])([#xb]*)(-?\d+)$`)

// ParseNote parses notation like "C4", "Bb3", "F#x5", or "Abbb0".
func ParseNote(s string) (Note, error) {
	s = strings.TrimSpace(s)
	m := notePattern.FindStringSubmatch(s)
	if m == nil {
		return Note{}, fmt.Errorf("theory: %q is not a valid note: %w", s, ErrParse)
	}
	accidental := 0
	for _, c := range m[2] {
		switch c {
		case '#':
			accidental++
		case 'x':
			accidental += 2
		case 'b':
			accidental--
		}
	}
	if accidental < -3 || accidental > 3 {
		return Note{}, fmt.Errorf("theory: %q has an accidental out of range: %w", s, ErrDomainRange)
	}
	octave, err := strconv.Atoi(m[3])
	if err != nil {
		return Note{}, fmt.Errorf("theory: %q is not a valid note: %w", s, ErrParse)
	}
	return Note{Letter: m[1][0], Accidental: accidental, Octave: octave}, nil
}

// MIDI returns the absolute MIDI note number for this spelling.
func (n Note) MIDI() int {
	return letterBaseMIDI[n.Letter] + n.Accidental + 12*n.Octave
}

// EnharmonicEqual compares notes by MIDI number, ignoring spelling.
func (n Note) EnharmonicEqual(other Note) bool {
	return n.MIDI() == other.MIDI()
}

// PitchClassEqual compares notes by MIDI number modulo the octave.
func (n Note) PitchClassEqual(other Note) bool {
	_, r1 := floorDivMod(n.MIDI(), 12)
	_, r2 := floorDivMod(other.MIDI(), 12)
	return r1 == r2
}

// Sharp raises the note by one semitone without changing its letter.
func (n Note) Sharp() Note {
	return Note{Letter: n.Letter, Accidental: n.Accidental + 1, Octave: n.Octave}
}

// Flat lowers the note by one semitone without changing its letter.
func (n Note) Flat() Note {
	return Note{Letter: n.Letter, Accidental: n.Accidental - 1, Octave: n.Octave}
}

// AddOctaves shifts the note by n octaves, same letter and accidental.
func (n Note) AddOctaves(octaves int) Note {
	return Note{Letter: n.Letter, Accidental: n.Accidental, Octave: n.Octave + octaves}
}

// Add returns the note reached by stacking interval above n,
// preserving the diatonic letter distance the interval's Number
// implies and deriving the accidental from the requested semitone
// span.
func (n Note) Add(interval Interval) Note {
	toneIndexSelf := letterIndex(n.Letter) + n.Octave*7
	magnitude, _ := interval.magnitudeSemitones()

	var toneIndexResult int
	if !interval.Inverted {
		toneIndexResult = toneIndexSelf + (interval.Number - 1)
	} else {
		toneIndexResult = toneIndexSelf - (interval.Number - 1)
	}

	octaveResult, letterIdx := floorDivMod(toneIndexResult, 7)
	letterResult := letters[letterIdx]
	neutral := Note{Letter: letterResult, Accidental: 0, Octave: octaveResult}
	semitonesNeutral := neutral.MIDI() - n.MIDI()

	if !interval.Inverted {
		return Note{Letter: letterResult, Accidental: magnitude - semitonesNeutral, Octave: octaveResult}
	}
	return Note{Letter: letterResult, Accidental: -(magnitude + semitonesNeutral), Octave: octaveResult}
}

// Sub returns the diatonic interval from other up to n.
func (n Note) Sub(other Note) (Interval, error) {
	toneIndexA := letterIndex(n.Letter) + n.Octave*7
	toneIndexB := letterIndex(other.Letter) + other.Octave*7
	number := toneIndexA - toneIndexB + 1
	halves := (number-1)*2 - (n.MIDI() - other.MIDI())

	quality, err := qualityForNumberHalves(number, halves)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Number: number, Quality: quality, Inverted: false}, nil
}

func reverseQualities(qs []Quality) []Quality {
	out := make([]Quality, len(qs))
	for i, q := range qs {
		out[len(qs)-1-i] = q
	}
	return out
}

func qualityForNumberHalves(number, halves int) (Quality, error) {
	for number > 7 {
		number -= 7
		halves -= 2
	}
	var seq []Quality
	var start int
	switch number {
	case 1:
		seq, start = reverseQualities(perfectOrder), -2
	case 4, 5:
		seq, start = reverseQualities(perfectOrder), -1
	case 2, 3:
		seq, start = reverseQualities(majorOrder), -2
	case 6, 7:
		seq, start = reverseQualities(majorOrder), -1
	default:
		return "", fmt.Errorf("theory: interval number %d out of range: %w", number, ErrDomainRange)
	}
	idx := halves - start
	if idx < 0 || idx >= len(seq) {
		return "", fmt.Errorf("theory: no interval quality fits number %d at this spelling: %w", number, ErrDomainRange)
	}
	return seq[idx], nil
}

func (n Note) String() string {
	return fmt.Sprintf("%c%s%d", n.Letter, accidentalNotation[n.Accidental], n.Octave)
}
