package melody

import "reharmonia/theory"

// Degree is a scale-degree index in [0, 7): 0 is the tonic.
type Degree int

// Note is one rhythmic/melodic event: a scale degree held for Length
// beats.
type Note struct {
	Degree Degree
	Length float64
}

// Timed pairs a Note with its absolute start time.
type Timed struct {
	Note   Note
	Timing float64
}

// Kind picks which scale the melody's degrees are read against once
// it leaves this package.
type Kind int

const (
	Ionian Kind = iota
	Aeolian
)

// Melody is a scale-degree-valued progression: the output of both the
// rhythm synthesizer (all degrees 0) and the optimizer (degrees
// reassigned by the constraint search). It carries the key/mode it
// was generated for so a caller can realize it against a theory.Scale
// without re-threading that context.
type Melody struct {
	Notes []Timed
	Kind  Kind
	Tonic theory.Note
}

// Length is the melody's total duration in beats.
func (m *Melody) Length() float64 {
	if len(m.Notes) == 0 {
		return 0
	}
	last := m.Notes[len(m.Notes)-1]
	return last.Timing + last.Note.Length
}

// Clone deep-copies the note slice so mutation during search never
// aliases another candidate.
func (m *Melody) Clone() *Melody {
	notes := make([]Timed, len(m.Notes))
	copy(notes, m.Notes)
	return &Melody{Notes: notes, Kind: m.Kind, Tonic: m.Tonic}
}

// AssignDegree overwrites the degree of the note at index i.
func (m *Melody) AssignDegree(i int, degree Degree) {
	m.Notes[i].Note.Degree = degree
}

func appendMelody(dst, src *Melody) {
	base := dst.Length()
	for _, tn := range src.Notes {
		dst.Notes = append(dst.Notes, Timed{Note: tn.Note, Timing: tn.Timing + base})
	}
}

// Scale builds the theory.Scale this melody's degrees are relative
// to.
func (m *Melody) Scale() *theory.Scale {
	var mode theory.Mode
	switch m.Kind {
	case Aeolian:
		mode = theory.NaturalMinorMode{}
	default:
		mode = theory.MajorMode{}
	}
	return &theory.Scale{Tonic: m.Tonic, Mode: mode}
}
