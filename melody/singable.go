package melody

import "reharmonia/singable"

// Singable realizes the melody's scale degrees against its own Scale,
// producing a composition-graph leaf ready to feed into the rest of
// the Singable combinators.
func (m *Melody) Singable() singable.Singable {
	scale := m.Scale()
	children := make([]singable.Singable, len(m.Notes))
	for i, tn := range m.Notes {
		note := scale.DegreeNote(int(tn.Note.Degree) + 1)
		children[i] = singable.Key{Start: tn.Timing, Length: tn.Note.Length, Note: &note, Velocity: 1}
	}
	return singable.Parallel()(children)
}
