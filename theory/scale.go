package theory

import (
	"fmt"
	"regexp"
	"strings"
)

var romanNumerals = []string{"i", "ii", "iii", "iv", "v", "vi", "vii"}

func numberToIndex(number string) (int, error) {
	for i, n := range romanNumerals {
		if n == number {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("theory: %q is not a scale-degree numeral: %w", number, ErrDomainRange)
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

func stripSeventh(number string) (base string, seventh bool) {
	if strings.HasSuffix(number, "7") && !strings.HasPrefix(number, "v7/") {
		return number[:len(number)-1], true
	}
	return number, false
}

// Mode supplies the per-degree content that differs between scale
// types: the stepwise pattern from the tonic, which roman numerals
// are in the vocabulary, which of those are legal cadence targets,
// the transition graph used for reharmonization, available tension
// notes per degree, and how a diatonic triad/seventh is built (the
// one place Natural Minor needs to override the general rule, for its
// raised-seventh dominant).
type Mode interface {
	Name() string
	DegreeInterval(degree int) Interval
	Diatonic(s *Scale, index int, includeSeventh bool) []Note
	TensionPrimary(number string) []Interval
	TensionSecondary(number string) []Interval
	PossibleNumbers() []string
	PossibleCadences() []string
	Transitions() map[string][]string
}

// Scale is a Mode anchored at a tonic Note.
type Scale struct {
	Tonic Note
	Mode  Mode
}

// DegreeNote returns the note 1-indexed degree steps above the tonic,
// wrapping through as many octaves as index requires.
func (s *Scale) DegreeNote(index int) Note {
	note := s.Tonic
	for index > 7 {
		index -= 7
		note = note.Add(PerfectOctave)
	}
	return note.Add(s.Mode.DegreeInterval(index))
}

func (s *Scale) rootForNumber(number string) (Note, bool, error) {
	lower := strings.ToLower(number)
	if m := secondaryDominantPattern.FindStringSubmatch(lower); m != nil {
		idx, err := numberToIndex(m[1])
		if err != nil {
			return Note{}, false, err
		}
		return s.DegreeNote(idx).Add(PerfectFifth), true, nil
	}
	base, _ := stripSeventh(lower)
	idx, err := numberToIndex(base)
	if err != nil {
		return Note{}, false, err
	}
	return s.DegreeNote(idx), false, nil
}

var diatonicPattern = regexp.MustCompile(`^(vii|iii|iv|vi|ii|i|v)(7)?$`)
var secondaryDominantPattern = regexp.MustCompile(`^v7/(vii|iii|iv|vi|ii|i|v)$`)

// Chord realizes the roman-numeral chord named by number: a diatonic
// triad/seventh ("ii", "vii7", ...) or a secondary dominant seventh
// ("v7/ii", rooted a perfect fifth above degree ii).
func (s *Scale) Chord(number string) ([]Note, error) {
	lower := strings.ToLower(number)
	if m := secondaryDominantPattern.FindStringSubmatch(lower); m != nil {
		idx, err := numberToIndex(m[1])
		if err != nil {
			return nil, err
		}
		root := s.DegreeNote(idx).Add(PerfectFifth)
		return []Note{root, root.Add(MajorThird), root.Add(PerfectFifth), root.Add(MinorSeventh)}, nil
	}
	if m := diatonicPattern.FindStringSubmatch(lower); m != nil {
		idx, err := numberToIndex(m[1])
		if err != nil {
			return nil, err
		}
		return s.Mode.Diatonic(s, idx, m[2] == "7"), nil
	}
	return nil, fmt.Errorf("theory: %q is not a recognized roman numeral: %w", number, ErrDomainRange)
}

// TensionPrimary returns the absolute notes available as primary
// tensions above the chord named by number.
func (s *Scale) TensionPrimary(number string) ([]Note, error) {
	return s.tensionNotes(number, s.Mode.TensionPrimary)
}

// TensionSecondary returns the absolute notes available as secondary
// tensions above the chord named by number.
func (s *Scale) TensionSecondary(number string) ([]Note, error) {
	return s.tensionNotes(number, s.Mode.TensionSecondary)
}

func (s *Scale) tensionNotes(number string, lookup func(string) []Interval) ([]Note, error) {
	lower := strings.ToLower(number)
	base, _ := stripSeventh(lower)
	root, _, err := s.rootForNumber(base)
	if err != nil {
		return nil, err
	}
	intervals := lookup(base)
	notes := make([]Note, len(intervals))
	for i, iv := range intervals {
		notes[i] = root.Add(iv)
	}
	return notes, nil
}

// PossibleNumbers lists the roman numerals this scale's mode accepts.
func (s *Scale) PossibleNumbers() []string { return s.Mode.PossibleNumbers() }

// PossibleCadences lists the roman numerals that may end a phrase.
func (s *Scale) PossibleCadences() []string { return s.Mode.PossibleCadences() }

// IsTransitable reports whether chord b may follow chord a, per the
// mode's transition graph, with secondary dominants resolving only to
// their target (or staying put) and anything resolving to a
// secondary dominant needing that dominant's target to transition in.
func (s *Scale) IsTransitable(a, b string) bool {
	a, _ = stripSeventh(strings.ToLower(a))
	b, _ = stripSeventh(strings.ToLower(b))
	trans := s.Mode.Transitions()

	if strings.HasPrefix(a, "v7/") {
		target := a[3:]
		return b == target || b == a
	}
	if strings.HasPrefix(b, "v7/") {
		target := b[3:]
		return contains(trans[a], target)
	}
	return contains(trans[a], b)
}
