package theory

import (
	"fmt"
	"sort"
	"strings"
)

// ChordTag is a single lexed token from a chord symbol's tag suffix
// (everything after the root letter and its accidental).
type ChordTag string

const (
	TagMajor        ChordTag = "major"
	TagMinor        ChordTag = "minor"
	TagAugmented    ChordTag = "augmented"
	TagDiminished   ChordTag = "diminished"
	TagSus2         ChordTag = "sus2"
	TagSus4         ChordTag = "sus4"
	TagSeventh      ChordTag = "seventh"
	TagSeventhMajor ChordTag = "seventh-major"
	TagFlatFive     ChordTag = "flat-five"
)

type chordToken struct {
	symbol string
	tag    ChordTag
}

// chordSymbols is the lexer's symbol table. Longest-match wins at
// each position, so "maj7"/"M7" are tried ahead of "maj"/"M".
var chordSymbols = []chordToken{
	{"maj7", TagSeventhMajor}, {"sus2", TagSus2}, {"sus4", TagSus4},
	{"min", TagMinor}, {"maj", TagMajor}, {"Maj", TagMajor}, {"dim", TagDiminished}, {"dom", TagSeventh}, {"aug", TagAugmented},
	{"M7", TagSeventhMajor}, {"b5", TagFlatFive},
	{"M", TagMajor}, {"m", TagMinor}, {"o", TagDiminished}, {"7", TagSeventh}, {"+", TagAugmented}, {"-", TagMinor},
}

// Chord is a root note spelling plus a set of lexed tags describing
// triad quality, seventh, suspension, and the flat-five alteration.
type Chord struct {
	Root byte
	RootAccidental int
	Tags map[ChordTag]bool
}

// ParseChord parses notation like "Cm7", "F#dim", or "Cdimsus4M7".
// Only sharp/natural roots are supported: a leading "b" after the
// root letter is always read as the start of the flat-five tag, never
// as a flattened root, since the symbol table has no other token
// starting with "b" to disambiguate against.
func ParseChord(s string) (Chord, error) {
	s = strings.TrimSpace(s)
	if s == "" || s[0] < 'A' || s[0] > 'G' {
		return Chord{}, fmt.Errorf("theory: %q is not a valid chord: %w", s, ErrParse)
	}
	root := s[0]
	i := 1
	accidental := 0
	for i < len(s) && (s[i] == '#' || s[i] == 'x') {
		if s[i] == '#' {
			accidental++
		} else {
			accidental += 2
		}
		i++
	}
	tags, err := lexChordTags(s[i:])
	if err != nil {
		return Chord{}, fmt.Errorf("theory: %q: %w", s, err)
	}
	if !tags[TagMajor] && !tags[TagMinor] && !tags[TagAugmented] && !tags[TagDiminished] {
		tags[TagMajor] = true
	}
	return Chord{Root: root, RootAccidental: accidental, Tags: tags}, nil
}

func lexChordTags(s string) (map[ChordTag]bool, error) {
	tags := map[ChordTag]bool{}
	i := 0
	for i < len(s) {
		best := -1
		var bestTag ChordTag
		for _, tok := range chordSymbols {
			if strings.HasPrefix(s[i:], tok.symbol) && len(tok.symbol) > best {
				best = len(tok.symbol)
				bestTag = tok.tag
			}
		}
		if best < 0 {
			return nil, fmt.Errorf("unrecognized chord token %q: %w", s[i:], ErrParse)
		}
		tags[bestTag] = true
		i += best
	}
	return tags, nil
}

// Realize spells out this chord's notes at the given octave for the
// root, applying tag rules in a fixed precedence: triad tags set
// degrees 3 and 5; seventh tags add degree 7; flat-five overrides
// degree 5; sus2/sus4 remove degree 3 in favor of degree 2 or 4.
func (c Chord) Realize(octave int) []Note {
	root := Note{Letter: c.Root, Accidental: c.RootAccidental, Octave: octave}
	degrees := map[int]Note{1: root}

	switch {
	case c.Tags[TagMinor]:
		degrees[3] = root.Add(MinorThird)
		degrees[5] = root.Add(PerfectFifth)
	case c.Tags[TagAugmented]:
		degrees[3] = root.Add(MajorThird)
		degrees[5] = root.Add(AugmentedFifth)
	case c.Tags[TagDiminished]:
		degrees[3] = root.Add(MinorThird)
		degrees[5] = root.Add(DiminishedFifth)
	default:
		degrees[3] = root.Add(MajorThird)
		degrees[5] = root.Add(PerfectFifth)
	}

	if c.Tags[TagSeventh] {
		degrees[7] = root.Add(MinorSeventh)
	}
	if c.Tags[TagSeventhMajor] {
		degrees[7] = root.Add(MajorSeventh)
	}
	if c.Tags[TagFlatFive] {
		degrees[5] = root.Add(DiminishedFifth)
	}
	if c.Tags[TagSus2] {
		delete(degrees, 3)
		degrees[2] = root.Add(MajorSecond)
	}
	if c.Tags[TagSus4] {
		delete(degrees, 3)
		degrees[4] = root.Add(PerfectFourth)
	}

	keys := make([]int, 0, len(degrees))
	for k := range degrees {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	notes := make([]Note, len(keys))
	for i, k := range keys {
		notes[i] = degrees[k]
	}
	return notes
}

func (c Chord) String() string {
	sign := accidentalNotation[c.RootAccidental]
	if c.RootAccidental > 1 {
		sign = strings.Repeat("#", c.RootAccidental)
	}
	suffix := ""
	switch {
	case c.Tags[TagMinor]:
		suffix = "m"
	case c.Tags[TagAugmented]:
		suffix = "aug"
	case c.Tags[TagDiminished]:
		suffix = "dim"
	}
	for _, t := range []chordToken{{"sus2", TagSus2}, {"sus4", TagSus4}, {"M7", TagSeventhMajor}, {"7", TagSeventh}, {"b5", TagFlatFive}} {
		if c.Tags[t.tag] {
			suffix += t.symbol
		}
	}
	return fmt.Sprintf("%c%s%s", c.Root, sign, suffix)
}

// ChordFromNotes infers triad quality and seventh from a root-first
// slice of realized notes, for printing a canonical symbol over a
// chord the reharmonizer built directly from scale degrees rather
// than from parsed notation.
func ChordFromNotes(notes []Note) (Chord, error) {
	if len(notes) < 3 {
		return Chord{}, fmt.Errorf("theory: chord-from-notes needs at least 3 notes: %w", ErrDomainRange)
	}
	root := notes[0]
	third, err := notes[1].Sub(root)
	if err != nil {
		return Chord{}, err
	}
	fifth, err := notes[2].Sub(root)
	if err != nil {
		return Chord{}, err
	}

	tags := map[ChordTag]bool{}
	switch {
	case third.Equal(MajorThird) && fifth.Equal(PerfectFifth):
		tags[TagMajor] = true
	case third.Equal(MinorThird) && fifth.Equal(PerfectFifth):
		tags[TagMinor] = true
	case third.Equal(MajorThird) && fifth.Equal(AugmentedFifth):
		tags[TagAugmented] = true
	case third.Equal(MinorThird) && fifth.Equal(DiminishedFifth):
		tags[TagDiminished] = true
	default:
		return Chord{}, fmt.Errorf("theory: chord-from-notes given unparseable intervals: %w", ErrDomainRange)
	}

	if len(notes) >= 4 {
		seventh, err := notes[3].Sub(root)
		if err != nil {
			return Chord{}, err
		}
		switch {
		case seventh.Equal(MajorSeventh):
			tags[TagSeventhMajor] = true
		case seventh.Equal(MinorSeventh):
			tags[TagSeventh] = true
		}
	}

	return Chord{Root: root.Letter, RootAccidental: root.Accidental, Tags: tags}, nil
}
