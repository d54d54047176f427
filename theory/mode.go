package theory

// MajorMode is the Ionian step pattern. Simple restricts the
// vocabulary to the tonic/subdominant/dominant triads only, for
// generated material that should stay harmonically plain.
type MajorMode struct {
	Simple bool
}

var majorDegreeIntervals = map[int]Interval{
	1: Unison, 2: MajorSecond, 3: MajorThird, 4: PerfectFourth,
	5: PerfectFifth, 6: MajorSixth, 7: MajorSeventh,
}

func (m MajorMode) Name() string { return "major" }

func (m MajorMode) DegreeInterval(degree int) Interval {
	return majorDegreeIntervals[degree]
}

func (m MajorMode) Diatonic(s *Scale, index int, includeSeventh bool) []Note {
	return diatonicTriad(s, index, includeSeventh)
}

// fullMajorNumbers omits "vii" and "v7/vii": the vocabulary never
// builds a chord on the unstable leading-tone triad.
var fullMajorNumbers = []string{
	"i", "ii", "iii", "iv", "v", "vi",
	"v7/ii", "v7/iii", "v7/iv", "v7/v", "v7/vi",
}
var simpleMajorNumbers = []string{"i", "iv", "v"}

func (m MajorMode) PossibleNumbers() []string {
	if m.Simple {
		return simpleMajorNumbers
	}
	return fullMajorNumbers
}

func (m MajorMode) PossibleCadences() []string { return []string{"i", "v"} }

// majorTransitions is the tonic scale's chord-to-chord graph: a chord
// may repeat (every list includes itself) or move to one of a handful
// of diatonic neighbors. "vii" has no listed transitions since the
// vocabulary never resolves through the leading-tone triad alone.
var majorTransitions = map[string][]string{
	"i":   {"i", "iii", "vi", "ii", "iv", "v"},
	"ii":  {"ii", "iii", "v"},
	"iii": {"iii", "vi", "ii", "iv"},
	"iv":  {"iv", "i", "iii", "ii", "v"},
	"v":   {"v", "i", "iii", "vi"},
	"vi":  {"vi", "iii", "ii", "iv"},
	"vii": {},
}

var simpleMajorTransitions = map[string][]string{
	"i":  {"i", "iv", "v"},
	"iv": {"i", "iv", "v"},
	"v":  {"i", "iv", "v"},
}

func (m MajorMode) Transitions() map[string][]string {
	if m.Simple {
		return simpleMajorTransitions
	}
	return majorTransitions
}

// majorTensionPrimary and majorTensionSecondary give the diatonic (primary)
// and chromatic (secondary, riskier) upper-structure tensions available on
// each degree and secondary dominant in major.
var majorTensionPrimary = map[string][]Interval{
	"i":      {MajorNinth, MajorThirteenth},
	"ii":     {MajorNinth, PerfectEleventh},
	"iii":    {PerfectEleventh},
	"iv":     {MajorNinth, AugmentedEleventh, MajorThirteenth},
	"v":      {MajorNinth, MajorThirteenth},
	"vi":     {MajorNinth, PerfectEleventh},
	"vii":    {PerfectEleventh, MinorThirteenth},
	"v7/ii":  {MinorNinth, MajorNinth, AugmentedNinth, MinorThirteenth},
	"v7/iii": {MinorNinth, AugmentedNinth, MinorThirteenth},
	"v7/iv":  {MajorNinth, MajorThirteenth},
	"v7/v":   {MajorNinth, MajorThirteenth},
	"v7/vi":  {MinorNinth, AugmentedNinth, MinorThirteenth},
}

var majorTensionSecondary = map[string][]Interval{
	"i":      {AugmentedEleventh},
	"ii":     {},
	"iii":    {MajorNinth},
	"iv":     {},
	"v":      {MinorNinth, AugmentedNinth, AugmentedEleventh, MinorThirteenth},
	"vi":     {MajorThirteenth},
	"vii":    {},
	"v7/ii":  {AugmentedEleventh, MajorThirteenth},
	"v7/iii": {AugmentedEleventh},
	"v7/iv":  {MinorNinth, AugmentedNinth, AugmentedEleventh, MinorThirteenth},
	"v7/v":   {MinorNinth, AugmentedNinth, AugmentedEleventh, MinorThirteenth},
	"v7/vi":  {MajorNinth, AugmentedEleventh},
}

func (m MajorMode) TensionPrimary(number string) []Interval   { return majorTensionPrimary[number] }
func (m MajorMode) TensionSecondary(number string) []Interval { return majorTensionSecondary[number] }

// NaturalMinorMode is the Aeolian step pattern, with a harmonic-minor
// style override for the dominant triad: its third (the scale's
// seventh degree) is raised a semitone so "v" resolves like a real
// dominant rather than the natural minor's own minor v.
type NaturalMinorMode struct{}

var naturalMinorDegreeIntervals = map[int]Interval{
	1: Unison, 2: MajorSecond, 3: MinorThird, 4: PerfectFourth,
	5: PerfectFifth, 6: MinorSixth, 7: MinorSeventh,
}

func (m NaturalMinorMode) Name() string { return "natural-minor" }

func (m NaturalMinorMode) DegreeInterval(degree int) Interval {
	return naturalMinorDegreeIntervals[degree]
}

func (m NaturalMinorMode) Diatonic(s *Scale, index int, includeSeventh bool) []Note {
	if index == 5 {
		return []Note{s.DegreeNote(5), s.DegreeNote(7).Sharp(), s.DegreeNote(9)}
	}
	return diatonicTriad(s, index, includeSeventh)
}

// naturalMinorNumbers omits "v7/ii": the raised leading tone that
// would make ii a usable secondary-dominant target isn't diatonic to
// natural minor.
var naturalMinorNumbers = []string{
	"i", "ii", "iii", "iv", "v", "vi", "vii",
	"v7/iii", "v7/iv", "v7/v", "v7/vi", "v7/vii",
}

func (m NaturalMinorMode) PossibleNumbers() []string  { return naturalMinorNumbers }
func (m NaturalMinorMode) PossibleCadences() []string { return []string{"i", "v"} }

// naturalMinorTransitions is distinct from the major mode's graph: the
// minor tonic reaches every degree directly, but secondary-dominant
// targets iii/iv/v/vi/vii reach a narrower diatonic neighborhood.
var naturalMinorTransitions = map[string][]string{
	"i":   {"i", "ii", "iii", "iv", "v", "vi", "vii"},
	"ii":  {"ii", "iii", "v"},
	"iii": {"i", "ii", "iii", "iv", "vi"},
	"iv":  {"i", "ii", "iv", "v", "vii"},
	"v":   {"i", "iii", "v", "vi"},
	"vi":  {"ii", "iv", "v", "vi", "vii"},
	"vii": {"i", "iii", "v", "vi", "vii"},
}

func (m NaturalMinorMode) Transitions() map[string][]string {
	return naturalMinorTransitions
}

var naturalMinorTensionPrimary = map[string][]Interval{
	"i":       {MajorNinth, PerfectEleventh},
	"ii":      {PerfectEleventh, MinorThirteenth},
	"iii":     {MajorNinth, MajorThirteenth},
	"iv":      {MajorNinth, PerfectEleventh, MajorThirteenth},
	"v":       {MinorNinth, AugmentedNinth, MinorThirteenth},
	"vi":      {MajorNinth, AugmentedNinth, MajorThirteenth},
	"vii":     {MajorNinth, MajorThirteenth},
	"v7/iii":  {MajorNinth, MajorThirteenth},
	"v7/iv":   {MinorNinth, MajorNinth, AugmentedNinth, MinorThirteenth},
	"v7/v":    {MinorNinth, AugmentedNinth, MinorThirteenth},
	"v7/vi":   {MajorNinth, MajorThirteenth},
	"v7/vii":  {MajorNinth, AugmentedNinth, MajorThirteenth},
}

var naturalMinorTensionSecondary = map[string][]Interval{
	"i":      {MajorThirteenth},
	"ii":     {},
	"iii":    {AugmentedEleventh},
	"iv":     {},
	"v":      {MajorNinth, AugmentedEleventh},
	"vi":     {},
	"vii":    {},
	"v7/iii": {MinorNinth, AugmentedEleventh, MinorThirteenth},
	"v7/iv":  {AugmentedEleventh, MajorThirteenth},
	"v7/v":   {AugmentedEleventh},
	"v7/vi":  {MinorNinth, AugmentedEleventh, MinorThirteenth},
	"v7/vii": {MinorNinth, AugmentedNinth, MinorThirteenth},
}

func (m NaturalMinorMode) TensionPrimary(number string) []Interval {
	return naturalMinorTensionPrimary[number]
}
func (m NaturalMinorMode) TensionSecondary(number string) []Interval {
	return naturalMinorTensionSecondary[number]
}

func diatonicTriad(s *Scale, index int, includeSeventh bool) []Note {
	if includeSeventh {
		return []Note{s.DegreeNote(index), s.DegreeNote(index + 2), s.DegreeNote(index + 4), s.DegreeNote(index + 6)}
	}
	return []Note{s.DegreeNote(index), s.DegreeNote(index + 2), s.DegreeNote(index + 4)}
}
