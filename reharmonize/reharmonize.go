package reharmonize

import (
	"fmt"
	"math"

	"reharmonia/singable"
	"reharmonia/theory"
)

// Options configures a reharmonization run.
type Options struct {
	// Granularity is the set of window sizes, in beats, tried at
	// every offset; a longer window and a shorter window over the
	// same span compete directly for inclusion on the solved path.
	Granularity []float64
	// Restrictions pins specific offsets to a specific chord number,
	// skipping scoring entirely for that node.
	Restrictions map[float64]string
	// Offset shifts where the window grid (and the cadence clock)
	// starts; defaults to 0.
	Offset float64
	// CadencePeriod is how often, in beats, a node ending exactly on
	// the boundary is penalized unless its number is a valid cadence.
	// Defaults to 16.
	CadencePeriod float64
	// CadencePenalty is the score subtracted from a non-cadence node
	// landing on a cadence boundary. Defaults to 1.
	CadencePenalty float64
	// NumberBias adds a fixed offset to every node's score for a
	// given chord number, keyed by roman numeral. Nil/zero means no
	// bias, matching the zeroed-in-place default this is modeled on.
	NumberBias map[string]float64
}

func (o Options) withDefaults() Options {
	if o.CadencePeriod == 0 {
		o.CadencePeriod = 16
	}
	if o.CadencePenalty == 0 {
		o.CadencePenalty = 1
	}
	if len(o.Granularity) == 0 {
		o.Granularity = []float64{1, 2, 4}
	}
	return o
}

// Build constructs the scored DAG for melody against scale, without
// solving it.
func Build(melody []singable.Key, scale *theory.Scale, opts Options) (*Dag, error) {
	if len(melody) == 0 {
		return nil, fmt.Errorf("reharmonize: empty melody")
	}
	opts = opts.withDefaults()

	timeMax := 0.0
	for _, k := range melody {
		if end := k.Start + k.Length; end > timeMax {
			timeMax = end
		}
	}
	timeMax = math.Floor(timeMax)

	dag := &Dag{}
	numbers := scale.PossibleNumbers()

	for _, g := range opts.Granularity {
		for timing := opts.Offset; timing < timeMax; timing += g {
			if forced, ok := opts.Restrictions[timing]; ok {
				dag.AddNode(forced, 0, timing, g)
				continue
			}
			part := discardRests(sliceMelody(melody, timing, g))
			for _, number := range numbers {
				score, err := scoreWindow(scale, part, number)
				if err != nil {
					return nil, err
				}
				score += opts.NumberBias[number]
				if math.Mod(timing+g-opts.Offset, opts.CadencePeriod) == 0 {
					if !containsString(scale.PossibleCadences(), number) {
						score -= opts.CadencePenalty
					}
				}
				dag.AddNode(number, score, timing, g)
			}
		}
	}
	return dag, nil
}

func containsString(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

// Placement is one chord in the solved progression, with both its
// roman-numeral number and a canonical Chord for display.
type Placement struct {
	Number   string
	Notes    []theory.Note
	Chord    theory.Chord
	Start    float64
	Length   float64
}

// Reharmonize scores and solves a chord progression for melody
// against scale, returning it both as a Singable (a Parallel of one
// MultiKey per window, each key carrying its window's absolute start,
// ready to mix into a larger composition) and
// as a slice of Placements (for score/report rendering).
func Reharmonize(melody []singable.Key, scale *theory.Scale, opts Options) (singable.Singable, []Placement, error) {
	dag, err := Build(melody, scale, opts)
	if err != nil {
		return nil, nil, err
	}
	path := dag.Solve(scale)

	slots := make([]singable.Slot, len(path))
	placements := make([]Placement, len(path))
	for i, n := range path {
		notes, err := scale.Chord(n.Number)
		if err != nil {
			return nil, nil, err
		}
		chord, err := theory.ChordFromNotes(notes)
		if err != nil {
			return nil, nil, err
		}
		slots[i] = singable.One(singable.Parallel()(singable.MultiKey(n.Start, n.Length, notes, 0, 0.75)))
		placements[i] = Placement{Number: n.Number, Notes: notes, Chord: chord, Start: n.Start, Length: n.Length}
	}

	progression := singable.Parallel()(flattenSlots(slots))
	return progression, placements, nil
}

func flattenSlots(slots []singable.Slot) []singable.Singable {
	var out []singable.Singable
	for _, s := range slots {
		out = append(out, s...)
	}
	return out
}

// AsCombinator exposes Reharmonize in the curried transformer shape
// the rest of the Singable composition graph uses: given a melody
// Singable, produce the chord-progression Singable under it. Errors
// from Build/Solve are programmer/data errors per the error policy
// shared across this module (a malformed scale or restriction map) —
// they propagate by panicking, same as any other invariant violation
// reached deep inside a Sing() call with no error return to use.
func AsCombinator(scale *theory.Scale, opts Options) singable.Transformer {
	return func(melody singable.Singable) singable.Singable {
		return &combinator{melody: melody, scale: scale, opts: opts}
	}
}

type combinator struct {
	melody singable.Singable
	scale  *theory.Scale
	opts   Options
}

func (c *combinator) Sing() singable.Stream {
	keys := singable.Materialize(c.melody)
	progression, _, err := Reharmonize(keys, c.scale, c.opts)
	if err != nil {
		panic(fmt.Errorf("reharmonize: %w", err))
	}
	return progression.Sing()
}
