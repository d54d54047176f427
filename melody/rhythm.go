package melody

// Pattern names a motive arrangement over a phrase, e.g. "AABA": each
// rune picks out one motive, and runes repeat where the motive
// repeats. It is a named string, not a raw string, so future canned
// patterns have a natural home as typed constants.
type Pattern string

const (
	PatternAABA Pattern = "AABA"
	PatternAAAB Pattern = "AAAB"
	PatternAABC Pattern = "AABC"
	PatternABAC Pattern = "ABAC"
)

var tokenLength = map[string]float64{
	"w": 4, "h.": 3, "h": 2, "q.": 1.5, "q": 1, "e": 0.5,
}

// rhythmEntities is the fixed set of rhythmic primitives the
// synthesizer draws from: each is a short run of note tokens whose
// lengths sum to the entity's total.
var rhythmEntities = []struct {
	tokens []string
	length float64
}{
	{[]string{"w"}, 4},
	{[]string{"q.", "q.", "q"}, 4},
	{[]string{"h."}, 3},
	{[]string{"h"}, 2},
	{[]string{"q.", "e"}, 2},
	{[]string{"q"}, 1},
	{[]string{"e", "e"}, 1},
}

const rhythmEpsilon = 1e-2

// generateRhythm fills a span of the given length by repeatedly
// picking a uniformly random primitive short enough to fit in what's
// left, stopping within rhythmEpsilon of length. It fails if no
// primitive fits the remaining span.
func generateRhythm(length float64, rng Rand) (*Melody, error) {
	m := &Melody{}
	for length-m.Length() > rhythmEpsilon {
		remaining := length - m.Length()
		var candidates []int
		for i, e := range rhythmEntities {
			if e.length <= remaining+rhythmEpsilon {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			return nil, ErrInfeasible
		}
		e := rhythmEntities[candidates[rng.Intn(len(candidates))]]
		for _, tok := range e.tokens {
			m.Notes = append(m.Notes, Timed{Note: Note{Degree: 0, Length: tokenLength[tok]}, Timing: m.Length()})
		}
	}
	return m, nil
}

func sortedUniqueRunes(s string) []rune {
	seen := map[rune]bool{}
	var out []rune
	for _, r := range s {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// generateRhythmicPeriod builds one full phrase's rhythm from pattern:
// one independent rhythm per distinct motive letter, each motiveCount
// base-length bars long, concatenated in pattern order. It also
// returns the pattern-repetition constraints (EqualTension and
// EqualScaleMomentum) that tie every occurrence of the same motive
// letter to the same melodic shape.
func generateRhythmicPeriod(pattern Pattern, baseLength float64, motiveCount int, patternWeight float64, rng Rand) (*Melody, []Constraint, error) {
	runes := sortedUniqueRunes(string(pattern))
	motives := map[rune]*Melody{}
	for _, r := range runes {
		m := &Melody{}
		for i := 0; i < motiveCount; i++ {
			part, err := generateRhythm(baseLength, rng)
			if err != nil {
				return nil, nil, err
			}
			appendMelody(m, part)
		}
		motives[r] = m
	}

	progression := &Melody{}
	for _, r := range pattern {
		appendMelody(progression, motives[r])
	}

	motiveLength := baseLength * float64(motiveCount)
	var constraints []Constraint

	for _, r := range runes {
		var occurrences [][2]float64
		for i, ch := range pattern {
			if ch == r {
				occurrences = append(occurrences, [2]float64{float64(i) * motiveLength, float64(i+1) * motiveLength})
			}
		}

		var indicesPerOccurrence [][]int
		for _, occ := range occurrences {
			var idxs []int
			for idx, tn := range progression.Notes {
				if tn.Timing >= occ[0] && tn.Timing < occ[1] {
					idxs = append(idxs, idx)
				}
			}
			indicesPerOccurrence = append(indicesPerOccurrence, idxs)
		}
		if len(indicesPerOccurrence) == 0 {
			continue
		}

		for k := 0; k < len(indicesPerOccurrence[0]); k++ {
			var ordinal []int
			for _, idxs := range indicesPerOccurrence {
				ordinal = append(ordinal, idxs[k])
			}
			for i, a := range ordinal {
				for _, b := range ordinal[i+1:] {
					constraints = append(constraints, EqualTension{I: a, J: b, Weight: patternWeight})
					if a < len(progression.Notes)-1 && b < len(progression.Notes)-1 {
						constraints = append(constraints, EqualScaleMomentum{A: a, B: a + 1, C: b, D: b + 1, Weight: patternWeight})
					}
				}
			}
		}
	}

	return progression, constraints, nil
}
