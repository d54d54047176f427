package melody

import "reharmonia/theory"

// fractal builds a tension contour by repeatedly convolving base with
// itself: depth 0 returns base unchanged, and each further depth
// nests a full copy of the previous contour under every value of
// base.
func fractal(base []int, depth int) []int {
	if depth == 0 {
		return base
	}
	inner := fractal(base, depth-1)
	out := make([]int, 0, len(base)*len(inner))
	for _, x := range base {
		for _, y := range inner {
			out = append(out, x+y)
		}
	}
	return out
}

func maxInt(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// normalizeTension rescales a raw fractal contour into [minTension,
// maxTension].
func normalizeTension(raw []int, minTension, maxTension float64) []float64 {
	top := float64(maxInt(raw))
	out := make([]float64, len(raw))
	for i, x := range raw {
		out[i] = float64(x)/top*(maxTension-minTension) + minTension
	}
	return out
}

// Weights scales each constraint family's contribution to the
// optimizer's loss function.
type Weights struct {
	Pattern  float64
	Tension  float64
	Neighbor float64
	Momentum float64
	Hinge    float64
}

// DefaultWeights returns the generator's standard balance between
// motive repetition, tension-contour fit, melodic smoothness, and the
// first/last-note hinge back to the tonic.
func DefaultWeights() Weights {
	return Weights{Pattern: 1.0, Tension: 0.75, Neighbor: 1.0, Momentum: 0.5, Hinge: 0.0}
}

// SearchOptions tunes the hill-climbing optimizer.
type SearchOptions struct {
	Iterations      int
	MutantsPerTrial int
	MaxFluctuations int
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.Iterations == 0 {
		o.Iterations = 50
	}
	if o.MutantsPerTrial == 0 {
		o.MutantsPerTrial = 128
	}
	if o.MaxFluctuations == 0 {
		o.MaxFluctuations = 8
	}
	return o
}

func totalLoss(m *Melody, constraints []Constraint) float64 {
	total := 0.0
	for _, c := range constraints {
		total += c.Loss(m)
	}
	return total
}

// optimize hill-climbs from melody by repeatedly generating a batch of
// random mutants (each reassigning a handful of random notes to
// random degrees) and keeping the best of the batch if it beats the
// current candidate. Ties keep the current candidate, so loss is
// monotonically non-increasing across trials.
func optimize(melody *Melody, constraints []Constraint, opts SearchOptions, rng Rand) *Melody {
	opts = opts.withDefaults()
	current := melody
	currentLoss := totalLoss(current, constraints)

	for trial := 0; trial < opts.Iterations; trial++ {
		best := current
		bestLoss := currentLoss
		for i := 0; i < opts.MutantsPerTrial; i++ {
			mutant := current.Clone()
			fluctuations := intRange(rng, 1, opts.MaxFluctuations)
			for k := 0; k < fluctuations; k++ {
				target := rng.Intn(len(mutant.Notes))
				mutant.AssignDegree(target, Degree(rng.Intn(7)))
			}
			l := totalLoss(mutant, constraints)
			if l < bestLoss {
				best, bestLoss = mutant, l
			}
		}
		current, currentLoss = best, bestLoss
	}
	return current
}

// GeneratePart runs the full constraint-guided search: synthesize a
// rhythm for pattern, start every note on the tonic (degree 0), build
// the tension/pattern/smoothness/hinge constraints, and hill-climb to
// a low-loss assignment.
func GeneratePart(kind Kind, tonic theory.Note, pattern Pattern, minTension, maxTension float64, weights Weights, opts SearchOptions, rng Rand) (*Melody, error) {
	const baseLength = 4.0
	const motiveCount = 2

	rhythm, patternConstraints, err := generateRhythmicPeriod(pattern, baseLength, motiveCount, weights.Pattern, rng)
	if err != nil {
		return nil, err
	}

	// depth 1 self-concatenates the length-4 base vector with itself
	// once, yielding the length-16 contour spec.md calls "depth 2"
	// (counting the unconvolved base as depth 1).
	contour := normalizeTension(fractal([]int{0, 1, 2, 0}, 1), minTension, maxTension)
	unit := float64(len(contour)) / rhythm.Length()

	var tensionConstraints []Constraint
	for i, tn := range rhythm.Notes {
		bucket := int(tn.Timing * unit)
		if bucket >= len(contour) {
			bucket = len(contour) - 1
		}
		target := contour[bucket] * maxMelodicTension
		tensionConstraints = append(tensionConstraints, AssignTension{I: i, Target: target, Weight: weights.Tension})
	}

	var neighborConstraints []Constraint
	for i := 0; i < len(rhythm.Notes)-1; i++ {
		neighborConstraints = append(neighborConstraints, NeighborScale{I: i, J: i + 1, Weight: weights.Neighbor})
	}

	var momentumConstraints []Constraint
	for i := 0; i < len(rhythm.Notes)-2; i++ {
		momentumConstraints = append(momentumConstraints, MomentumScale{I: i, J: i + 1, K: i + 2, Weight: weights.Momentum})
	}

	hingeConstraints := []Constraint{
		AssignTension{I: 0, Target: 0, Weight: weights.Hinge},
		AssignTension{I: len(rhythm.Notes) - 1, Target: 0, Weight: weights.Hinge},
	}

	all := make([]Constraint, 0, len(patternConstraints)+len(tensionConstraints)+len(neighborConstraints)+len(momentumConstraints)+len(hingeConstraints))
	all = append(all, patternConstraints...)
	all = append(all, tensionConstraints...)
	all = append(all, neighborConstraints...)
	all = append(all, momentumConstraints...)
	all = append(all, hingeConstraints...)

	m := &Melody{Kind: kind, Tonic: tonic}
	for _, tn := range rhythm.Notes {
		m.Notes = append(m.Notes, Timed{Note: Note{Degree: 0, Length: tn.Note.Length}, Timing: tn.Timing})
	}

	return optimize(m, all, opts, rng), nil
}
