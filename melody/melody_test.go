package melody

import (
	"math/rand"
	"testing"

	"reharmonia/theory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRhythmFillsLength(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m, err := generateRhythm(8, rng)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, m.Length(), rhythmEpsilon)
}

func TestGenerateRhythmInfeasible(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := generateRhythm(0.1, rng)
	require.ErrorIs(t, err, ErrInfeasible)
}

func TestGenerateRhythmicPeriodSharesMotiveRhythm(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	prog, constraints, err := generateRhythmicPeriod(PatternAABA, 4, 2, 1.0, rng)
	require.NoError(t, err)
	assert.NotEmpty(t, prog.Notes)
	assert.NotEmpty(t, constraints)

	// The first two A motives occupy [0, 8) and [8, 16).
	var first, second []float64
	for _, tn := range prog.Notes {
		switch {
		case tn.Timing < 8:
			first = append(first, tn.Note.Length)
		case tn.Timing < 16:
			second = append(second, tn.Note.Length)
		}
	}
	assert.Equal(t, first, second)
}

func TestOptimizeNeverIncreasesLoss(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	rhythm, _, err := generateRhythmicPeriod(PatternAABA, 4, 2, 1.0, rng)
	require.NoError(t, err)

	m := &Melody{}
	for _, tn := range rhythm.Notes {
		m.Notes = append(m.Notes, Timed{Note: Note{Degree: 0, Length: tn.Note.Length}, Timing: tn.Timing})
	}
	constraints := []Constraint{NeighborScale{I: 0, J: 1, Weight: 1}}

	before := totalLoss(m, constraints)
	after := optimize(m, constraints, SearchOptions{Iterations: 5, MutantsPerTrial: 16, MaxFluctuations: 2}, rng)
	assert.LessOrEqual(t, totalLoss(after, constraints), before)
}

func TestGeneratePartProducesFullLengthMelody(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	tonic, err := theory.ParseNote("C4")
	require.NoError(t, err)
	m, err := GeneratePart(Ionian, tonic, PatternAABA, 1, 5, DefaultWeights(), SearchOptions{Iterations: 2, MutantsPerTrial: 4, MaxFluctuations: 2}, rng)
	require.NoError(t, err)
	assert.InDelta(t, 32.0, m.Length(), rhythmEpsilon)
}
