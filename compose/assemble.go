package compose

import (
	"fmt"

	"reharmonia/melody"
	"reharmonia/reharmonize"
	"reharmonia/singable"
	"reharmonia/theory"
)

// Piece is the fully assembled output of one composition run: the
// generated melody, the solved chord progression, a bass voice
// transposed down from the progression, all three mixed into one
// three-channel Singable ready for midiexport/scoreexport, and the
// chord path for report rendering.
type Piece struct {
	Config      *Config
	Scale       *theory.Scale
	Melody      *melody.Melody
	Mix         singable.Singable
	MelodySong  singable.Singable
	Progression singable.Singable
	Bass        singable.Singable
	Placements  []reharmonize.Placement
}

// Assemble runs the full pipeline described in cfg against rng:
// generate cfg.Periods repetitions of the motive pattern and
// concatenate them into one melody, reharmonize that melody into a
// chord progression, transpose the progression down an octave for a
// bass voice, then put melody, progression and bass on channels 0, 1
// and 2 of a single mixed Singable.
func Assemble(cfg *Config, rng melody.Rand) (*Piece, error) {
	tonic, err := cfg.Tonic()
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	kind := cfg.ModeKind()

	weights := melody.DefaultWeights()
	search := melody.SearchOptions{
		Iterations:      cfg.Search.Iterations,
		MutantsPerTrial: cfg.Search.MutantsPerTrial,
		MaxFluctuations: cfg.Search.MaxFluctuations,
	}

	var full *melody.Melody
	for i := 0; i < cfg.Periods; i++ {
		fmt.Printf("[compose] generating period %d/%d\n", i+1, cfg.Periods)
		part, err := melody.GeneratePart(kind, tonic, melody.Pattern(cfg.Pattern), cfg.Tension.Min, cfg.Tension.Max, weights, search, rng)
		if err != nil {
			return nil, fmt.Errorf("compose: %w", err)
		}
		if full == nil {
			full = part
		} else {
			full = concatMelodies(full, part)
		}
	}

	scale := full.Scale()
	melodySong := full.Singable()

	restrictions, err := cfg.Reharmonize.restrictionsAsFloat()
	if err != nil {
		return nil, err
	}
	opts := reharmonize.Options{
		Granularity:    []float64(cfg.Reharmonize.Granularity),
		Restrictions:   restrictions,
		CadencePeriod:  cfg.Reharmonize.CadencePeriod,
		CadencePenalty: cfg.Reharmonize.CadencePenalty,
	}

	keys := singable.Materialize(melodySong)
	fmt.Printf("[compose] reharmonizing %d melody notes\n", len(keys))
	progression, placements, err := reharmonize.Reharmonize(keys, scale, opts)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	fmt.Printf("[compose] solved %d-chord progression\n", len(placements))

	// The assembler composes melody, reharmonization, and a bass voice
	// built by transposing the progression down an octave, as spec's
	// system-overview data flow names explicitly ("bass transposition").
	bass := singable.Transpose(theory.PerfectOctave.Invert())(progression)

	melodyVoice := singable.AtChannel(0)(melodySong)
	chordVoice := singable.AtChannel(1)(progression)
	bassVoice := singable.AtChannel(2)(bass)
	mix := singable.Parallel()([]singable.Singable{melodyVoice, chordVoice, bassVoice})

	return &Piece{
		Config:      cfg,
		Scale:       scale,
		Melody:      full,
		Mix:         mix,
		MelodySong:  melodySong,
		Progression: progression,
		Bass:        bass,
		Placements:  placements,
	}, nil
}

// concatMelodies appends b's notes after a's, shifting b's timings by
// a's total length; Melody's fields are exported exactly so callers
// outside package melody can do this without a dedicated combinator.
func concatMelodies(a, b *melody.Melody) *melody.Melody {
	out := &melody.Melody{Kind: a.Kind, Tonic: a.Tonic}
	out.Notes = append(out.Notes, a.Notes...)
	base := a.Length()
	for _, tn := range b.Notes {
		out.Notes = append(out.Notes, melody.Timed{Note: tn.Note, Timing: tn.Timing + base})
	}
	return out
}
