package singable

// ArpeggioOutliers controls how Arpeggio maps a pattern note outside
// the chord's note count back onto the chord.
type ArpeggioOutliers string

const (
	ArpeggioLoop   ArpeggioOutliers = "loop"
	ArpeggioOctave ArpeggioOutliers = "octave"
	ArpeggioClip   ArpeggioOutliers = "clip"
)

// ArpeggioOptions configures Arpeggio. NumberOffset is subtracted
// from a pattern key's MIDI number to get the chord index it selects;
// 60 (middle C) is the conventional zero point for a pattern voice.
type ArpeggioOptions struct {
	Outliers     ArpeggioOutliers
	NumberOffset int
}

type arpeggio struct {
	chord, pattern Singable
	opts           ArpeggioOptions
}

// Arpeggio picks, for each key in pattern, a note from the chord
// keys active at that time, indexed by the pattern key's MIDI number
// minus NumberOffset, combining the two keys' velocities.
func Arpeggio(opts ArpeggioOptions) func(chord, pattern Singable) Singable {
	return func(chord, pattern Singable) Singable {
		return &arpeggio{chord: chord, pattern: pattern, opts: opts}
	}
}

func (a *arpeggio) Sing() Stream {
	chordKeys := Materialize(a.chord)
	patternKeys := Materialize(a.pattern)

	var out []Key
	for _, pk := range patternKeys {
		if pk.Note == nil {
			continue
		}
		var active []Key
		for _, ck := range chordKeys {
			if ck.Start <= pk.Start && ck.Start+ck.Length > pk.Start {
				active = append(active, ck)
			}
		}
		if len(active) == 0 {
			continue
		}

		ind := pk.Note.MIDI() - a.opts.NumberOffset
		n := len(active)
		var target Key
		switch a.opts.Outliers {
		case ArpeggioOctave:
			octave, m := floorDivMod(ind, n)
			target = active[m]
			note := target.Note.AddOctaves(octave)
			target = target.withNote(&note)
		case ArpeggioClip:
			m := ind
			if m < 0 {
				m = 0
			}
			if m > n-1 {
				m = n - 1
			}
			target = active[m]
		default: // ArpeggioLoop and unspecified
			_, m := floorDivMod(ind, n)
			target = active[m]
		}

		out = append(out, Key{
			Start:    pk.Start,
			Length:   pk.Length,
			Channel:  pk.Channel,
			Velocity: target.Velocity * pk.Velocity,
			Note:     target.Note,
		})
	}
	return sliceStream(out)
}
