package reharmonize

import (
	"reharmonia/singable"
	"reharmonia/theory"
)

func sliceMelody(keys []singable.Key, start, length float64) []singable.Key {
	end := start + length
	var out []singable.Key
	for _, k := range keys {
		kEnd := k.Start + k.Length
		switch {
		case k.Start >= start && kEnd <= end:
			out = append(out, k)
		case k.Start >= start && k.Start < end && kEnd > end:
			clipped := k
			clipped.Length = end - k.Start
			out = append(out, clipped)
		case k.Start < start && kEnd > start && kEnd <= end:
			clipped := k
			clipped.Length = kEnd - start
			clipped.Start = start
			out = append(out, clipped)
		}
	}
	return out
}

func discardRests(keys []singable.Key) []singable.Key {
	var out []singable.Key
	for _, k := range keys {
		if k.Note != nil {
			out = append(out, k)
		}
	}
	return out
}

const (
	scoreConsonance = 1.0
	scoreFifth      = 0.5
	scorePrimary    = 0.25
	scoreSecondary  = 0.125
	scoreDissonance = -1.0
)

func containsPitchClass(notes []theory.Note, n theory.Note) bool {
	for _, c := range notes {
		if c.PitchClassEqual(n) {
			return true
		}
	}
	return false
}

// scoreWindow rates how well number's chord fits the notes in keys
// (already clipped to the window, with rests discarded), weighting
// each note's contribution by its own length. An empty window scores
// 0, not an error: spec.md treats a window with no sounding notes as
// uninformative rather than invalid.
func scoreWindow(scale *theory.Scale, keys []singable.Key, number string) (float64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	chord, err := scale.Chord(number)
	if err != nil {
		return 0, err
	}
	primary, err := scale.TensionPrimary(number)
	if err != nil {
		return 0, err
	}
	secondary, err := scale.TensionSecondary(number)
	if err != nil {
		return 0, err
	}

	var totalWeighted, totalWeight float64
	for _, k := range keys {
		w := k.Length
		totalWeight += w

		var s float64
		switch {
		case len(chord) >= 2 && (chord[0].PitchClassEqual(*k.Note) || chord[1].PitchClassEqual(*k.Note)):
			s = scoreConsonance
		case containsPitchClass(chord[2:], *k.Note):
			s = scoreFifth
		case containsPitchClass(primary, *k.Note):
			s = scorePrimary
		case containsPitchClass(secondary, *k.Note):
			s = scoreSecondary
		default:
			s = scoreDissonance
		}
		totalWeighted += s * w
	}
	if totalWeight == 0 {
		return 0, nil
	}
	return totalWeighted / totalWeight, nil
}
