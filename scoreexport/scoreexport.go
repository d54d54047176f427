// Package scoreexport renders a singable.Singable timeline (and,
// optionally, a solved chord path) as a hierarchical, Lilypond-shaped
// text score. It is grounded on
// original_source/reharmonizer/singable.py:to_lilypond and
// utils.py:length_notation — the note-length table, the per-channel
// rest-insertion pass, and the collapse-if-short pretty-printer are
// all ported from there; this package renders to a generic nested
// text document rather than literal Lilypond source.
package scoreexport

import (
	"fmt"
	"sort"
	"strings"

	"reharmonia/reharmonize"
	"reharmonia/singable"
	"reharmonia/theory"
)

var lengthNotation = map[float64]string{
	0.125: "32", 0.25: "16", 0.375: "16.", 0.5: "8", 0.75: "8.", 0.875: "8..",
	1: "4", 1.5: "4.", 1.75: "4..", 2: "2", 3: "2.", 3.5: "2..", 4: "1",
}

func noteLength(length float64) string {
	if s, ok := lengthNotation[length]; ok {
		return s
	}
	return fmt.Sprintf("(%gq)", length)
}

// node is the header/body/footer document shape to_lilypond builds
// before flattening it to a string; a leaf has neither header nor
// footer.
type node struct {
	list         bool
	header       string
	footer       string
	body         []node
	text         string
}

func leaf(s string) node { return node{text: s} }

func renderNode(n node) string {
	if n.header == "" && n.footer == "" && !n.list {
		return n.text
	}
	if n.list {
		parts := make([]string, len(n.body))
		for i, c := range n.body {
			parts[i] = renderNode(c)
		}
		spaced := strings.Join(parts, " ")
		if len(spaced) < 80 {
			return spaced
		}
		return strings.Join(parts, "\n")
	}

	inner := renderNode(node{list: true, body: n.body})
	s := n.header + "\n" + "\t" + strings.ReplaceAll(inner, "\n", "\n\t") + "\n" + n.footer
	if len(strings.ReplaceAll(strings.ReplaceAll(s, "\n", ""), "\t", "")) < 80 {
		s = strings.ReplaceAll(s, "\n", "")
		s = strings.ReplaceAll(s, "\t", "")
	}
	return s
}

func pitchName(n theory.Note) string {
	s := strings.ToLower(string(n.Letter))
	switch {
	case n.Accidental > 0:
		s += strings.Repeat("is", n.Accidental)
	case n.Accidental < 0:
		s += strings.Repeat("es", -n.Accidental)
	}
	dots := n.Octave - 3
	switch {
	case dots > 0:
		s += strings.Repeat("'", dots)
	case dots < 0:
		s += strings.Repeat(",", -dots)
	}
	return s
}

// groupByChannelAndStart groups keys sharing a channel and a start time, since
// Harmonize/MultiKey emit simultaneous notes as separate Keys.
func groupByChannelAndStart(keys []singable.Key) map[int]map[float64][]singable.Key {
	out := map[int]map[float64][]singable.Key{}
	for _, k := range keys {
		if out[k.Channel] == nil {
			out[k.Channel] = map[float64][]singable.Key{}
		}
		out[k.Channel][k.Start] = append(out[k.Channel][k.Start], k)
	}
	return out
}

type slot struct {
	start, length float64
	keys          []singable.Key // nil means rest
}

func channelSlots(byStart map[float64][]singable.Key) []slot {
	var timings []float64
	for t := range byStart {
		timings = append(timings, t)
	}
	sort.Float64s(timings)

	var out []slot
	for i, t := range timings {
		keys := byStart[t]
		length := keys[0].Length
		if i+1 < len(timings) {
			gap := timings[i+1] - t
			if length >= gap {
				length = gap
			} else {
				out = append(out, slot{start: t, length: length, keys: keys})
				out = append(out, slot{start: t + length, length: gap - length, keys: nil})
				continue
			}
		}
		out = append(out, slot{start: t, length: length, keys: keys})
	}
	return out
}

func renderSlot(s slot) node {
	if s.keys == nil {
		return leaf("r" + noteLength(s.length))
	}
	var body []node
	for _, k := range s.keys {
		if k.Note != nil {
			body = append(body, leaf(pitchName(*k.Note)))
		}
	}
	if len(body) == 0 {
		return leaf("r" + noteLength(s.length))
	}
	return node{header: "<", footer: ">" + noteLength(s.length), body: body}
}

// Render flattens song (and, if non-nil, placements as a parallel
// chord staff) into the hierarchical text score.
func Render(song singable.Singable, placements []reharmonize.Placement) string {
	keys := singable.Materialize(song)
	byChannel := groupByChannelAndStart(keys)

	channels := make([]int, 0, len(byChannel))
	for c := range byChannel {
		channels = append(channels, c)
	}
	sort.Ints(channels)

	var staves []node
	if len(placements) > 0 {
		var chordLines []node
		for _, p := range placements {
			chordLines = append(chordLines, leaf(p.Chord.String()+noteLength(clipToTable(p.Length))))
		}
		staves = append(staves, node{header: "\\chords {", footer: "}", body: chordLines})
	}
	for _, ch := range channels {
		var events []node
		for _, s := range channelSlots(byChannel[ch]) {
			events = append(events, renderSlot(s))
		}
		staff := node{header: fmt.Sprintf("\\new Staff { %% channel %d", ch), footer: "}", body: events}
		staves = append(staves, staff)
	}

	doc := node{header: "\\new GrandStaff <<", footer: ">>", body: staves}
	return renderNode(doc)
}

func clipToTable(length float64) float64 {
	if _, ok := lengthNotation[length]; ok {
		return length
	}
	return 4
}
