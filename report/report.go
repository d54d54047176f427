// Package report renders a styled terminal summary of a composed
// piece, grounded on the teacher's display.ShowTrack (the header box
// and the chords-per-line grid) restyled with the lipgloss palette
// display.tui.go defines for its live TUI (titleStyle, headerStyle,
// chordStyle, rootColor and friends).
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reharmonia/reharmonize"
	"reharmonia/theory"
)

var (
	primaryColor = lipgloss.Color("#00FFFF")
	rootColor    = lipgloss.Color("#FF6666")
	dimColor     = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	headerStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	chordStyle = lipgloss.NewStyle().
			Width(14).
			Align(lipgloss.Center).
			Foreground(primaryColor)
)

// Summary is the data report.Render styles, kept independent of
// package compose so callers outside the composition pipeline (e.g. a
// reharmonization-only tool) can build one directly.
type Summary struct {
	Title       string
	Scale       *theory.Scale
	Pattern     string
	TensionMin  float64
	TensionMax  float64
	Placements  []reharmonize.Placement
}

// Render renders s as a boxed header followed by a chord-progression
// grid, four chords per line, matching the teacher's layout.
func Render(s Summary) string {
	var b strings.Builder

	title := s.Title
	if title == "" {
		title = "Untitled"
	}
	info := fmt.Sprintf("Key: %s | Mode: %s | Pattern: %s | Tension: %.1f-%.1f",
		s.Scale.Tonic.String(), modeName(s.Scale), s.Pattern, s.TensionMin, s.TensionMax)

	maxLen := len(title)
	if len(info) > maxLen {
		maxLen = len(info)
	}

	fmt.Fprintf(&b, "┌─ %s %s┐\n", titleStyle.Render(title), strings.Repeat("─", maxLen-len(title)+1))
	fmt.Fprintf(&b, "│ %s%s │\n", headerStyle.Render(info), strings.Repeat(" ", maxLen-len(info)))
	fmt.Fprintf(&b, "└%s┘\n\n", strings.Repeat("─", maxLen+2))

	fmt.Fprintf(&b, "Chord Progression (%d chords):\n", len(s.Placements))

	const perLine = 4
	for i := 0; i < len(s.Placements); i += perLine {
		end := i + perLine
		if end > len(s.Placements) {
			end = len(s.Placements)
		}
		line := make([]string, 0, perLine)
		for j := i; j < end; j++ {
			style := chordStyle
			if s.Placements[j].Number == "i" {
				style = chordStyle.Foreground(rootColor).Bold(true)
			}
			line = append(line, style.Render(s.Placements[j].Chord.String()))
		}
		fmt.Fprintf(&b, "  %s\n", strings.Join(line, "| "))
	}

	return b.String()
}

func modeName(scale *theory.Scale) string {
	switch scale.Mode.(type) {
	case theory.NaturalMinorMode:
		return "natural minor"
	default:
		return "major"
	}
}
