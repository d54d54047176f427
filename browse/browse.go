// Package browse implements a non-realtime, paginated bubbletea
// viewer over a composed piece: one solved chord window per page,
// with the melody notes sounding in that window listed underneath.
// It is a stripped-down descendant of the teacher's
// display.TUIModel — same key bindings for paging and quitting, same
// lipgloss palette, no ticking clock and no audio player since
// nothing here plays in real time.
package browse

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"reharmonia/reharmonize"
	"reharmonia/singable"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	chordStyle = lipgloss.NewStyle().
			Width(14).
			Align(lipgloss.Center)

	currentChordStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#00FFFF")).
				Width(14).
				Align(lipgloss.Center)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("#444444"))
)

// Model pages through placements one at a time, showing the melody
// notes that land inside the current window.
type Model struct {
	title      string
	melody     []singable.Key
	placements []reharmonize.Placement
	page       int
	quitting   bool
}

// New builds a Model ready to Run over a rendered melody timeline and
// its solved chord path.
func New(title string, melody []singable.Key, placements []reharmonize.Placement) Model {
	return Model{title: title, melody: melody, placements: placements}
}

// Init satisfies tea.Model; there is nothing to schedule since this
// viewer never advances on its own.
func (m Model) Init() tea.Cmd { return nil }

// Update handles paging and quit key bindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "left", "h":
		if m.page > 0 {
			m.page--
		}
	case "right", "l":
		if m.page < len(m.placements)-1 {
			m.page++
		}
	}
	return m, nil
}

// View renders the current page: a header box, the chord row with the
// current window highlighted, and the melody notes sounding in it.
func (m Model) View() string {
	if m.quitting || len(m.placements) == 0 {
		return ""
	}
	p := m.placements[m.page]

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render(m.title))
	fmt.Fprintf(&b, "%s\n\n", headerStyle.Render(
		fmt.Sprintf("chord %d/%d  [%.2f-%.2f beats]", m.page+1, len(m.placements), p.Start, p.Start+p.Length)))

	row := make([]string, len(m.placements))
	for i, pl := range m.placements {
		style := chordStyle
		if i == m.page {
			style = currentChordStyle
		}
		row[i] = style.Render(pl.Chord.String())
	}
	fmt.Fprintln(&b, borderStyle.Render(strings.Join(row, "")))

	fmt.Fprintf(&b, "\nNotes in window:\n")
	for _, k := range windowNotes(m.melody, p) {
		if k.Note == nil {
			fmt.Fprintf(&b, "  rest  @%.2f (%.2f beats)\n", k.Start, k.Length)
		} else {
			fmt.Fprintf(&b, "  %-4s @%.2f (%.2f beats)\n", k.Note.String(), k.Start, k.Length)
		}
	}

	fmt.Fprintf(&b, "\n%s\n", headerStyle.Render("←/→ page   q quit"))
	return b.String()
}

func windowNotes(melody []singable.Key, p reharmonize.Placement) []singable.Key {
	var out []singable.Key
	end := p.Start + p.Length
	for _, k := range melody {
		if k.Start >= p.Start && k.Start < end {
			out = append(out, k)
		}
	}
	return out
}

// Run starts the bubbletea program over m.
func Run(m Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
