package browse

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reharmonia/reharmonize"
	"reharmonia/singable"
	"reharmonia/theory"
)

func TestUpdatePagesWithinBounds(t *testing.T) {
	m := New("Test", nil, []reharmonize.Placement{{Number: "i"}, {Number: "v"}})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, next.(Model).page)

	next, _ = next.(Model).Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, next.(Model).page) // clamped at the last placement

	next, _ = next.(Model).Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, next.(Model).page)
}

func TestUpdateQuitsOnEsc(t *testing.T) {
	m := New("Test", nil, []reharmonize.Placement{{Number: "i"}})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(Model).quitting)
	assert.NotNil(t, cmd)
}

func TestViewListsNotesInWindow(t *testing.T) {
	c4, err := theory.ParseNote("C4")
	require.NoError(t, err)
	melody := []singable.Key{{Start: 0, Length: 1, Note: &c4}}
	m := New("Test", melody, []reharmonize.Placement{{Number: "i", Start: 0, Length: 4}})

	out := m.View()
	assert.Contains(t, out, "Test")
	assert.Contains(t, out, "C4")
}
