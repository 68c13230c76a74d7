package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/netfrog/internal/tui/styles"
)

// SearchBar is the one-line show search input
type SearchBar struct {
	input   textinput.Model
	width   int
	loading bool
	pending string // query of the in-flight search
}

// NewSearchBar creates a new search bar component
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search shows..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.SearchPromptStyle
	ti.TextStyle = styles.SearchTextStyle
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBar{
		input: ti,
	}
}

// Focus selects the existing text for editing
func (s *SearchBar) Focus() tea.Cmd {
	s.input.CursorEnd()
	return s.input.Focus()
}

// Blur stops editing, keeping the text
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the bar is taking keystrokes
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Query returns the current input text
func (s SearchBar) Query() string {
	return s.input.Value()
}

// SetQuery replaces the input text
func (s *SearchBar) SetQuery(q string) {
	s.input.SetValue(q)
}

// SetLoading marks a search for query as in flight (or not)
func (s *SearchBar) SetLoading(loading bool, query string) {
	s.loading = loading
	s.pending = query
}

// Loading reports whether a search is in flight
func (s SearchBar) Loading() bool {
	return s.loading
}

// SetWidth updates the component width
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	s.input.Width = max(width-len(s.input.Prompt)-20, 10)
}

// Update routes a message to the text input
func (s *SearchBar) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

// View renders the bar. spin is the shared spinner, drawn while a search is in flight.
func (s SearchBar) View(spin spinner.Model) string {
	line := s.input.View()
	if !s.input.Focused() && s.input.Value() == "" {
		line = styles.DimStyle.Render("/ to search shows")
	}
	if s.loading {
		line += "  " + spin.View() + styles.DimStyle.Render(" searching "+styles.Truncate(s.pending, 30))
	}
	return line
}
