package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/netfrog/internal/tui/components"
)

// Layout proportions for the detail view
const (
	EpisodesPanelPercent = 60
	CardSummaryLines     = 4
	MinPanelWidth        = 20
	MinPanelHeight       = 6

	// Header (title + search) and footer are one line each
	HeaderHeight = 1
	FooterHeight = 1
)

// bodyHeight is the space between header and footer
func (m Model) bodyHeight() int {
	return max(m.Height-HeaderHeight-FooterHeight, 1)
}

// cardOptions returns the options for the detail view show card
func (m Model) cardOptions() components.ShowCardOptions {
	return components.ShowCardOptions{
		Width:        m.Width,
		SummaryLines: CardSummaryLines,
	}
}

// detailHeaderHeight is the height of the card plus the season tabs
func (m Model) detailHeaderHeight() int {
	show, ok := m.show.Data()
	if !ok || show == nil {
		return 0
	}
	return lipgloss.Height(components.RenderShowCard(*show, m.cardOptions())) + 1
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	m.SearchBar.SetWidth(m.Width / 2)
	body := m.bodyHeight()

	panelHeight := max(body-m.detailHeaderHeight(), MinPanelHeight)
	episodesWidth := max(m.Width*EpisodesPanelPercent/100, MinPanelWidth)
	castWidth := max(m.Width-episodesWidth, MinPanelWidth)
	m.Episodes.SetSize(episodesWidth, panelHeight)
	m.Cast.SetSize(castWidth, panelHeight)

	m.Results.SetSize(m.Width, body)

	m.Item.Width = m.Width
	m.Item.Height = body
	m.syncItem()

	m.Help.Width = m.Width
}
