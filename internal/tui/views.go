package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/netfrog/internal/tui/components"
	"github.com/mmcdole/netfrog/internal/tui/styles"
	"github.com/mmcdole/netfrog/internal/viewstate"
)

// ErrorMessage is the single message shown for every kind of fetch failure
const ErrorMessage = "Something went wrong. Press r to retry."

// View renders the whole screen
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(m.renderBody()),
		m.renderFooter(),
	)
}

func (m Model) renderBody() string {
	// A failed search replaces whatever view was showing
	if m.search.Err() != nil {
		return m.renderError("esc to go back")
	}

	switch m.nav.Kind() {
	case viewstate.KindSearchResults:
		return m.Results.View()
	case viewstate.KindItemDetail:
		return m.Item.View()
	}

	phase := m.bundlePhase()
	switch {
	case phase.Loading:
		return m.renderLoading()
	case phase.Err != nil:
		return m.renderError("")
	default:
		return m.renderDetail()
	}
}

func (m Model) renderHeader() string {
	title := styles.AccentStyle.Bold(true).Render("netfrog")
	crumb := ""
	switch s := m.nav.State().(type) {
	case viewstate.Detail:
		if show, ok := m.show.Data(); ok && show != nil {
			crumb = show.Name
		}
	case viewstate.SearchResults:
		crumb = fmt.Sprintf("search: %s", s.Query)
	case viewstate.ItemDetail:
		crumb = fmt.Sprintf("search: %s › %s", s.Query, s.Item.Show.Name)
	}
	left := title
	if crumb != "" {
		left += styles.DimStyle.Render(" › " + crumb)
	}

	right := m.SearchBar.View(m.Spinner)
	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderDetail() string {
	show, ok := m.show.Data()
	if !ok || show == nil {
		return ""
	}
	card := components.RenderShowCard(*show, m.cardOptions())
	tabs := components.RenderSeasonTabs(m.seasons, m.nav.Season())
	panels := lipgloss.JoinHorizontal(lipgloss.Top, m.Episodes.View(), m.Cast.View())
	return lipgloss.JoinVertical(lipgloss.Left, card, tabs, panels)
}

func (m Model) renderLoading() string {
	return lipgloss.Place(m.Width, m.bodyHeight(),
		lipgloss.Center, lipgloss.Center,
		m.Spinner.View()+" Loading...")
}

func (m Model) renderError(hint string) string {
	text := styles.ErrorStyle.Render(ErrorMessage)
	if hint != "" {
		text += "\n" + styles.DimStyle.Render(hint)
	}
	return lipgloss.Place(m.Width, m.bodyHeight(),
		lipgloss.Center, lipgloss.Center,
		styles.ErrorBoxStyle.Render(text))
}

func (m Model) renderFooter() string {
	var left string
	switch {
	case m.bundlePhase().Loading || m.search.Loading():
		left = m.Spinner.View() + " " + styles.DimStyle.Render("Loading...")
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	default:
		left = m.Help.ShortHelpView(Keys.ShortHelp())
	}

	right := styles.HelpKeyStyle.Render("?") + styles.HelpDescStyle.Render(" help")

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	body := styles.TitleStyle.Render("Keys") + "\n\n" +
		m.Help.FullHelpView(Keys.FullHelp()) + "\n\n" +
		styles.DimStyle.Render("Press any key to return...")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}

func resultsTitle(query string, n int) string {
	switch n {
	case 0:
		return fmt.Sprintf("Results for %q", query)
	case 1:
		return fmt.Sprintf("1 result for %q", query)
	default:
		return fmt.Sprintf("%d results for %q", n, query)
	}
}
