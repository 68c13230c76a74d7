package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/netfrog/internal/service"
	"github.com/mmcdole/netfrog/internal/tui/components"
	"github.com/mmcdole/netfrog/internal/viewstate"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.ShowHelp {
		// Any key closes help
		m.ShowHelp = false
		return m, nil
	}

	// The search bar owns the keyboard while focused
	if m.SearchBar.Focused() {
		switch {
		case key.Matches(msg, components.SearchBarKeys.Cancel):
			m.SearchBar.Blur()
			return m, nil
		case key.Matches(msg, components.SearchBarKeys.Submit):
			return m.submitSearch()
		}
		return m, m.SearchBar.Update(msg)
	}

	// So does a list filter being typed
	if p := m.focusedPanel(); p != nil && p.IsFilterTyping() {
		return m, p.Update(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Search):
		return m, m.SearchBar.Focus()
	}

	if m.search.Err() != nil {
		return m.handleSearchErrorKeys(msg)
	}

	switch m.nav.Kind() {
	case viewstate.KindSearchResults:
		return m.handleResultsKeys(msg)
	case viewstate.KindItemDetail:
		return m.handleItemKeys(msg)
	default:
		return m.handleDetailKeys(msg)
	}
}

// submitSearch runs the typed query. A blank query just closes the bar.
func (m Model) submitSearch() (tea.Model, tea.Cmd) {
	m.SearchBar.Blur()
	query := service.NormalizeQuery(m.SearchBar.Query())
	if query == "" {
		return m, nil
	}
	m.SearchBar.SetQuery(query)
	return m, m.startSearch(query)
}

func (m Model) handleSearchErrorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Refresh):
		// Retry the query that failed, not whatever the bar holds now
		query := service.NormalizeQuery(m.lastQuery)
		if query == "" {
			return m, nil
		}
		m.SearchBar.SetQuery(query)
		return m, m.startSearch(query)
	case key.Matches(msg, Keys.Back):
		// Dismiss the failed search and return to whatever was on screen
		m.search.Reset()
		return m, nil
	}
	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	phase := m.bundlePhase()
	if phase.Err != nil {
		if key.Matches(msg, Keys.Refresh) {
			return m, m.reload()
		}
		return m, nil
	}
	if phase.Loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Refresh):
		return m, m.reload()

	case key.Matches(msg, Keys.PrevSeason):
		return m, m.stepSeason(-1)

	case key.Matches(msg, Keys.NextSeason):
		return m, m.stepSeason(1)

	case key.Matches(msg, Keys.SwitchPane):
		if m.focus == PaneEpisodes {
			m.setFocus(PaneCast)
		} else {
			m.setFocus(PaneEpisodes)
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		return m, m.focusedPanel().StartFilter()

	case key.Matches(msg, Keys.Enter):
		m.toggleSelected()
		return m, nil

	case key.Matches(msg, Keys.Open):
		if show, ok := m.show.Data(); ok && show != nil {
			return m, m.openURL(show.URL)
		}
		return m, nil
	}

	return m, m.focusedPanel().Update(msg)
}

func (m Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Enter):
		result, ok := m.Results.SelectedResult()
		if !ok {
			return m, nil
		}
		m.nav = m.nav.SelectResult(result)
		m.syncItem()
		return m, nil

	case key.Matches(msg, Keys.Home), key.Matches(msg, Keys.Escape):
		m.goHome()
		return m, nil

	case key.Matches(msg, Keys.Open):
		if result, ok := m.Results.SelectedResult(); ok {
			return m, m.openURL(result.Show.URL)
		}
		return m, nil
	}

	return m, m.Results.Update(msg)
}

func (m Model) handleItemKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Back):
		m.nav = m.nav.GoBack()
		m.syncResults()
		return m, nil

	case key.Matches(msg, Keys.Home):
		m.goHome()
		return m, nil

	case key.Matches(msg, Keys.Open):
		item, _ := m.nav.ItemDetail()
		return m, m.openURL(item.Item.Show.URL)
	}

	var cmd tea.Cmd
	m.Item, cmd = m.Item.Update(msg)
	return m, cmd
}

// goHome returns to the show on the remembered season
func (m *Model) goHome() {
	m.nav = m.nav.GoHome()
	m.clampSeason()
	m.refreshEpisodes()
	m.Cast.ClearFilter()
	m.setFocus(m.focus)
}

// stepSeason moves the season filter by delta within the available seasons
func (m *Model) stepSeason(delta int) tea.Cmd {
	if len(m.seasons) == 0 {
		return nil
	}

	idx := 0
	for i, n := range m.seasons {
		if n == m.nav.Season() {
			idx = i
			break
		}
	}

	next := min(max(idx+delta, 0), len(m.seasons)-1)
	if next == idx && m.seasons[idx] == m.nav.Season() {
		return nil
	}

	m.nav = m.nav.SelectSeason(m.seasons[next])
	m.refreshEpisodes()
	return m.setStatus(fmt.Sprintf("Season %d of %d", next+1, len(m.seasons)), false)
}

// toggleSelected expands or collapses the highlighted episode or cast member
func (m *Model) toggleSelected() {
	switch m.focus {
	case PaneEpisodes:
		if ep, ok := m.Episodes.SelectedEpisode(); ok {
			m.nav = m.nav.ToggleEpisode(ep.ID)
		}
	case PaneCast:
		if c, ok := m.Cast.SelectedCast(); ok {
			m.nav = m.nav.ToggleCastMember(c.Person.ID)
		}
	}
	m.syncPanels()
}

// openURL opens url in the browser, if one is configured
func (m *Model) openURL(url string) tea.Cmd {
	if m.Opener == nil {
		return nil
	}
	if url == "" {
		return m.setStatus("No page for this show", true)
	}
	return OpenURLCmd(m.Opener, url)
}

// setStatus shows a transient footer message
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.statusSeq, 2*time.Second)
}
