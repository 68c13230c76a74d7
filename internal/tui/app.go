package tui

import (
	"log/slog"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/netfrog/internal/domain"
	"github.com/mmcdole/netfrog/internal/fetch"
	"github.com/mmcdole/netfrog/internal/mediaserver"
	"github.com/mmcdole/netfrog/internal/tui/components"
	"github.com/mmcdole/netfrog/internal/tui/styles"
	"github.com/mmcdole/netfrog/internal/viewstate"
)

// Pane identifies which detail list has focus
type Pane int

const (
	PaneEpisodes Pane = iota
	PaneCast
)

// URLOpener opens a web page outside the terminal
type URLOpener interface {
	Open(url string) error
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Data source
	Source mediaserver.MediaSource
	ShowID int

	// Opener is used by the open key; nil disables it
	Opener URLOpener

	// One resource per document; each is committed only from its own message
	show     fetch.Resource[*domain.Show]
	episodes fetch.Resource[[]domain.Episode]
	cast     fetch.Resource[[]domain.CastEntry]
	search   fetch.Resource[[]domain.SearchResult]

	// Query of the most recent search request, used for retries
	lastQuery string

	// View state
	nav     viewstate.Controller
	seasons []int
	focus   Pane

	// UI Components
	SearchBar components.SearchBar
	Episodes  components.ListPanel
	Cast      components.ListPanel
	Results   components.ListPanel
	Item      viewport.Model
	Spinner   spinner.Model
	Help      help.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	Ready       bool
	ShowHelp    bool
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int

	initCmd tea.Cmd
	logger  *slog.Logger
}

// NewModel creates a new application model for showID, starting on season.
// The three show requests are issued by Init.
func NewModel(src mediaserver.MediaSource, showID, season int, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	m := Model{
		Source:    src,
		ShowID:    showID,
		nav:       viewstate.New(season),
		SearchBar: components.NewSearchBar(),
		Episodes:  components.NewEpisodePanel(),
		Cast:      components.NewCastPanel(),
		Results:   components.NewResultsPanel(),
		Item:      viewport.New(0, 0),
		Spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.SpinnerStyle)),
		Help:      help.New(),
		logger:    logger,
	}
	m.Episodes.SetFocused(true)
	m.initCmd = m.reload()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case ShowLoadedMsg:
		if !m.show.Commit(msg.Result) {
			m.logger.Debug("dropped stale show response", "url", msg.Result.URL, "token", msg.Result.Token)
			return m, nil
		}
		if msg.Result.Err != nil {
			m.logger.Error("show fetch failed", "url", msg.Result.URL, "error", msg.Result.Err, "kind", domain.KindOf(msg.Result.Err))
		}
		m.updateLayout()
		return m, nil

	case EpisodesLoadedMsg:
		if !m.episodes.Commit(msg.Result) {
			m.logger.Debug("dropped stale episodes response", "url", msg.Result.URL, "token", msg.Result.Token)
			return m, nil
		}
		if msg.Result.Err != nil {
			m.logger.Error("episodes fetch failed", "url", msg.Result.URL, "error", msg.Result.Err, "kind", domain.KindOf(msg.Result.Err))
			return m, nil
		}
		m.seasons = domain.Seasons(msg.Result.Data)
		m.clampSeason()
		m.refreshEpisodes()
		return m, nil

	case CastLoadedMsg:
		if !m.cast.Commit(msg.Result) {
			m.logger.Debug("dropped stale cast response", "url", msg.Result.URL, "token", msg.Result.Token)
			return m, nil
		}
		if msg.Result.Err != nil {
			m.logger.Error("cast fetch failed", "url", msg.Result.URL, "error", msg.Result.Err, "kind", domain.KindOf(msg.Result.Err))
			return m, nil
		}
		m.Cast.SetCast(msg.Result.Data)
		m.syncPanels()
		return m, nil

	case SearchResultsMsg:
		if !m.search.Commit(msg.Result) {
			m.logger.Debug("dropped stale search response", "query", msg.Query, "token", msg.Result.Token)
			return m, nil
		}
		m.SearchBar.SetLoading(false, "")
		if msg.Result.Err != nil {
			m.logger.Error("search failed", "query", msg.Query, "error", msg.Result.Err, "kind", domain.KindOf(msg.Result.Err))
			return m, nil
		}
		m.logger.Info("search complete", "query", msg.Query, "results", len(msg.Result.Data))
		m.nav = m.nav.SubmitSearch(msg.Query, msg.Result.Data)
		m.syncResults()
		return m, nil

	case OpenedMsg:
		if msg.Err != nil {
			return m, m.setStatus("Could not open browser", true)
		}
		return m, m.setStatus("Opened "+msg.URL, false)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	// Everything else (cursor blinks, mouse) goes to whatever is focused
	var cmd tea.Cmd
	switch {
	case m.SearchBar.Focused():
		cmd = m.SearchBar.Update(msg)
	case m.nav.Kind() == viewstate.KindItemDetail:
		m.Item, cmd = m.Item.Update(msg)
	default:
		if p := m.focusedPanel(); p != nil && p.IsFilterTyping() {
			cmd = p.Update(msg)
		}
	}
	return m, cmd
}

// ViewState returns the active view controller
func (m Model) ViewState() viewstate.Controller {
	return m.nav
}

// reload starts the show, episodes and cast requests, superseding any in flight
func (m *Model) reload() tea.Cmd {
	showReq := m.show.Start(m.Source.ShowURL(m.ShowID))
	episodesReq := m.episodes.Start(m.Source.EpisodesURL(m.ShowID))
	castReq := m.cast.Start(m.Source.CastURL(m.ShowID))

	m.logger.Info("loading show", "showID", m.ShowID)

	return tea.Batch(
		FetchShowCmd(m.Source, showReq),
		FetchEpisodesCmd(m.Source, episodesReq),
		FetchCastCmd(m.Source, castReq),
		m.Spinner.Tick,
	)
}

// startSearch issues a search for query; any earlier search still in flight
// is superseded
func (m *Model) startSearch(query string) tea.Cmd {
	req := m.search.Start(m.Source.SearchURL(query))
	m.lastQuery = query
	m.SearchBar.SetLoading(true, query)
	m.logger.Debug("search started", "query", query, "token", req.Token)
	return tea.Batch(SearchCmd(m.Source, req, query), m.Spinner.Tick)
}

// bundlePhase is the aggregate state of the three show requests
func (m Model) bundlePhase() fetch.Phase {
	return fetch.Combine(m.show.Phase(), m.episodes.Phase(), m.cast.Phase())
}

// busy reports whether any request is pending
func (m Model) busy() bool {
	return m.bundlePhase().Loading || m.search.Loading()
}

// clampSeason moves the selection to the first season that has episodes
// when the configured one has none
func (m *Model) clampSeason() {
	if len(m.seasons) == 0 || slices.Contains(m.seasons, m.nav.Season()) {
		return
	}
	m.nav = m.nav.SelectSeason(m.seasons[0])
}

// refreshEpisodes reloads the episode panel for the selected season
func (m *Model) refreshEpisodes() {
	episodes, _ := m.episodes.Data()
	m.Episodes.SetEpisodes(domain.EpisodesInSeason(episodes, m.nav.Season()))
	m.syncPanels()
}

// syncPanels pushes the controller's expansion slots into the panels
func (m *Model) syncPanels() {
	d, ok := m.nav.Detail()
	if !ok {
		return
	}
	m.Episodes.SetExpanded(d.Episode)
	m.Cast.SetExpanded(d.Cast)
}

// syncResults loads the results panel from the controller
func (m *Model) syncResults() {
	s, ok := m.nav.SearchResults()
	if !ok {
		return
	}
	m.Results.SetResults(s.Results)
	m.Results.SetTitle(resultsTitle(s.Query, len(s.Results)))
	m.Results.SetEmptyMessage(`No results for "` + s.Query + `"`)
	m.Results.SetFocused(true)
}

// syncItem loads the item viewport from the controller
func (m *Model) syncItem() {
	s, ok := m.nav.ItemDetail()
	if !ok {
		return
	}
	m.Item.SetContent(components.RenderShowCard(s.Item.Show, components.ShowCardOptions{
		Width:     m.Width,
		Score:     s.Item.Score,
		ShowScore: true,
	}))
	m.Item.GotoTop()
}

// focusedPanel returns the list receiving navigation keys in the active view
func (m *Model) focusedPanel() *components.ListPanel {
	switch m.nav.Kind() {
	case viewstate.KindDetail:
		if m.focus == PaneCast {
			return &m.Cast
		}
		return &m.Episodes
	case viewstate.KindSearchResults:
		return &m.Results
	default:
		return nil
	}
}

func (m *Model) setFocus(p Pane) {
	m.focus = p
	m.Episodes.SetFocused(p == PaneEpisodes)
	m.Cast.SetFocused(p == PaneCast)
}
