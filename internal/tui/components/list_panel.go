package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/netfrog/internal/domain"
	"github.com/mmcdole/netfrog/internal/search"
	"github.com/mmcdole/netfrog/internal/tui/styles"
	"github.com/mmcdole/netfrog/internal/viewstate"
)

// Layout constants for list panels
const (
	BorderWidth          = 2
	BorderHeight         = 2
	ScrollIndicatorLines = 2
)

// PanelType identifies the content of a list panel
type PanelType int

const (
	PanelEpisodes PanelType = iota
	PanelCast
	PanelResults
)

// ListPanel is a scrollable, filterable list of episodes, cast entries or
// search results. Episode and cast rows can show one expanded detail block.
type ListPanel struct {
	panelType PanelType
	title     string

	episodes []domain.Episode
	cast     []domain.CastEntry
	results  []domain.SearchResult

	// visible rows after filtering
	episodeMatches []search.EpisodeMatch
	castMatches    []search.CastMatch

	expanded viewstate.Slot
	emptyMsg string

	cursor     int
	offset     int
	maxVisible int
	width      int
	height     int
	focused    bool

	filterInput  textinput.Model
	filterActive bool
	filterQuery  string
}

func newListPanel(panelType PanelType, title string) ListPanel {
	ti := textinput.New()
	ti.Prompt = "filter: "
	ti.PromptStyle = styles.SearchPromptStyle
	ti.TextStyle = styles.SearchTextStyle
	ti.CharLimit = 50

	return ListPanel{
		panelType:   panelType,
		title:       title,
		filterInput: ti,
		emptyMsg:    "No items",
	}
}

// NewEpisodePanel creates a panel for one season's episodes
func NewEpisodePanel() ListPanel {
	p := newListPanel(PanelEpisodes, "Episodes")
	p.emptyMsg = "No episodes in this season"
	return p
}

// NewCastPanel creates a panel for the show's cast
func NewCastPanel() ListPanel {
	p := newListPanel(PanelCast, "Cast")
	p.emptyMsg = "No cast information"
	return p
}

// NewResultsPanel creates a panel for search results
func NewResultsPanel() ListPanel {
	return newListPanel(PanelResults, "Results")
}

// SetTitle sets the heading line
func (p *ListPanel) SetTitle(title string) {
	p.title = title
}

// SetEmptyMessage sets the text shown when there are no rows
func (p *ListPanel) SetEmptyMessage(msg string) {
	p.emptyMsg = msg
}

// SetEpisodes replaces the episode rows and resets cursor and filter
func (p *ListPanel) SetEpisodes(episodes []domain.Episode) {
	p.episodes = episodes
	p.reset()
}

// SetCast replaces the cast rows and resets cursor and filter
func (p *ListPanel) SetCast(cast []domain.CastEntry) {
	p.cast = cast
	p.reset()
}

// SetResults replaces the result rows and resets the cursor
func (p *ListPanel) SetResults(results []domain.SearchResult) {
	p.results = results
	p.reset()
}

// SetExpanded marks the item whose detail block is shown
func (p *ListPanel) SetExpanded(slot viewstate.Slot) {
	p.expanded = slot
	p.ensureVisible()
}

// SetSize updates the component dimensions
func (p *ListPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.filterInput.Width = width - BorderWidth - len(p.filterInput.Prompt) - 2
	p.recalcMaxVisible()
	p.ensureVisible()
}

// SetFocused sets whether the panel receives navigation keys
func (p *ListPanel) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused reports whether the panel has focus
func (p ListPanel) IsFocused() bool {
	return p.focused
}

// ItemCount returns the number of visible rows
func (p ListPanel) ItemCount() int {
	switch p.panelType {
	case PanelEpisodes:
		return len(p.episodeMatches)
	case PanelCast:
		return len(p.castMatches)
	case PanelResults:
		return len(p.results)
	default:
		return 0
	}
}

// SelectedIndex returns the cursor position among visible rows
func (p ListPanel) SelectedIndex() int {
	return p.cursor
}

// SelectedEpisode returns the highlighted episode
func (p ListPanel) SelectedEpisode() (domain.Episode, bool) {
	if p.panelType != PanelEpisodes || p.cursor >= len(p.episodeMatches) {
		return domain.Episode{}, false
	}
	return p.episodeMatches[p.cursor].Episode, true
}

// SelectedCast returns the highlighted cast entry
func (p ListPanel) SelectedCast() (domain.CastEntry, bool) {
	if p.panelType != PanelCast || p.cursor >= len(p.castMatches) {
		return domain.CastEntry{}, false
	}
	return p.castMatches[p.cursor].Entry, true
}

// SelectedResult returns the highlighted search result
func (p ListPanel) SelectedResult() (domain.SearchResult, bool) {
	if p.panelType != PanelResults || p.cursor >= len(p.results) {
		return domain.SearchResult{}, false
	}
	return p.results[p.cursor], true
}

// StartFilter opens the filter input. Search results are not filterable.
func (p *ListPanel) StartFilter() tea.Cmd {
	if p.panelType == PanelResults {
		return nil
	}
	p.filterActive = true
	p.recalcMaxVisible()
	return p.filterInput.Focus()
}

// IsFiltering returns true if a filter is applied or being typed
func (p ListPanel) IsFiltering() bool {
	return p.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (p ListPanel) IsFilterTyping() bool {
	return p.filterActive && p.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (p *ListPanel) ClearFilter() {
	p.clearFilter()
}

// Update handles navigation and filter typing
func (p *ListPanel) Update(msg tea.Msg) tea.Cmd {
	if !p.focused {
		return nil
	}

	if p.IsFilterTyping() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, ListPanelKeys.Escape):
				p.clearFilter()
				return nil
			case key.Matches(msg, ListPanelKeys.Accept):
				// Keep the filter, hand keys back to navigation
				p.filterInput.Blur()
				return nil
			case msg.Type == tea.KeyBackspace && p.filterInput.Value() == "":
				p.clearFilter()
				return nil
			}
		}

		var cmd tea.Cmd
		p.filterInput, cmd = p.filterInput.Update(msg)
		if p.filterInput.Value() != p.filterQuery {
			p.applyFilter()
		}
		return cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if p.filterActive && key.Matches(keyMsg, ListPanelKeys.Escape) {
		p.clearFilter()
		return nil
	}

	count := p.ItemCount()
	if count == 0 {
		return nil
	}

	switch {
	case key.Matches(keyMsg, ListPanelKeys.Down):
		if p.cursor < count-1 {
			p.cursor++
			p.ensureVisible()
		}
	case key.Matches(keyMsg, ListPanelKeys.Up):
		if p.cursor > 0 {
			p.cursor--
			p.ensureVisible()
		}
	case key.Matches(keyMsg, ListPanelKeys.Home):
		p.cursor = 0
		p.offset = 0
	case key.Matches(keyMsg, ListPanelKeys.End):
		p.cursor = count - 1
		p.ensureVisible()
	case key.Matches(keyMsg, ListPanelKeys.HalfDown):
		p.cursor = min(p.cursor+max(p.maxVisible/2, 1), count-1)
		p.ensureVisible()
	case key.Matches(keyMsg, ListPanelKeys.HalfUp):
		p.cursor = max(p.cursor-max(p.maxVisible/2, 1), 0)
		p.ensureVisible()
	}
	return nil
}

// View renders the component
func (p ListPanel) View() string {
	style := styles.InactiveBorder
	if p.focused {
		style = styles.ActiveBorder
	}

	_, frameH := style.GetFrameSize()
	width := p.contentWidth()
	height := max(p.height-frameH, 1)

	return style.
		Width(width).
		Height(height).
		MaxHeight(p.height).
		Render(p.renderContent(width))
}

// Internal methods

func (p *ListPanel) reset() {
	p.cursor = 0
	p.offset = 0
	p.clearFilter()
}

// recalcMaxVisible sets the line budget for rows, expanded detail included
func (p *ListPanel) recalcMaxVisible() {
	// Interior height minus title line and scroll indicators
	p.maxVisible = p.height - BorderHeight - ScrollIndicatorLines - 1
	if p.filterActive {
		p.maxVisible--
	}
	if p.maxVisible < 1 {
		p.maxVisible = 1
	}
}

func (p *ListPanel) ensureVisible() {
	if p.maxVisible <= 0 {
		return
	}
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.ItemCount() {
		return
	}

	// Advance the offset until every line from it through the cursor row fits
	width := p.contentWidth()
	used := 0
	for i := p.offset; i <= p.cursor; i++ {
		used += p.rowHeight(i, width)
	}
	for p.offset < p.cursor && used > p.maxVisible {
		used -= p.rowHeight(p.offset, width)
		p.offset++
	}
}

// contentWidth is the interior width rows are rendered at
func (p ListPanel) contentWidth() int {
	frameW, _ := styles.InactiveBorder.GetFrameSize()
	return max(p.width-frameW, 10)
}

// rowHeight is the number of lines row i takes, including its expanded detail
func (p ListPanel) rowHeight(i, width int) int {
	switch p.panelType {
	case PanelEpisodes:
		if ep := p.episodeMatches[i].Episode; p.expanded.Is(ep.ID) {
			return 1 + lipgloss.Height(RenderEpisodeDetail(ep, width))
		}
	case PanelCast:
		if c := p.castMatches[i].Entry; p.expanded.Is(c.Person.ID) {
			return 1 + lipgloss.Height(RenderCastDetail(c, width))
		}
	}
	return 1
}

func (p *ListPanel) clearFilter() {
	p.filterActive = false
	p.filterInput.SetValue("")
	p.filterInput.Blur()
	p.applyFilter()
	p.recalcMaxVisible()
}

func (p *ListPanel) applyFilter() {
	p.filterQuery = p.filterInput.Value()

	switch p.panelType {
	case PanelEpisodes:
		p.episodeMatches = search.FilterEpisodes(p.filterQuery, p.episodes)
	case PanelCast:
		p.castMatches = search.FilterCast(p.filterQuery, p.cast)
	}

	p.cursor = 0
	p.offset = 0
}

// Rendering

func (p ListPanel) renderContent(width int) string {
	titleLine := styles.AccentStyle.Render(styles.Truncate(p.title, width))

	count := p.ItemCount()
	if count == 0 {
		emptyMsg := p.emptyMsg
		if p.filterActive && p.filterQuery != "" {
			emptyMsg = "No matches"
		}
		content := titleLine + "\n \n" + styles.DimStyle.Render(emptyMsg)
		if p.filterActive {
			content += "\n" + p.renderFilterBar()
		}
		return content
	}

	// Fill the line budget; the first row is always shown
	end := p.offset
	for used := 0; end < count; end++ {
		h := p.rowHeight(end, width)
		if end > p.offset && used+h > p.maxVisible {
			break
		}
		used += h
	}

	var lines []string
	for i := p.offset; i < end; i++ {
		selected := p.focused && i == p.cursor
		switch p.panelType {
		case PanelEpisodes:
			m := p.episodeMatches[i]
			lines = append(lines, renderEpisodeRow(m, selected, width))
			if p.expanded.Is(m.Episode.ID) {
				lines = append(lines, RenderEpisodeDetail(m.Episode, width))
			}
		case PanelCast:
			m := p.castMatches[i]
			lines = append(lines, renderCastRow(m.Entry, selected, width))
			if p.expanded.Is(m.Entry.Person.ID) {
				lines = append(lines, RenderCastDetail(m.Entry, width))
			}
		case PanelResults:
			lines = append(lines, renderResultRow(p.results[i], selected, width))
		}
	}

	header := " "
	if p.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if p.filterActive {
		content += "\n" + p.renderFilterBar()
	}
	return content
}

func (p ListPanel) renderFilterBar() string {
	countStr := ""
	if p.filterQuery != "" {
		total := len(p.episodes)
		if p.panelType == PanelCast {
			total = len(p.cast)
		}
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", p.ItemCount(), total))
	}
	return p.filterInput.View() + countStr
}

func renderEpisodeRow(m search.EpisodeMatch, selected bool, width int) string {
	accent := styles.FrogGreen
	code := m.Episode.EpisodeCode()
	name := styles.Truncate(m.Episode.Name, width-len(code)-4)

	// Highlighting needs the untruncated offsets to line up
	if len(m.MatchedIndexes) > 0 && name == m.Episode.Name {
		name = styles.Highlight(name, m.MatchedIndexes, selected)
	}

	parts := []styles.RowPart{
		{Text: code, Foreground: &accent},
		{Text: " " + name},
	}
	return styles.RenderListRow(parts, selected, width)
}

func renderCastRow(c domain.CastEntry, selected bool, width int) string {
	dim := styles.DimGray
	name := c.Person.Name
	character := ""
	if c.Character.Name != "" {
		character = " as " + c.Character.Name
	}
	if lipgloss.Width(name+character) > width-2 {
		character = styles.Truncate(character, max(width-2-lipgloss.Width(name), 0))
	}

	parts := []styles.RowPart{
		{Text: name},
		{Text: character, Foreground: &dim},
	}
	return styles.RenderListRow(parts, selected, width)
}

func renderResultRow(r domain.SearchResult, selected bool, width int) string {
	dim := styles.DimGray
	rating := styles.Yellow

	year := ""
	if y := r.Show.PremieredYear(); y > 0 {
		year = fmt.Sprintf(" (%d)", y)
	}
	score := ""
	if r.Show.Rating > 0 {
		score = " ★ " + r.Show.FormattedRating()
	}

	name := styles.Truncate(r.Show.Name, max(width-len(year)-len(score)-4, 4))
	parts := []styles.RowPart{
		{Text: name, Bold: true},
		{Text: year, Foreground: &dim},
		{Text: score, Foreground: &rating},
	}
	return styles.RenderListRow(parts, selected, width)
}

// RenderEpisodeDetail renders the inline panel for an expanded episode
func RenderEpisodeDetail(ep domain.Episode, width int) string {
	inner := max(width-6, 10)

	meta := ep.EpisodeCode()
	if rt := ep.FormattedRuntime(); rt != "" {
		meta += " · " + rt
	}

	summary := ep.SummaryText
	if summary == "" {
		summary = "No summary available"
	}

	body := styles.SubtitleStyle.Render(meta) + "\n" + styles.WordWrap(summary, inner)
	return styles.ExpandedStyle.Width(inner).Render(body)
}

// RenderCastDetail renders the inline panel for an expanded cast member
func RenderCastDetail(c domain.CastEntry, width int) string {
	inner := max(width-6, 10)

	lines := []string{
		styles.TitleStyle.Render(c.Person.Name),
	}
	if c.Character.Name != "" {
		lines = append(lines, styles.SubtitleStyle.Render("Character: "+c.Character.Name))
	}
	lines = append(lines, styles.SubtitleStyle.Render("Birthday: "+c.Person.FormattedBirthday()))
	if img := c.Person.Image.Best(); img != "" {
		lines = append(lines, styles.DimStyle.Render(styles.Truncate(img, inner)))
	} else {
		lines = append(lines, styles.DimStyle.Render("No image"))
	}

	return styles.ExpandedStyle.Width(inner).Render(strings.Join(lines, "\n"))
}
