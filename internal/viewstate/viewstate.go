// Package viewstate decides which screen is active and what is expanded on it.
//
// Exactly one of Detail, SearchResults or ItemDetail is active at a time.
// Controller values are immutable: every transition returns a new Controller
// and leaves the receiver untouched, so the TUI model can hold one by value.
package viewstate

import "github.com/mmcdole/netfrog/internal/domain"

// Slot holds at most one expanded item id
type Slot struct {
	id  int
	set bool
}

// Expanded returns a slot holding id
func Expanded(id int) Slot { return Slot{id: id, set: true} }

// ID returns the expanded id and whether the slot holds one
func (s Slot) ID() (int, bool) { return s.id, s.set }

// Is reports whether id is the expanded item
func (s Slot) Is(id int) bool { return s.set && s.id == id }

// Empty reports whether nothing is expanded
func (s Slot) Empty() bool { return !s.set }

// Toggle collapses id if it is expanded, otherwise expands it in place of
// whatever was expanded before
func (s Slot) Toggle(id int) Slot {
	if s.Is(id) {
		return Slot{}
	}
	return Expanded(id)
}

// Kind names the active view
type Kind int

const (
	KindDetail Kind = iota
	KindSearchResults
	KindItemDetail
)

func (k Kind) String() string {
	switch k {
	case KindDetail:
		return "detail"
	case KindSearchResults:
		return "search_results"
	case KindItemDetail:
		return "item_detail"
	default:
		return "unknown"
	}
}

// State is one of Detail, SearchResults or ItemDetail
type State interface {
	Kind() Kind
	isState()
}

// Detail is the home view for the configured show
type Detail struct {
	Season  int
	Episode Slot
	Cast    Slot
}

// SearchResults lists the outcome of the last submitted search. An empty
// Results slice is a valid state.
type SearchResults struct {
	Query   string
	Results []domain.SearchResult
}

// ItemDetail shows one search result. The results it was picked from are
// kept so Back can return to them.
type ItemDetail struct {
	Item    domain.SearchResult
	Query   string
	Results []domain.SearchResult
}

func (Detail) Kind() Kind        { return KindDetail }
func (SearchResults) Kind() Kind { return KindSearchResults }
func (ItemDetail) Kind() Kind    { return KindItemDetail }

func (Detail) isState()        {}
func (SearchResults) isState() {}
func (ItemDetail) isState()    {}

// Controller is the view state machine
type Controller struct {
	state State
	// season survives a trip through search so Home lands where the user left
	season int
}

// New returns a controller in Detail view for season
func New(season int) Controller {
	return Controller{state: Detail{Season: season}, season: season}
}

// State returns the active view
func (c Controller) State() State {
	if c.state == nil {
		return Detail{Season: c.season}
	}
	return c.state
}

// Kind returns the kind of the active view
func (c Controller) Kind() Kind { return c.State().Kind() }

// Detail returns the Detail state if it is active
func (c Controller) Detail() (Detail, bool) {
	d, ok := c.State().(Detail)
	return d, ok
}

// SearchResults returns the SearchResults state if it is active
func (c Controller) SearchResults() (SearchResults, bool) {
	s, ok := c.State().(SearchResults)
	return s, ok
}

// ItemDetail returns the ItemDetail state if it is active
func (c Controller) ItemDetail() (ItemDetail, bool) {
	s, ok := c.State().(ItemDetail)
	return s, ok
}

// Season returns the selected season, which is remembered outside Detail view
func (c Controller) Season() int { return c.season }

// SelectSeason switches the season filter. A change of season collapses the
// expanded episode; the cast expansion is kept.
func (c Controller) SelectSeason(n int) Controller {
	d, ok := c.Detail()
	if !ok {
		return c
	}
	if d.Season != n {
		d.Episode = Slot{}
	}
	d.Season = n
	return Controller{state: d, season: n}
}

// ToggleEpisode expands episodeID, or collapses it if already expanded
func (c Controller) ToggleEpisode(episodeID int) Controller {
	d, ok := c.Detail()
	if !ok {
		return c
	}
	d.Episode = d.Episode.Toggle(episodeID)
	return Controller{state: d, season: c.season}
}

// ToggleCastMember expands personID, or collapses it if already expanded
func (c Controller) ToggleCastMember(personID int) Controller {
	d, ok := c.Detail()
	if !ok {
		return c
	}
	d.Cast = d.Cast.Toggle(personID)
	return Controller{state: d, season: c.season}
}

// SubmitSearch moves to SearchResults from any view, dropping any expansion
func (c Controller) SubmitSearch(query string, results []domain.SearchResult) Controller {
	return Controller{
		state:  SearchResults{Query: query, Results: results},
		season: c.season,
	}
}

// SelectResult opens a result from SearchResults
func (c Controller) SelectResult(result domain.SearchResult) Controller {
	s, ok := c.SearchResults()
	if !ok {
		return c
	}
	return Controller{
		state:  ItemDetail{Item: result, Query: s.Query, Results: s.Results},
		season: c.season,
	}
}

// GoBack returns from ItemDetail to the results it was opened from. Other
// views are unchanged.
func (c Controller) GoBack() Controller {
	s, ok := c.ItemDetail()
	if !ok {
		return c
	}
	return Controller{
		state:  SearchResults{Query: s.Query, Results: s.Results},
		season: c.season,
	}
}

// GoHome returns to Detail view on the remembered season with nothing
// expanded. Already in Detail view it is a no-op.
func (c Controller) GoHome() Controller {
	if _, ok := c.Detail(); ok {
		return c
	}
	return New(c.season)
}
