package tui

import (
	"github.com/mmcdole/netfrog/internal/domain"
	"github.com/mmcdole/netfrog/internal/fetch"
)

// Message types for the TUI. Each fetch message carries the Result for the
// Request it was started with; stale ones are dropped on Commit.

// ShowLoadedMsg carries the outcome of a show fetch
type ShowLoadedMsg struct {
	Result fetch.Result[*domain.Show]
}

// EpisodesLoadedMsg carries the outcome of an episode list fetch
type EpisodesLoadedMsg struct {
	Result fetch.Result[[]domain.Episode]
}

// CastLoadedMsg carries the outcome of a cast fetch
type CastLoadedMsg struct {
	Result fetch.Result[[]domain.CastEntry]
}

// SearchResultsMsg carries the outcome of a show search
type SearchResultsMsg struct {
	Query  string
	Result fetch.Result[[]domain.SearchResult]
}

// OpenedMsg reports the outcome of opening a page in the browser
type OpenedMsg struct {
	URL string
	Err error
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct {
	Seq int
}
