package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/netfrog/internal/fetch"
	"github.com/mmcdole/netfrog/internal/mediaserver"
)

// Command factories for async operations. Requests are not given a deadline
// here; the HTTP client timeout from config applies.

// FetchShowCmd runs a show request
func FetchShowCmd(src mediaserver.MediaSource, req fetch.Request) tea.Cmd {
	return func() tea.Msg {
		return ShowLoadedMsg{Result: fetch.Run(context.Background(), req, src.ShowAt)}
	}
}

// FetchEpisodesCmd runs an episode list request
func FetchEpisodesCmd(src mediaserver.MediaSource, req fetch.Request) tea.Cmd {
	return func() tea.Msg {
		return EpisodesLoadedMsg{Result: fetch.Run(context.Background(), req, src.EpisodesAt)}
	}
}

// FetchCastCmd runs a cast request
func FetchCastCmd(src mediaserver.MediaSource, req fetch.Request) tea.Cmd {
	return func() tea.Msg {
		return CastLoadedMsg{Result: fetch.Run(context.Background(), req, src.CastAt)}
	}
}

// SearchCmd runs a search request for query
func SearchCmd(src mediaserver.MediaSource, req fetch.Request, query string) tea.Cmd {
	return func() tea.Msg {
		return SearchResultsMsg{
			Query:  query,
			Result: fetch.Run(context.Background(), req, src.SearchAt),
		}
	}
}

// OpenURLCmd opens url with opener
func OpenURLCmd(opener URLOpener, url string) tea.Cmd {
	return func() tea.Msg {
		return OpenedMsg{URL: url, Err: opener.Open(url)}
	}
}

// ClearStatusCmd clears status message seq after a delay
func ClearStatusCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
