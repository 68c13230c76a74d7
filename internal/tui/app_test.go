package tui

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/netfrog/internal/log"
	"github.com/mmcdole/netfrog/internal/mediaserver/tvmaze"
	"github.com/mmcdole/netfrog/internal/viewstate"
)

const breakingBadJSON = `{
	"id": 184,
	"name": "Breaking Bad",
	"url": "https://www.tvmaze.com/shows/184/breaking-bad",
	"genres": ["Drama"],
	"language": "English",
	"runtime": 45,
	"premiered": "2008-01-20",
	"rating": {"average": 9.3},
	"image": null,
	"summary": "<p><b>Breaking Bad</b> follows a chemistry instructor.</p>"
}`

const episodesJSON = `[
	{"id": 11, "season": 1, "number": 1, "name": "Pilot", "runtime": 58, "summary": "<p>Walt's first cook.</p>"},
	{"id": 12, "season": 1, "number": 2, "name": "Cat's in the Bag...", "runtime": 48, "summary": null},
	{"id": 21, "season": 2, "number": 1, "name": "Seven Thirty-Seven", "runtime": 47, "summary": "<p>Tuco.</p>"}
]`

const castJSON = `[
	{"person": {"id": 1, "name": "Bryan Cranston", "birthday": "1956-03-07", "image": null}, "character": {"id": 7, "name": "Walter White"}}
]`

type fakeAPI struct {
	episodesStatus atomic.Int32
	searchHits     atomic.Int32
	lastQuery      atomic.Value
	search         map[string]string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()

	api := &fakeAPI{
		search: map[string]string{
			"wire":   `[{"score": 0.9, "show": {"id": 179, "name": "The Wire", "genres": ["Crime"], "summary": "<p>Baltimore.</p>"}}]`,
			"first":  `[{"score": 0.5, "show": {"id": 1, "name": "First Show"}}]`,
			"second": `[{"score": 0.7, "show": {"id": 2, "name": "Second Show"}}]`,
			"zzqx":   `[]`,
		},
	}
	api.episodesStatus.Store(http.StatusOK)

	mux := http.NewServeMux()
	mux.HandleFunc("/shows/184", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(breakingBadJSON))
	})
	mux.HandleFunc("/shows/184/episodes", func(w http.ResponseWriter, r *http.Request) {
		status := int(api.episodesStatus.Load())
		w.WriteHeader(status)
		if status == http.StatusOK {
			w.Write([]byte(episodesJSON))
		}
	})
	mux.HandleFunc("/shows/184/cast", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(castJSON))
	})
	mux.HandleFunc("/search/shows", func(w http.ResponseWriter, r *http.Request) {
		api.searchHits.Add(1)
		api.lastQuery.Store(r.URL.Query().Get("q"))
		body, ok := api.search[r.URL.Query().Get("q")]
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(body))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return api, srv
}

func newTestModel(t *testing.T, srv *httptest.Server, season int) Model {
	t.Helper()
	src := tvmaze.NewClient(srv.URL, "", 0, log.NullLogger())
	m := NewModel(src, 184, season, log.NullLogger())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

// runCmd executes cmd and any batched commands, returning the fetch messages.
// Spinner ticks are dropped so nothing waits on a timer.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var out []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
	case spinner.TickMsg, nil:
	default:
		out = append(out, msg)
	}
	return out
}

func feed(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func loaded(t *testing.T, srv *httptest.Server, season int) Model {
	t.Helper()
	m := newTestModel(t, srv, season)
	return feed(m, runCmd(m.Init())...)
}

func search(t *testing.T, m Model, query string) (Model, tea.Cmd) {
	t.Helper()
	m, _ = press(m, "/")
	require.True(t, m.SearchBar.Focused())
	m.SearchBar.SetQuery(query)
	return press(m, "enter")
}

func TestDetailViewRendersShow(t *testing.T) {
	_, srv := newFakeAPI(t)
	m := loaded(t, srv, 1)

	view := m.View()
	assert.Contains(t, view, "Breaking Bad")
	assert.Contains(t, view, "Drama")
	assert.Contains(t, view, "9.3/10")
	assert.Contains(t, view, "Bryan Cranston")
	assert.NotContains(t, view, "<p>")
	assert.Equal(t, 2, m.Episodes.ItemCount())
}

func TestDetailWaitsForAllThree(t *testing.T) {
	_, srv := newFakeAPI(t)
	m := newTestModel(t, srv, 1)
	msgs := runCmd(m.Init())
	require.Len(t, msgs, 3)

	for i, msg := range msgs[:2] {
		m = feed(m, msg)
		assert.True(t, m.bundlePhase().Loading, "after %d of 3", i+1)
		assert.Contains(t, m.View(), "Loading...")
	}

	m = feed(m, msgs[2])
	assert.False(t, m.bundlePhase().Loading)
	assert.Contains(t, m.View(), "Episodes")
}

func TestSelectSeasonFiltersEpisodes(t *testing.T) {
	_, srv := newFakeAPI(t)
	m := loaded(t, srv, 1)
	require.Equal(t, []int{1, 2}, m.seasons)

	m, _ = press(m, "]")
	assert.Equal(t, 2, m.nav.Season())
	assert.Equal(t, 1, m.Episodes.ItemCount())
	assert.Contains(t, m.View(), "Seven Thirty-Seven")

	m, _ = press(m, "[")
	assert.Equal(t, 1, m.nav.Season())
	assert.Equal(t, 2, m.Episodes.ItemCount())
}

func TestDefaultSeasonClampedToAvailable(t *testing.T) {
	_, srv := newFakeAPI(t)
	m := loaded(t, srv, 9)
	assert.Equal(t, 1, m.nav.Season())
	assert.Equal(t, 2, m.Episodes.ItemCount())
}

func TestToggleEpisodeExpansion(t *testing.T) {
	_, srv := newFakeAPI(t)
	m := loaded(t, srv, 1)
	assert.NotContains(t, m.View(), "Walt's first cook.")

	m, _ = press(m, "enter")
	d, ok := m.nav.Detail()
	require.True(t, ok)
	assert.True(t, d.Episode.Is(11))
	assert.Contains(t, m.View(), "Walt's first cook.")

	m, _ = press(m, "enter")
	d, _ = m.nav.Detail()
	assert.True(t, d.Episode.Empty())
	assert.NotContains(t, m.View(), "Walt's first cook.")
}

func TestToggleCastKeptAcrossSeasons(t *testing.T) {
	_, srv := newFakeAPI(t)
	m := loaded(t, srv, 1)

	m, _ = press(m, "tab", "enter")
	assert.Contains(t, m.View(), "Birthday: 1956-03-07")

	m, _ = press(m, "tab", "]")
	d, _ := m.nav.Detail()
	assert.True(t, d.Cast.Is(1))
	assert.Contains(t, m.View(), "Birthday: 1956-03-07")
}

func TestFetchErrorReplacesView(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.episodesStatus.Store(http.StatusNotFound)
	m := loaded(t, srv, 1)

	view := m.View()
	assert.Contains(t, view, ErrorMessage)
	assert.NotContains(t, view, "Bryan Cranston")

	// Retry once the API recovers
	api.episodesStatus.Store(http.StatusOK)
	m, cmd := press(m, "r")
	assert.True(t, m.bundlePhase().Loading)
	m = feed(m, runCmd(cmd)...)
	assert.NotContains(t, m.View(), ErrorMessage)
	assert.Contains(t, m.View(), "Pilot")
}

func TestSearchShowsResults(t *testing.T) {
	_, srv := newFakeAPI(t)
	m := loaded(t, srv, 1)

	m, cmd := search(t, m, "  wire ")
	assert.True(t, m.SearchBar.Loading())
	m = feed(m, runCmd(cmd)...)

	s, ok := m.nav.SearchResults()
	require.True(t, ok)
	assert.Equal(t, "wire", s.Query)
	require.Len(t, s.Results, 1)
	assert.Contains(t, m.View(), "The Wire")
	assert.False(t, m.SearchBar.Loading())
}

func TestEmptySearchResults(t *testing.T) {
	_, srv := newFakeAPI(t)
	m := loaded(t, srv, 1)

	m, cmd := search(t, m, "zzqx")
	m = feed(m, runCmd(cmd)...)

	assert.Equal(t, viewstate.KindSearchResults, m.nav.Kind())
	view := m.View()
	assert.Contains(t, view, `No results for "zzqx"`)
	assert.NotContains(t, view, ErrorMessage)
}

func TestBlankSearchIgnored(t *testing.T) {
	api, srv := newFakeAPI(t)
	m := loaded(t, srv, 1)

	m, cmd := search(t, m, "   ")
	assert.Nil(t, cmd)
	assert.False(t, m.SearchBar.Focused())
	assert.Equal(t, viewstate.KindDetail, m.nav.Kind())
	assert.Zero(t, api.searchHits.Load())
}

func TestLastSubmittedSearchWins(t *testing.T) {
	_, srv := newFakeAPI(t)
	m := loaded(t, srv, 1)

	m, first := search(t, m, "first")
	m, second := search(t, m, "second")

	// The second search resolves first, then the stale first one arrives
	m = feed(m, runCmd(second)...)
	m = feed(m, runCmd(first)...)

	s, ok := m.nav.SearchResults()
	require.True(t, ok)
	assert.Equal(t, "second", s.Query)
	require.Len(t, s.Results, 1)
	assert.Equal(t, "Second Show", s.Results[0].Show.Name)
	assert.NotContains(t, m.View(), "First Show")
}

func TestSearchErrorCanBeDismissed(t *testing.T) {
	_, srv := newFakeAPI(t)
	m := loaded(t, srv, 1)

	m, cmd := search(t, m, "boom")
	m = feed(m, runCmd(cmd)...)
	assert.Contains(t, m.View(), ErrorMessage)

	m, _ = press(m, "esc")
	assert.NotContains(t, m.View(), ErrorMessage)
	assert.Equal(t, viewstate.KindDetail, m.nav.Kind())
	assert.Contains(t, m.View(), "Breaking Bad")
}

func TestSearchRetryUsesFailedQuery(t *testing.T) {
	api, srv := newFakeAPI(t)
	m := loaded(t, srv, 1)

	m, cmd := search(t, m, "boom")
	m = feed(m, runCmd(cmd)...)
	require.Contains(t, m.View(), ErrorMessage)

	// Edit the bar to blanks and back out without submitting
	m, _ = press(m, "/")
	m.SearchBar.SetQuery("   ")
	m, _ = press(m, "esc")
	require.False(t, m.SearchBar.Focused())

	m, cmd = press(m, "r")
	require.NotNil(t, cmd)
	m = feed(m, runCmd(cmd)...)

	assert.Equal(t, int32(2), api.searchHits.Load())
	assert.Equal(t, "boom", api.lastQuery.Load())
	assert.Equal(t, "boom", m.SearchBar.Query())
	assert.Contains(t, m.View(), ErrorMessage)
}

func TestSelectResultBackAndHome(t *testing.T) {
	_, srv := newFakeAPI(t)
	m := loaded(t, srv, 1)
	m, _ = press(m, "]")

	m, cmd := search(t, m, "wire")
	m = feed(m, runCmd(cmd)...)

	m, _ = press(m, "enter")
	item, ok := m.nav.ItemDetail()
	require.True(t, ok)
	assert.Equal(t, "The Wire", item.Item.Show.Name)
	assert.Contains(t, m.View(), "Baltimore.")

	m, _ = press(m, "esc")
	assert.Equal(t, viewstate.KindSearchResults, m.nav.Kind())

	m, _ = press(m, "H")
	d, ok := m.nav.Detail()
	require.True(t, ok)
	assert.Equal(t, 2, d.Season)
	assert.Equal(t, 1, m.Episodes.ItemCount())
}

type fakeOpener struct {
	opened []string
}

func (f *fakeOpener) Open(url string) error {
	f.opened = append(f.opened, url)
	return nil
}

func TestOpenShowPage(t *testing.T) {
	_, srv := newFakeAPI(t)
	m := loaded(t, srv, 1)

	// Without an opener the key does nothing
	_, cmd := press(m, "o")
	assert.Nil(t, cmd)

	opener := &fakeOpener{}
	m.Opener = opener
	m, cmd = press(m, "o")
	m = feed(m, runCmd(cmd)...)

	assert.Equal(t, []string{"https://www.tvmaze.com/shows/184/breaking-bad"}, opener.opened)
	assert.Equal(t, "Opened https://www.tvmaze.com/shows/184/breaking-bad", m.StatusMsg)
	assert.False(t, m.StatusIsErr)
}

func TestQuit(t *testing.T) {
	_, srv := newFakeAPI(t)
	m := loaded(t, srv, 1)

	_, cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
