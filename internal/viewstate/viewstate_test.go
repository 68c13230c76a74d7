package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/netfrog/internal/domain"
)

func results(names ...string) []domain.SearchResult {
	out := make([]domain.SearchResult, len(names))
	for i, name := range names {
		out[i] = domain.SearchResult{Score: float64(len(names) - i), Show: domain.Show{ID: i + 1, Name: name}}
	}
	return out
}

func TestSlotToggle(t *testing.T) {
	var s Slot
	assert.True(t, s.Empty())

	s = s.Toggle(7)
	id, ok := s.ID()
	assert.True(t, ok)
	assert.Equal(t, 7, id)

	// A different id replaces the expansion
	s = s.Toggle(9)
	assert.True(t, s.Is(9))
	assert.False(t, s.Is(7))

	s = s.Toggle(9)
	assert.True(t, s.Empty())
}

func TestNewStartsInDetail(t *testing.T) {
	c := New(1)
	d, ok := c.Detail()
	require.True(t, ok)
	assert.Equal(t, 1, d.Season)
	assert.True(t, d.Episode.Empty())
	assert.True(t, d.Cast.Empty())
	assert.Equal(t, KindDetail, c.Kind())
}

func TestZeroControllerIsDetail(t *testing.T) {
	var c Controller
	assert.Equal(t, KindDetail, c.Kind())
	c = c.ToggleEpisode(3)
	d, _ := c.Detail()
	assert.True(t, d.Episode.Is(3))
}

func TestToggleEpisodeTwiceRestoresState(t *testing.T) {
	for _, start := range []Controller{
		New(1),
		New(1).ToggleEpisode(5),
		New(2).ToggleEpisode(11).ToggleCastMember(3),
	} {
		for _, ep := range []int{5, 11, 42} {
			got := start.ToggleEpisode(ep).ToggleEpisode(ep)
			if start.State().(Detail).Episode.Is(ep) || start.State().(Detail).Episode.Empty() {
				assert.Equal(t, start.State(), got.State())
			}
		}
	}

	c := New(1).ToggleEpisode(5)
	assert.Equal(t, c.State(), c.ToggleEpisode(5).ToggleEpisode(5).State())
	assert.Equal(t, New(1).State(), New(1).ToggleEpisode(5).ToggleEpisode(5).State())
}

func TestTogglesUseIndependentSlots(t *testing.T) {
	c := New(1).ToggleEpisode(10).ToggleCastMember(20)
	d, _ := c.Detail()
	assert.True(t, d.Episode.Is(10))
	assert.True(t, d.Cast.Is(20))

	c = c.ToggleEpisode(11)
	d, _ = c.Detail()
	assert.True(t, d.Episode.Is(11))
	assert.True(t, d.Cast.Is(20))
}

func TestSelectSeasonKeepsCast(t *testing.T) {
	c := New(1).ToggleCastMember(20).ToggleEpisode(10)

	for _, season := range []int{1, 2, 5, 0} {
		next := c.SelectSeason(season)
		d, ok := next.Detail()
		require.True(t, ok)
		assert.True(t, d.Cast.Is(20), "season %d", season)
		assert.Equal(t, season, d.Season)
	}
}

func TestSelectSeasonCollapsesEpisodeOnChange(t *testing.T) {
	c := New(1).ToggleEpisode(10)

	same := c.SelectSeason(1)
	d, _ := same.Detail()
	assert.True(t, d.Episode.Is(10))

	other := c.SelectSeason(2)
	d, _ = other.Detail()
	assert.True(t, d.Episode.Empty())
	assert.Equal(t, 2, other.Season())
}

func TestControllerIsImmutable(t *testing.T) {
	c := New(1)
	_ = c.ToggleEpisode(4).SelectSeason(3).SubmitSearch("wire", results("The Wire"))

	d, ok := c.Detail()
	require.True(t, ok)
	assert.Equal(t, Detail{Season: 1}, d)
}

func TestSubmitSearchFromAnyView(t *testing.T) {
	hits := results("The Wire", "Wire in the Blood")

	c := New(1).ToggleEpisode(4).ToggleCastMember(8).SubmitSearch("wire", hits)
	s, ok := c.SearchResults()
	require.True(t, ok)
	assert.Equal(t, "wire", s.Query)
	assert.Equal(t, hits, s.Results)

	c = c.SelectResult(hits[1]).SubmitSearch("bad", results("Breaking Bad"))
	s, ok = c.SearchResults()
	require.True(t, ok)
	assert.Equal(t, "bad", s.Query)
	assert.Len(t, s.Results, 1)
}

func TestSubmitSearchEmptyResults(t *testing.T) {
	c := New(1).SubmitSearch("zzzzqx", nil)
	s, ok := c.SearchResults()
	require.True(t, ok)
	assert.Empty(t, s.Results)
	assert.Equal(t, KindSearchResults, c.Kind())
}

func TestSelectResultAndBack(t *testing.T) {
	hits := results("The Wire", "Wire in the Blood")
	c := New(3).SubmitSearch("wire", hits).SelectResult(hits[0])

	item, ok := c.ItemDetail()
	require.True(t, ok)
	assert.Equal(t, "The Wire", item.Item.Show.Name)

	c = c.GoBack()
	s, ok := c.SearchResults()
	require.True(t, ok)
	assert.Equal(t, "wire", s.Query)
	assert.Equal(t, hits, s.Results)
}

func TestGoHomeRestoresSeason(t *testing.T) {
	hits := results("The Wire")
	c := New(1).SelectSeason(4).ToggleEpisode(2).ToggleCastMember(6)
	c = c.SubmitSearch("wire", hits).SelectResult(hits[0]).GoHome()

	d, ok := c.Detail()
	require.True(t, ok)
	assert.Equal(t, Detail{Season: 4}, d)
}

func TestOperationsInWrongViewAreNoOps(t *testing.T) {
	hits := results("The Wire")
	detail := New(1).ToggleEpisode(3)
	search := New(1).SubmitSearch("wire", hits)
	item := search.SelectResult(hits[0])

	tests := []struct {
		name string
		c    Controller
		op   func(Controller) Controller
	}{
		{"select season in results", search, func(c Controller) Controller { return c.SelectSeason(2) }},
		{"toggle episode in results", search, func(c Controller) Controller { return c.ToggleEpisode(1) }},
		{"toggle cast in item", item, func(c Controller) Controller { return c.ToggleCastMember(1) }},
		{"select result in detail", detail, func(c Controller) Controller { return c.SelectResult(hits[0]) }},
		{"select result in item", item, func(c Controller) Controller { return c.SelectResult(hits[0]) }},
		{"back in detail", detail, func(c Controller) Controller { return c.GoBack() }},
		{"back in results", search, func(c Controller) Controller { return c.GoBack() }},
		{"home in detail", detail, func(c Controller) Controller { return c.GoHome() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.c, tt.op(tt.c))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "detail", KindDetail.String())
	assert.Equal(t, "search_results", KindSearchResults.String())
	assert.Equal(t, "item_detail", KindItemDetail.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
