package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/netfrog/internal/domain"
	"github.com/mmcdole/netfrog/internal/log"
	"github.com/mmcdole/netfrog/internal/service"
)

type fakeRepo struct {
	bundle  domain.ShowBundle
	results []domain.SearchResult
	err     error
}

func (f *fakeRepo) GetShow(ctx context.Context, id int) (*domain.Show, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bundle.Show, nil
}

func (f *fakeRepo) GetEpisodes(ctx context.Context, showID int) ([]domain.Episode, error) {
	return f.bundle.Episodes, nil
}

func (f *fakeRepo) GetCast(ctx context.Context, showID int) ([]domain.CastEntry, error) {
	return f.bundle.Cast, nil
}

func (f *fakeRepo) SearchShows(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func breakingBad() domain.ShowBundle {
	return domain.ShowBundle{
		Show: &domain.Show{
			ID:          184,
			Name:        "Breaking Bad",
			Genres:      []string{"Drama", "Crime"},
			Language:    "English",
			Runtime:     60,
			Premiered:   time.Date(2008, 1, 20, 0, 0, 0, 0, time.UTC),
			Rating:      9.3,
			SummaryText: "A chemistry instructor diagnosed with cancer turns to making meth.",
		},
		Episodes: []domain.Episode{
			{ID: 11, Season: 1, Number: 1, Name: "Pilot", Runtime: 58},
			{ID: 12, Season: 1, Number: 2, Name: "Cat's in the Bag..."},
			{ID: 21, Season: 2, Number: 1, Name: "Seven Thirty-Seven"},
		},
		Cast: []domain.CastEntry{
			{Person: domain.Person{ID: 1, Name: "Bryan Cranston"}, Character: domain.Character{Name: "Walter White"}},
		},
	}
}

func newRunner(repo *fakeRepo, out *bytes.Buffer) *Runner {
	logger := log.NullLogger()
	return NewRunner(
		service.NewShowService(repo, logger),
		service.NewSearchService(repo, logger),
		Options{Out: out, Width: 80},
		logger,
	)
}

func TestRenderShow(t *testing.T) {
	out := RenderShow(*breakingBad().Show, 80)
	assert.Contains(t, out, "Breaking Bad  ★ 9.3/10")
	assert.Contains(t, out, "Drama, Crime · English · 60 min · premiered 2008-01-20")
	assert.Contains(t, out, "No image")
	assert.Contains(t, out, "making meth.")
}

func TestRenderShowMissingFields(t *testing.T) {
	out := RenderShow(domain.Show{Name: "Unknown", Image: &domain.Image{Original: "http://img/o.jpg"}}, 20)
	assert.Contains(t, out, "No summary available")
	assert.Contains(t, out, "http://img/o.jpg")
	assert.NotContains(t, out, "★")
}

func TestRenderBundle(t *testing.T) {
	b := breakingBad()

	out := RenderBundle(&b, 1, 80)
	assert.Contains(t, out, "Season 1 of 2")
	assert.Contains(t, out, "S01E01  Pilot (58 minutes)")
	assert.Contains(t, out, "S01E02  Cat's in the Bag...")
	assert.NotContains(t, out, "Seven Thirty-Seven")
	assert.Contains(t, out, "Bryan Cranston as Walter White")

	out = RenderBundle(&b, 2, 80)
	assert.Contains(t, out, "Seven Thirty-Seven")
	assert.NotContains(t, out, "Pilot")
}

func TestRenderBundleClampsSeason(t *testing.T) {
	b := breakingBad()
	out := RenderBundle(&b, 7, 80)
	assert.Contains(t, out, "Season 1 of 2")
	assert.Contains(t, out, "Pilot")
}

func TestRenderBundleEmptyLists(t *testing.T) {
	b := domain.ShowBundle{Show: &domain.Show{Name: "Empty"}}
	out := RenderBundle(&b, 1, 80)
	assert.Contains(t, out, "No episodes in this season")
	assert.Contains(t, out, "No cast information")

	assert.Empty(t, RenderBundle(nil, 1, 80))
}

func TestPrintShow(t *testing.T) {
	var out bytes.Buffer
	repo := &fakeRepo{bundle: breakingBad()}

	require.NoError(t, newRunner(repo, &out).PrintShow(context.Background(), 184, 1))
	assert.Contains(t, out.String(), "Breaking Bad")
	assert.Contains(t, out.String(), "Pilot")
}

func TestPrintShowError(t *testing.T) {
	var out bytes.Buffer
	repo := &fakeRepo{bundle: breakingBad(), err: domain.ErrNetwork}

	err := newRunner(repo, &out).PrintShow(context.Background(), 184, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Empty(t, out.String())
}

func TestFind(t *testing.T) {
	results := []domain.SearchResult{
		{Score: 0.9, Show: domain.Show{ID: 179, Name: "The Wire", Premiered: time.Date(2002, 6, 2, 0, 0, 0, 0, time.UTC)}},
		{Score: 0.4, Show: domain.Show{ID: 2, Name: "Wire in the Blood", SummaryText: "A psychologist profiles killers."}},
	}

	var labels []string
	pick := func(n int, label func(int) string, preview func(i, width int) string) (int, error) {
		for i := 0; i < n; i++ {
			labels = append(labels, label(i))
		}
		assert.Contains(t, preview(1, 60), "match 0.40")
		return 1, nil
	}

	var out bytes.Buffer
	err := newRunner(&fakeRepo{results: results}, &out).Find(context.Background(), " wire ", pick)
	require.NoError(t, err)
	assert.Equal(t, []string{"The Wire (2002)", "Wire in the Blood"}, labels)
	assert.Contains(t, out.String(), "A psychologist profiles killers.")
}

func TestFindSingleResultSkipsPicker(t *testing.T) {
	results := []domain.SearchResult{{Score: 1, Show: domain.Show{ID: 1, Name: "Only One"}}}
	pick := func(int, func(int) string, func(int, int) string) (int, error) {
		t.Fatal("picker should not run")
		return 0, nil
	}

	var out bytes.Buffer
	require.NoError(t, newRunner(&fakeRepo{results: results}, &out).Find(context.Background(), "only", pick))
	assert.Contains(t, out.String(), "Only One")
}

func TestFindErrors(t *testing.T) {
	var out bytes.Buffer

	err := newRunner(&fakeRepo{}, &out).Find(context.Background(), "zzqx", nil)
	assert.ErrorIs(t, err, ErrNoResults)

	err = newRunner(&fakeRepo{err: domain.ErrParse}, &out).Find(context.Background(), "wire", nil)
	assert.ErrorIs(t, err, domain.ErrParse)

	results := []domain.SearchResult{{Show: domain.Show{Name: "A"}}, {Show: domain.Show{Name: "B"}}}
	cancel := func(int, func(int) string, func(int, int) string) (int, error) {
		return -1, ErrCancelled
	}
	err = newRunner(&fakeRepo{results: results}, &out).Find(context.Background(), "a", cancel)
	assert.True(t, errors.Is(err, ErrCancelled))
	assert.Empty(t, out.String())
}
