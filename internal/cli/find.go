package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/mmcdole/netfrog/internal/domain"
	"github.com/mmcdole/netfrog/internal/tui/styles"
)

// ErrNoResults is returned by Find when the search matches nothing
var ErrNoResults = errors.New("no results")

// ErrCancelled is returned by Find when the picker is closed without a choice
var ErrCancelled = errors.New("selection cancelled")

// Picker chooses one of n items, labelled by label and described by preview.
// It returns the chosen index.
type Picker func(n int, label func(int) string, preview func(i, width int) string) (int, error)

// FuzzyPicker is the interactive picker backed by go-fuzzyfinder
func FuzzyPicker(n int, label func(int) string, preview func(i, width int) string) (int, error) {
	items := make([]int, n)
	idx, err := fuzzyfinder.Find(
		items,
		label,
		fuzzyfinder.WithPromptString("Select show: "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i < 0 || i >= n {
				return ""
			}
			return preview(i, w)
		}),
	)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return -1, ErrCancelled
	}
	return idx, err
}

// Find searches for query, lets pick choose among the results and prints the
// chosen show's card. A single result is printed without asking.
func (r *Runner) Find(ctx context.Context, query string, pick Picker) error {
	var results []domain.SearchResult
	err := r.withSpinner(ctx, "Searching...", func(ctx context.Context) error {
		var err error
		results, err = r.search.Search(ctx, query)
		return err
	})
	if err != nil {
		return fmt.Errorf("search %q: %w", query, err)
	}
	if len(results) == 0 {
		return fmt.Errorf("search %q: %w", query, ErrNoResults)
	}

	idx := 0
	if len(results) > 1 {
		idx, err = pick(len(results), func(i int) string {
			return ResultLabel(results[i])
		}, func(i, width int) string {
			return ResultPreview(results[i], width)
		})
		if err != nil {
			return err
		}
	}

	chosen := results[idx]
	r.logger.Info("show picked", "query", query, "showID", chosen.Show.ID, "score", chosen.Score)
	_, err = io.WriteString(r.opts.Out, RenderShow(chosen.Show, r.opts.Width))
	return err
}

// ResultLabel is the one-line label for a search result in the picker
func ResultLabel(res domain.SearchResult) string {
	label := res.Show.Name
	if y := res.Show.PremieredYear(); y > 0 {
		label += fmt.Sprintf(" (%d)", y)
	}
	return label
}

// ResultPreview is the preview pane text for a search result
func ResultPreview(res domain.SearchResult, width int) string {
	// The preview border and padding take a few columns
	card := RenderShow(res.Show, width-4)
	return card + "\n" + styles.Truncate(fmt.Sprintf("match %.2f", res.Score), max(width-4, 1))
}
