package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/huh/spinner"

	"github.com/mmcdole/netfrog/internal/domain"
	"github.com/mmcdole/netfrog/internal/service"
)

// Options controls how the non-interactive modes write their output
type Options struct {
	Out   io.Writer
	Width int
	// Spinner draws a progress spinner while requests run. Only set it when
	// the output is a terminal.
	Spinner bool
}

// Runner executes the non-interactive modes
type Runner struct {
	shows  *service.ShowService
	search *service.SearchService
	opts   Options
	logger *slog.Logger
}

// NewRunner creates a runner backed by the given services
func NewRunner(shows *service.ShowService, search *service.SearchService, opts Options, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	return &Runner{
		shows:  shows,
		search: search,
		opts:   opts,
		logger: logger,
	}
}

// PrintShow loads showID and prints its card, the episodes of season and the
// cast. Any failed request fails the whole load.
func (r *Runner) PrintShow(ctx context.Context, showID, season int) error {
	var bundle *domain.ShowBundle
	err := r.withSpinner(ctx, "Loading show...", func(ctx context.Context) error {
		var err error
		bundle, err = r.shows.LoadBundle(ctx, showID)
		return err
	})
	if err != nil {
		return fmt.Errorf("load show %d: %w", showID, err)
	}

	_, err = io.WriteString(r.opts.Out, RenderBundle(bundle, season, r.opts.Width))
	return err
}

// withSpinner runs fn, drawing a spinner titled title when enabled
func (r *Runner) withSpinner(ctx context.Context, title string, fn func(context.Context) error) error {
	if !r.opts.Spinner {
		return fn(ctx)
	}

	var fnErr error
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		fnErr = fn(ctx)
	}()

	// The spinner only waits; fn keeps running if drawing fails
	err := spinner.New().
		Title(title).
		Type(spinner.Dots).
		Context(ctx).
		Action(func() { <-finished }).
		Run()
	if err != nil {
		r.logger.Warn("spinner failed", "error", err)
	}

	<-finished
	return fnErr
}
