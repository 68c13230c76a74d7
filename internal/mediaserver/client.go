package mediaserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/netfrog/internal/config"
	"github.com/mmcdole/netfrog/internal/domain"
	"github.com/mmcdole/netfrog/internal/mediaserver/tvmaze"
)

// MediaSource is everything the UI needs from a show catalogue: the
// repositories, plus URL-addressed loaders so a view can track each request
// by its locator.
type MediaSource interface {
	domain.ShowRepository   // GetShow, GetEpisodes, GetCast
	domain.SearchRepository // SearchShows

	ShowURL(id int) string
	EpisodesURL(id int) string
	CastURL(id int) string
	SearchURL(query string) string

	ShowAt(ctx context.Context, url string) (*domain.Show, error)
	EpisodesAt(ctx context.Context, url string) ([]domain.Episode, error)
	CastAt(ctx context.Context, url string) ([]domain.CastEntry, error)
	SearchAt(ctx context.Context, url string) ([]domain.SearchResult, error)
}

// NewClient creates the MediaSource described by cfg
func NewClient(cfg *config.Config, logger *slog.Logger) (MediaSource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("api base URL is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return tvmaze.NewClient(cfg.API.BaseURL, cfg.API.UserAgent, cfg.API.Timeout, logger), nil
}
