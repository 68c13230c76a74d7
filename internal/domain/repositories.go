package domain

import (
	"context"
)

// ShowRepository provides read-only access to show metadata
type ShowRepository interface {
	// GetShow returns the show with the given id
	GetShow(ctx context.Context, id int) (*Show, error)

	// GetEpisodes returns every episode of a show, all seasons
	GetEpisodes(ctx context.Context, showID int) ([]Episode, error)

	// GetCast returns the main cast of a show
	GetCast(ctx context.Context, showID int) ([]CastEntry, error)
}

// SearchRepository provides show search
type SearchRepository interface {
	// SearchShows returns shows matching query, ordered by relevance
	SearchShows(ctx context.Context, query string) ([]SearchResult, error)
}
