package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmcdole/netfrog/internal/domain"
)

// SearchService runs remote show searches
type SearchService struct {
	repo   domain.SearchRepository
	logger *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(repo domain.SearchRepository, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{
		repo:   repo,
		logger: logger,
	}
}

// NormalizeQuery trims the term; an empty result means there is nothing to search
func NormalizeQuery(query string) string {
	return strings.TrimSpace(query)
}

// Search returns shows matching query in the order the API ranked them. A
// blank query returns no results without touching the network.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	query = NormalizeQuery(query)
	if query == "" {
		return nil, nil
	}

	s.logger.Debug("searching", "query", query)

	results, err := s.repo.SearchShows(ctx, query)
	if err != nil {
		s.logger.Warn("search failed", "query", query, "error", err)
		return nil, err
	}

	s.logger.Debug("search complete", "query", query, "results", len(results))
	return results, nil
}
