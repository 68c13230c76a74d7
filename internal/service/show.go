package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/netfrog/internal/domain"
)

// ShowService loads everything the detail view needs for one show
type ShowService struct {
	repo   domain.ShowRepository
	logger *slog.Logger
}

// NewShowService creates a new show service
func NewShowService(repo domain.ShowRepository, logger *slog.Logger) *ShowService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShowService{
		repo:   repo,
		logger: logger,
	}
}

// LoadBundle fetches the show, its episodes and its cast concurrently. If any
// of the three fails the whole bundle fails and the others are canceled.
func (s *ShowService) LoadBundle(ctx context.Context, showID int) (*domain.ShowBundle, error) {
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	var bundle domain.ShowBundle
	g.Go(func() error {
		show, err := s.repo.GetShow(ctx, showID)
		bundle.Show = show
		return err
	})
	g.Go(func() error {
		episodes, err := s.repo.GetEpisodes(ctx, showID)
		bundle.Episodes = episodes
		return err
	})
	g.Go(func() error {
		cast, err := s.repo.GetCast(ctx, showID)
		bundle.Cast = cast
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("show load failed", "showID", showID, "error", err, "kind", domain.KindOf(err))
		return nil, err
	}

	s.logger.Debug("show loaded",
		"showID", showID,
		"episodes", len(bundle.Episodes),
		"cast", len(bundle.Cast),
		"elapsed", time.Since(start),
	)
	return &bundle, nil
}
