package tvmaze

import (
	"time"

	"github.com/pkg/errors"

	"github.com/mmcdole/netfrog/internal/domain"
	"github.com/mmcdole/netfrog/internal/htmltext"
)

const dateLayout = "2006-01-02"

// MapShow converts an API show to a domain show.
// A show without id or name is a parse error.
func MapShow(s Show) (*domain.Show, error) {
	if s.ID <= 0 || s.Name == "" {
		return nil, errors.WithMessagef(domain.ErrParse, "show missing id or name (id=%d)", s.ID)
	}

	show := &domain.Show{
		ID:          s.ID,
		Name:        htmltext.Line(s.Name),
		Language:    htmltext.Line(s.Language),
		URL:         s.URL,
		Premiered:   parseDate(s.Premiered),
		Summary:     s.Summary,
		SummaryText: htmltext.ToText(s.Summary),
		Image:       mapImage(s.Image),
	}

	for _, g := range s.Genres {
		if g = htmltext.Line(g); g != "" {
			show.Genres = append(show.Genres, g)
		}
	}
	if s.Runtime != nil {
		show.Runtime = *s.Runtime
	}
	if s.Rating.Average != nil {
		show.Rating = *s.Rating.Average
	}

	return show, nil
}

// MapEpisodes converts API episodes to domain episodes, preserving order
func MapEpisodes(items []Episode) ([]domain.Episode, error) {
	episodes := make([]domain.Episode, 0, len(items))
	for i, item := range items {
		if item.ID <= 0 {
			return nil, errors.WithMessagef(domain.ErrParse, "episode %d missing id", i)
		}

		ep := domain.Episode{
			ID:          item.ID,
			Season:      item.Season,
			Name:        htmltext.Line(item.Name),
			Summary:     item.Summary,
			SummaryText: htmltext.ToText(item.Summary),
		}
		if item.Number != nil {
			ep.Number = *item.Number
		}
		if item.Runtime != nil {
			ep.Runtime = *item.Runtime
		}
		episodes = append(episodes, ep)
	}
	return episodes, nil
}

// MapCast converts API cast members to domain cast entries
func MapCast(items []CastMember) ([]domain.CastEntry, error) {
	cast := make([]domain.CastEntry, 0, len(items))
	for i, item := range items {
		if item.Person.ID <= 0 {
			return nil, errors.WithMessagef(domain.ErrParse, "cast entry %d missing person id", i)
		}

		cast = append(cast, domain.CastEntry{
			Person: domain.Person{
				ID:       item.Person.ID,
				Name:     htmltext.Line(item.Person.Name),
				Birthday: parseDate(item.Person.Birthday),
				Image:    mapImage(item.Person.Image),
			},
			Character: domain.Character{
				ID:   item.Character.ID,
				Name: htmltext.Line(item.Character.Name),
			},
		})
	}
	return cast, nil
}

// MapSearchHits converts search hits to domain results, preserving API order
func MapSearchHits(hits []SearchHit) ([]domain.SearchResult, error) {
	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		show, err := MapShow(hit.Show)
		if err != nil {
			return nil, err
		}
		results = append(results, domain.SearchResult{Score: hit.Score, Show: *show})
	}
	return results, nil
}

func mapImage(img *Image) *domain.Image {
	if img == nil || (img.Medium == "" && img.Original == "") {
		return nil
	}
	return &domain.Image{Original: img.Original, Medium: img.Medium}
}

// parseDate returns the zero time for empty or malformed dates
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
