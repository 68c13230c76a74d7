package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Image holds poster URLs for a show or person
type Image struct {
	Original string
	Medium   string
}

// Best returns the medium rendition when there is one, otherwise the original
func (i *Image) Best() string {
	if i == nil {
		return ""
	}
	if i.Medium != "" {
		return i.Medium
	}
	return i.Original
}

// Show represents a TV series as returned by /shows/{id} or inside a search result
type Show struct {
	ID        int
	Name      string
	Genres    []string
	Language  string
	Runtime   int       // Minutes; 0 when unknown
	Premiered time.Time // Zero when unknown
	Rating    float64   // Average rating (0-10); 0 when unrated
	URL       string    // TVMaze page for the show

	// Summary is the raw HTML as sent by the API. Never render it directly;
	// SummaryText holds the sanitized plain text.
	Summary     string
	SummaryText string

	Image *Image // nil when the API has no artwork
}

// GenreList returns the genres joined for display
func (s Show) GenreList() string {
	return strings.Join(s.Genres, ", ")
}

// PremieredYear returns the premiere year (0 if unknown)
func (s Show) PremieredYear() int {
	if s.Premiered.IsZero() {
		return 0
	}
	return s.Premiered.Year()
}

// FormattedPremiered returns the premiere date as YYYY-MM-DD, or "" if unknown
func (s Show) FormattedPremiered() string {
	if s.Premiered.IsZero() {
		return ""
	}
	return s.Premiered.Format("2006-01-02")
}

// FormattedRating returns the rating as "9.3/10", or "" if unrated
func (s Show) FormattedRating() string {
	if s.Rating <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f/10", s.Rating)
}

// Episode represents a single episode of a show
type Episode struct {
	ID          int
	Season      int
	Number      int // 0 for specials without a number
	Name        string
	Runtime     int // Minutes
	Summary     string
	SummaryText string
}

// EpisodeCode returns the formatted episode code (e.g., "S01E05")
func (e Episode) EpisodeCode() string {
	if e.Number == 0 {
		return fmt.Sprintf("S%02d Special", e.Season)
	}
	return fmt.Sprintf("S%02dE%02d", e.Season, e.Number)
}

// FormattedRuntime returns the runtime in minutes, or "" if unknown
func (e Episode) FormattedRuntime() string {
	if e.Runtime <= 0 {
		return ""
	}
	return fmt.Sprintf("%d minutes", e.Runtime)
}

// Person is a cast member's real-world identity
type Person struct {
	ID       int
	Name     string
	Birthday time.Time // Zero when unknown
	Image    *Image
}

// FormattedBirthday returns the birthday as YYYY-MM-DD, or "unknown"
func (p Person) FormattedBirthday() string {
	if p.Birthday.IsZero() {
		return "unknown"
	}
	return p.Birthday.Format("2006-01-02")
}

// Character is the role a person plays
type Character struct {
	ID   int
	Name string
}

// CastEntry pairs a person with the character they play. Keyed by Person.ID.
type CastEntry struct {
	Person    Person
	Character Character
}

// SearchResult is one hit from /search/shows
type SearchResult struct {
	Score float64 // Relevance as reported by TVMaze
	Show  Show
}

// ShowBundle is everything the detail view needs for the configured show
type ShowBundle struct {
	Show     *Show
	Episodes []Episode
	Cast     []CastEntry
}

// EpisodesInSeason returns the episodes whose season equals n, in original order
func EpisodesInSeason(episodes []Episode, n int) []Episode {
	var out []Episode
	for _, ep := range episodes {
		if ep.Season == n {
			out = append(out, ep)
		}
	}
	return out
}

// Seasons returns the distinct season numbers present in episodes, ascending
func Seasons(episodes []Episode) []int {
	seen := make(map[int]bool)
	var seasons []int
	for _, ep := range episodes {
		if !seen[ep.Season] {
			seen[ep.Season] = true
			seasons = append(seasons, ep.Season)
		}
	}
	sort.Ints(seasons)
	return seasons
}
