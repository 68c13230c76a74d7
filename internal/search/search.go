// Package search narrows the loaded episode and cast lists as the user types.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"

	"github.com/mmcdole/netfrog/internal/domain"
)

// EpisodeMatch is an episode that survived the filter
type EpisodeMatch struct {
	Episode        domain.Episode
	Index          int   // position in the unfiltered slice
	MatchedIndexes []int // byte offsets in the lowercased name, for highlighting
}

// CastMatch is a cast entry that survived the filter
type CastMatch struct {
	Entry    domain.CastEntry
	Index    int
	Distance int // lower is closer
}

// episodeIndex implements sahilm/fuzzy.Source over episode names
type episodeIndex struct {
	lowerNames []string
}

// String returns the lowercase name at index i (implements fuzzy.Source)
func (idx episodeIndex) String(i int) string { return idx.lowerNames[i] }

// Len returns the number of episodes (implements fuzzy.Source)
func (idx episodeIndex) Len() int { return len(idx.lowerNames) }

// FilterEpisodes returns the episodes whose name fuzzily matches query, best
// match first. An empty query keeps every episode in its original order.
func FilterEpisodes(query string, episodes []domain.Episode) []EpisodeMatch {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]EpisodeMatch, len(episodes))
		for i, ep := range episodes {
			out[i] = EpisodeMatch{Episode: ep, Index: i}
		}
		return out
	}

	idx := episodeIndex{lowerNames: make([]string, len(episodes))}
	for i, ep := range episodes {
		idx.lowerNames[i] = strings.ToLower(ep.Name)
	}

	matches := sfuzzy.FindFrom(query, idx)
	out := make([]EpisodeMatch, len(matches))
	for i, m := range matches {
		out[i] = EpisodeMatch{
			Episode:        episodes[m.Index],
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
		}
	}
	return out
}

// FilterCast returns the cast entries whose actor or character name contains
// the letters of query in order, closest first. An empty query keeps every
// entry in billing order.
func FilterCast(query string, cast []domain.CastEntry) []CastMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]CastMatch, len(cast))
		for i, c := range cast {
			out[i] = CastMatch{Entry: c, Index: i}
		}
		return out
	}

	var out []CastMatch
	for i, c := range cast {
		dist, ok := castDistance(query, c)
		if !ok {
			continue
		}
		out = append(out, CastMatch{Entry: c, Index: i, Distance: dist})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	return out
}

// castDistance scores the better of the person and character names
func castDistance(query string, c domain.CastEntry) (int, bool) {
	best, found := 0, false
	for _, target := range []string{c.Person.Name, c.Character.Name} {
		if target == "" {
			continue
		}
		d := fuzzy.RankMatchFold(query, target)
		if d < 0 {
			continue
		}
		if !found || d < best {
			best, found = d, true
		}
	}
	return best, found
}
