// Package cli implements the non-interactive modes: printing the configured
// show to stdout and picking a search result with a fuzzy finder.
package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mmcdole/netfrog/internal/domain"
	"github.com/mmcdole/netfrog/internal/tui/styles"
)

// MinWidth is the narrowest wrap width used for printed output
const MinWidth = 40

// RenderShow renders the plain-text card for a show: title, facts and summary
func RenderShow(show domain.Show, width int) string {
	width = max(width, MinWidth)

	var b strings.Builder
	b.WriteString(show.Name)
	if r := show.FormattedRating(); r != "" {
		b.WriteString("  ★ " + r)
	}
	b.WriteString("\n")

	var facts []string
	if g := show.GenreList(); g != "" {
		facts = append(facts, g)
	}
	if show.Language != "" {
		facts = append(facts, show.Language)
	}
	if show.Runtime > 0 {
		facts = append(facts, fmt.Sprintf("%d min", show.Runtime))
	}
	if p := show.FormattedPremiered(); p != "" {
		facts = append(facts, "premiered "+p)
	}
	if len(facts) > 0 {
		b.WriteString(strings.Join(facts, " · ") + "\n")
	}

	if img := show.Image.Best(); img != "" {
		b.WriteString(img + "\n")
	} else {
		b.WriteString("No image\n")
	}

	summary := show.SummaryText
	if summary == "" {
		summary = "No summary available"
	}
	b.WriteString("\n" + styles.WordWrap(summary, width) + "\n")
	return b.String()
}

// RenderBundle renders the show card followed by the episodes of season and
// the cast. A season with no episodes falls back to the first one that has any.
func RenderBundle(bundle *domain.ShowBundle, season, width int) string {
	if bundle == nil || bundle.Show == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(RenderShow(*bundle.Show, width))

	seasons := domain.Seasons(bundle.Episodes)
	if len(seasons) > 0 && !slices.Contains(seasons, season) {
		season = seasons[0]
	}

	episodes := domain.EpisodesInSeason(bundle.Episodes, season)
	b.WriteString(fmt.Sprintf("\nSeason %d", season))
	if len(seasons) > 1 {
		b.WriteString(fmt.Sprintf(" of %d", len(seasons)))
	}
	b.WriteString("\n")
	if len(episodes) == 0 {
		b.WriteString("  No episodes in this season\n")
	}
	for _, ep := range episodes {
		line := "  " + ep.EpisodeCode() + "  " + ep.Name
		if rt := ep.FormattedRuntime(); rt != "" {
			line += " (" + rt + ")"
		}
		b.WriteString(styles.Truncate(line, max(width, MinWidth)) + "\n")
	}

	b.WriteString("\nCast\n")
	if len(bundle.Cast) == 0 {
		b.WriteString("  No cast information\n")
	}
	for _, c := range bundle.Cast {
		line := "  " + c.Person.Name
		if c.Character.Name != "" {
			line += " as " + c.Character.Name
		}
		b.WriteString(styles.Truncate(line, max(width, MinWidth)) + "\n")
	}

	return b.String()
}
