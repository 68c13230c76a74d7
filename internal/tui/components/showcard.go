package components

import (
	"fmt"
	"strings"

	"github.com/mmcdole/netfrog/internal/domain"
	"github.com/mmcdole/netfrog/internal/tui/styles"
)

// ShowCardOptions controls which parts of the card are drawn
type ShowCardOptions struct {
	Width        int
	SummaryLines int // 0 means the whole summary
	Score        float64
	ShowScore    bool
}

// RenderShowCard renders the header card for a show: title, genres, facts,
// rating and sanitized summary
func RenderShowCard(show domain.Show, opts ShowCardOptions) string {
	inner := max(opts.Width-4, 20)

	var lines []string
	title := styles.TitleStyle.Render(styles.Truncate(show.Name, inner))
	if r := show.FormattedRating(); r != "" {
		title += "  " + styles.RatingStyle.Render("★ "+r)
	}
	lines = append(lines, title)

	if len(show.Genres) > 0 {
		var badges []string
		for _, g := range show.Genres {
			badges = append(badges, styles.DimBadgeStyle.Render(g))
		}
		lines = append(lines, strings.Join(badges, " "))
	}

	var facts []string
	if show.Language != "" {
		facts = append(facts, show.Language)
	}
	if show.Runtime > 0 {
		facts = append(facts, fmt.Sprintf("%d min", show.Runtime))
	}
	if p := show.FormattedPremiered(); p != "" {
		facts = append(facts, "premiered "+p)
	}
	if opts.ShowScore {
		facts = append(facts, fmt.Sprintf("match %.2f", opts.Score))
	}
	if len(facts) > 0 {
		lines = append(lines, styles.SubtitleStyle.Render(strings.Join(facts, " · ")))
	}

	if img := show.Image.Best(); img != "" {
		lines = append(lines, styles.DimStyle.Render(styles.Truncate(img, inner)))
	} else {
		lines = append(lines, styles.DimStyle.Render("No image"))
	}

	lines = append(lines, "")
	summary := show.SummaryText
	if summary == "" {
		summary = "No summary available"
	}
	wrapped := strings.Split(styles.WordWrap(summary, inner), "\n")
	if opts.SummaryLines > 0 && len(wrapped) > opts.SummaryLines {
		wrapped = wrapped[:opts.SummaryLines]
		wrapped[len(wrapped)-1] = styles.Truncate(wrapped[len(wrapped)-1]+" ...", inner)
	}
	lines = append(lines, wrapped...)

	return styles.CardStyle.Width(opts.Width - 2).Render(strings.Join(lines, "\n"))
}

// RenderSeasonTabs renders the season selector with the current season highlighted
func RenderSeasonTabs(seasons []int, current int) string {
	if len(seasons) == 0 {
		return styles.DimStyle.Render("No seasons")
	}
	tabs := make([]string, len(seasons))
	for i, n := range seasons {
		label := fmt.Sprintf("Season %d", n)
		if n == current {
			tabs[i] = styles.BadgeStyle.Render(label)
		} else {
			tabs[i] = styles.DimBadgeStyle.Render(label)
		}
	}
	return strings.Join(tabs, " ")
}
