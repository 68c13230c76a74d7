package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	FrogGreen  = lipgloss.Color("#7BC043")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Yellow     = lipgloss.Color("#FBBF24")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(FrogGreen)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(FrogGreen)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	RatingStyle = lipgloss.NewStyle().
			Foreground(Yellow)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(FrogGreen).
			Padding(0, 1)

	DimBadgeStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)
)

// Panel styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	ExpandedStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(FrogGreen).
			PaddingLeft(1).
			MarginLeft(2)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(FrogGreen).
			Padding(1, 2)

	ErrorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Padding(1, 3)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(FrogGreen)
)

// Search bar styles
var (
	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(FrogGreen).
				Bold(true)

	SearchTextStyle = lipgloss.NewStyle().
			Foreground(White)
)

// Match highlight styles for filtered lists
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(FrogGreen).
				Bold(true)

	MatchHighlightSelectedStyle = lipgloss.NewStyle().
					Foreground(FrogGreen).
					Background(SlateLight).
					Bold(true)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(FrogGreen)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Helper functions

// Truncate shortens s to width cells, ending in "..." when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		if width > len(runes) {
			return s
		}
		return string(runes[:width])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// WordWrap wraps text to width, keeping existing line breaks
func WordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	paragraphs := strings.Split(text, "\n")
	for p, para := range paragraphs {
		var result strings.Builder
		lineLen := 0
		for _, word := range strings.Fields(para) {
			wordLen := lipgloss.Width(word)
			if lineLen > 0 && lineLen+wordLen+1 > width {
				result.WriteString("\n")
				lineLen = 0
			}
			if lineLen > 0 {
				result.WriteString(" ")
				lineLen++
			}
			result.WriteString(word)
			lineLen += wordLen
		}
		paragraphs[p] = result.String()
	}
	return strings.Join(paragraphs, "\n")
}

// RenderListRow renders a complete list row with uniform background when selected.
// Each part is styled explicitly so ANSI resets do not clear the background.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	bg := SlateLight
	defaultFg := LightGray
	selectedFg := White

	var result strings.Builder
	visibleLen := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		if part.Foreground != nil {
			style = style.Foreground(*part.Foreground)
		} else if selected {
			style = style.Foreground(selectedFg)
		} else {
			style = style.Foreground(defaultFg)
		}
		if part.Bold {
			style = style.Bold(true)
		}
		if selected {
			style = style.Background(bg)
		}
		result.WriteString(style.Render(part.Text))
		visibleLen += lipgloss.Width(part.Text)
	}

	// Fill to width (minus left/right margin)
	paddingNeeded := width - visibleLen - 2
	if paddingNeeded > 0 {
		padStyle := lipgloss.NewStyle()
		if selected {
			padStyle = padStyle.Background(bg)
		}
		result.WriteString(padStyle.Render(strings.Repeat(" ", paddingNeeded)))
	}

	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(bg)
	}
	margin := marginStyle.Render(" ")

	return margin + result.String() + margin
}

// RowPart is one run of text in a list row. A nil Foreground uses the
// row's default color.
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
	Bold       bool
}

// Highlight renders s with the runes at the given byte offsets emphasized
func Highlight(s string, offsets []int, selected bool) string {
	if len(offsets) == 0 {
		return s
	}
	hl := MatchHighlightStyle
	if selected {
		hl = MatchHighlightSelectedStyle
	}
	marked := make(map[int]bool, len(offsets))
	for _, o := range offsets {
		marked[o] = true
	}

	var b strings.Builder
	for i, r := range s {
		if marked[i] {
			b.WriteString(hl.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
