package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Breaking Bad", 20, "Breaking Bad"},
		{"Breaking Bad", 8, "Break..."},
		{"Breaking Bad", 3, "Bre"},
		{"Breaking Bad", 0, ""},
		{"Señor Ávila", 8, "Señor..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.width), "%q/%d", tt.in, tt.width)
	}
}

func TestWordWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree", WordWrap("one two three", 8))
	assert.Equal(t, "first\n\nsecond", WordWrap("first\n\nsecond", 20))
	assert.Equal(t, "as is", WordWrap("as is", 0))
}

func TestHighlightKeepsText(t *testing.T) {
	assert.Equal(t, "Pilot", Highlight("Pilot", nil, false))
	assert.Contains(t, Highlight("Pilot", []int{0}, false), "ilot")
}
