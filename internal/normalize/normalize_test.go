package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescription_PlainTextUnchanged(t *testing.T) {
	assert.Equal(t, "A quiet winter scene.", Description("  A quiet winter scene. "))
}

func TestDescription_ConvertsHTML(t *testing.T) {
	got := Description("<p>A <strong>bold</strong> composition in oil.</p>")

	assert.NotContains(t, got, "<p>")
	assert.Contains(t, got, "**bold**")
	assert.Contains(t, got, "composition in oil")
}

func TestDescription_AngleBracketsWithoutTags(t *testing.T) {
	// Math-ish text must not be treated as HTML.
	input := "priced < 500 but > 100"
	assert.Equal(t, input, Description(input))
}

func TestDescription_StripsNullBytes(t *testing.T) {
	assert.Equal(t, "clean", Description("cle\x00an"))
}

func TestDimensions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unit suffix", "24 x 36 in", "24 x 36"},
		{"unit with dot", "24 x 36 cm.", "24 x 36"},
		{"multiplication sign", "12 × 8", "12 × 8"},
		{"whitespace runs", "  24   x  36 ", "24 x 36"},
		{"empty", "", ""},
		{"garbage passes through", "large-ish", "large-ish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dimensions(tt.input))
		})
	}
}
