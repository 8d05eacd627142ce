package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	html, err := RenderHTML("# Heading\n\nSome **bold** text")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>bold</strong>")

	// GFM tables
	html, err = RenderHTML("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, html, "<table>")

	// Hard wraps: a single newline becomes a break
	html, err = RenderHTML("line one\nline two")
	require.NoError(t, err)
	assert.Contains(t, html, "<br")
}

func TestPlainPreview(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{"Empty", "", ""},
		{"Link", "see [the rules](https://example.com) here", "see the rules here"},
		{"Image", "![court diagram](https://example.com/c.png)", "court diagram"},
		{"Bold And Italic", "**really** *good* rally", "really good rally"},
		{"Inline Code", "run `go test` locally", "run go test locally"},
		{"Heading", "## Footwork drills\ncontent", "Footwork drills\ncontent"},
		{"List Markers", "- first\n- second", "first\nsecond"},
		{"Blank Lines Collapsed", "a\n\n\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PlainPreview(tt.source, DefaultPreviewLength))
		})
	}
}

func TestPlainPreview_Truncation(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 150)
	got := PlainPreview(long, 100)
	assert.Len(t, got, 103) // 100 runes plus ellipsis
	assert.True(t, strings.HasSuffix(got, "..."))

	// Truncation counts runes, not bytes.
	cjk := strings.Repeat("羽", 120)
	got = PlainPreview(cjk, 100)
	assert.Equal(t, 100, len([]rune(strings.TrimSuffix(got, "..."))))
}
