// Package markdown renders post content to HTML and extracts plain-text
// previews for list views.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md mirrors the forum's authoring conventions: fenced code blocks,
// tables, and newline-to-break so single newlines show as line breaks.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// RenderHTML converts Markdown source to HTML.
func RenderHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DefaultPreviewLength is how many characters of plain text a list view shows.
const DefaultPreviewLength = 100

var (
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\([^\)]+\)`)
	imageRe      = regexp.MustCompile(`!\[([^\]]*)\]\([^\)]+\)`)
	boldRe       = regexp.MustCompile(`\*\*([^\*]+)\*\*`)
	italicRe     = regexp.MustCompile(`\*([^\*]+)\*`)
	inlineCodeRe = regexp.MustCompile("`([^`]+)`")
	headingRe    = regexp.MustCompile(`(?m)^#+\s+`)
	listMarkerRe = regexp.MustCompile(`(?m)^[\-\*\+]\s+`)
	blankLinesRe = regexp.MustCompile(`\n\s*\n`)
)

// PlainPreview strips Markdown syntax from the source and truncates the
// remaining text to maxLength runes, appending an ellipsis when cut.
func PlainPreview(source string, maxLength int) string {
	if source == "" {
		return ""
	}

	text := imageRe.ReplaceAllString(source, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	text = boldRe.ReplaceAllString(text, "$1")
	// Bold pairs are gone, so any remaining single asterisks are italics.
	text = italicRe.ReplaceAllString(text, "$1")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = headingRe.ReplaceAllString(text, "")
	text = listMarkerRe.ReplaceAllString(text, "")
	text = blankLinesRe.ReplaceAllString(text, "\n")
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) > maxLength {
		return string(runes[:maxLength]) + "..."
	}
	return text
}
