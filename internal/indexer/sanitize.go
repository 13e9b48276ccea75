package indexer

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	multiNewlineRe = regexp.MustCompile(`\n\s*\n`)
	horizSpaceRe   = regexp.MustCompile(`[ \t]+`)
)

// Sanitize converts rich-text blog markup to plain text.
// Block-level elements become newline or bullet equivalents before the
// remaining tags are stripped, then whitespace is collapsed while paragraph
// breaks are preserved. Running Sanitize over its own output is a no-op, so
// already-plain bodies pass through unchanged.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(raw))

	z := html.NewTokenizer(strings.NewReader(raw))
	skipDepth := 0

loop:
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or malformed markup; emit what we have
			break loop
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				if tt == html.StartTagToken {
					skipDepth++
				}
			case "br":
				b.WriteString("\n")
			case "li":
				b.WriteString("• ")
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				if skipDepth > 0 {
					skipDepth--
				}
			case "p":
				b.WriteString("\n\n")
			case "li":
				b.WriteString("\n")
			case "h1", "h2", "h3", "h4", "h5", "h6":
				b.WriteString("\n\n")
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Text())
			}
		}
	}

	return normalizeWhitespace(b.String())
}

// normalizeWhitespace collapses repeated blank lines to a single paragraph
// break and runs of horizontal whitespace to a single space.
func normalizeWhitespace(s string) string {
	s = multiNewlineRe.ReplaceAllString(s, "\n\n")
	s = horizSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Snippet returns the first n runes of text, used as retrieval metadata.
func Snippet(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
