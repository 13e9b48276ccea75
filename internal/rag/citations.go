package rag

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"tangerina/internal/contextutil"
)

// referencesMarker splits the answer body from its references section.
const referencesMarker = "References:"

var (
	webRefRe  = regexp.MustCompile(`^\[(\d+)\]\s*(.+?)\s*-\s*(https?://\S+)$`)
	blogRefRe = regexp.MustCompile(`^\[(\d+)\]\s*(.+)$`)
)

// ExtractCitations parses a synthesized answer into its body text, raw
// references section, and structured citation list.
//
// Each reference line is tried against two patterns in priority order: a web
// reference carrying a URL, then a blog reference resolved against sources.
// Blog resolution is positional first (reference number n maps to sources
// slot n-1, accepted when the slot holds a well-formed document id) and falls
// back to case-insensitive title matching, since either numbering scheme may
// appear depending on the active prompt variant. A line that resolves neither
// way is dropped with a warning rather than failing the answer. Citations are
// deduplicated by URL or blog id.
func ExtractCitations(ctx context.Context, answerText string, sources []Candidate) (body string, references *string, citations []Citation) {
	logger := contextutil.LoggerFromContext(ctx)

	citations = make([]Citation, 0)

	idx := strings.Index(answerText, referencesMarker)
	if idx < 0 {
		return strings.TrimSpace(answerText), nil, citations
	}

	body = strings.TrimSpace(answerText[:idx])
	refsSection := strings.TrimSpace(answerText[idx+len(referencesMarker):])
	references = &refsSection

	seenURLs := make(map[string]bool)
	seenBlogIDs := make(map[string]bool)

	for _, line := range strings.Split(refsSection, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := webRefRe.FindStringSubmatch(line); m != nil {
			url := m[3]
			if seenURLs[url] {
				continue
			}
			seenURLs[url] = true
			citations = append(citations, Citation{
				Type:  CitationTypeWeb,
				Title: m[2],
				URL:   url,
			})
			continue
		}

		m := blogRefRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		title := strings.TrimSpace(m[2])

		source, ok := resolveBlogSource(n, title, sources)
		if !ok {
			logger.WarnContext(ctx, "dropping unresolvable blog reference", "line", line, "sources", len(sources))
			continue
		}
		if seenBlogIDs[source.BlogID] {
			continue
		}
		seenBlogIDs[source.BlogID] = true
		citations = append(citations, Citation{
			Type:    CitationTypeBlog,
			Title:   title,
			Content: source.Snippet,
			BlogID:  source.BlogID,
		})
	}

	return body, references, citations
}

// resolveBlogSource maps a reference number and title back to a retrieved
// candidate. Position wins when the numbered slot exists and holds a
// well-formed id; otherwise the title is matched case-insensitively.
func resolveBlogSource(n int, title string, sources []Candidate) (Candidate, bool) {
	if n >= 1 && n <= len(sources) {
		source := sources[n-1]
		if source.BlogID != "" {
			if _, err := uuid.Parse(source.BlogID); err == nil {
				return source, true
			}
		}
	}

	for _, source := range sources {
		if source.BlogID != "" && strings.EqualFold(strings.TrimSpace(source.Title), title) {
			return source, true
		}
	}

	return Candidate{}, false
}
