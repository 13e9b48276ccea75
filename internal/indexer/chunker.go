package indexer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"tangerina/internal/contextutil"
)

const (
	// ChunkSize is the target window length in runes.
	ChunkSize = 1500
	// ChunkOverlap is the overlap window between adjacent chunks.
	ChunkOverlap = 500
	// MaxChunkSize is the hard per-chunk limit, slightly under the embedding
	// backend's input cap for safety.
	MaxChunkSize = 9000
)

// boundaries are sentence- and paragraph-end tokens, tried in order.
var boundaries = [][]rune{
	[]rune(". "),
	[]rune("! "),
	[]rune("? "),
	[]rune("\n"),
}

var nonKeywordRe = regexp.MustCompile(`[^a-z0-9\s]`)

// ChunkText splits text into overlapping chunks of at most chunkSize runes.
// Each window is trimmed back to the last sentence or paragraph boundary
// found within overlap runes of the window end, so chunks avoid splitting
// mid-sentence; if no boundary lands there, the raw window edge is used.
// A chunk that still exceeds maxChunkSize is truncated with a warning rather
// than rejected. The next window starts overlap runes before the previous
// end, and a remaining tail of at most overlap runes becomes a final chunk
// when non-empty.
func ChunkText(ctx context.Context, text string, chunkSize, overlap, maxChunkSize int) []string {
	logger := contextutil.LoggerFromContext(ctx)

	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0

	for start < len(runes) {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunk := runes[start:end]

		adjustedEnd := end
		for _, boundary := range boundaries {
			last := lastIndexRunes(chunk, boundary)
			if last > chunkSize-overlap {
				adjustedEnd = start + last + len(boundary)
				chunk = runes[start:adjustedEnd]
				break
			}
		}

		if len(chunk) > maxChunkSize {
			logger.WarnContext(ctx, "chunk exceeds max size, truncating",
				"size", len(chunk), "max", maxChunkSize)
			chunk = chunk[:maxChunkSize]
			adjustedEnd = start + maxChunkSize
		}

		chunks = append(chunks, string(chunk))
		start = adjustedEnd - overlap

		if len(runes)-start <= overlap {
			if len(runes)-start > 0 {
				final := runes[start:]
				if len(final) <= maxChunkSize {
					chunks = append(chunks, string(final))
				}
			}
			break
		}
	}

	return chunks
}

// lastIndexRunes returns the index of the last occurrence of sep in s,
// or -1 if sep is not present.
func lastIndexRunes(s, sep []rune) int {
	for i := len(s) - len(sep); i >= 0; i-- {
		match := true
		for j := range sep {
			if s[i+j] != sep[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// Keywords derives a keyword list from a title: lowercased, punctuation
// stripped, words longer than 3 characters, comma-joined.
func Keywords(title string) string {
	lowered := nonKeywordRe.ReplaceAllString(strings.ToLower(title), "")
	var kept []string
	for _, word := range strings.Fields(lowered) {
		if len(word) > 3 {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, ", ")
}

// ErrEmptyContent is returned when a document has no usable text after
// sanitization. Such documents cannot be embedded and are excluded from
// the index.
var ErrEmptyContent = errors.New("no content after sanitization")

// PrepareForEmbedding sanitizes a blog body and splits it into chunks,
// prefixing the first chunk with a metadata header built from the title
// and its derived keywords.
func PrepareForEmbedding(ctx context.Context, title, body string) ([]string, error) {
	clean := Sanitize(body)
	if clean == "" {
		return nil, ErrEmptyContent
	}

	metadata := fmt.Sprintf("Title: %s\nKeywords: %s\n", title, Keywords(title))

	chunks := ChunkText(ctx, clean, ChunkSize, ChunkOverlap, MaxChunkSize)
	if len(chunks) > 0 {
		chunks[0] = metadata + chunks[0]
	}

	for i, chunk := range chunks {
		if len([]rune(chunk)) > MaxChunkSize {
			return nil, fmt.Errorf("chunk %d exceeds size limit: %d > %d", i, len([]rune(chunk)), MaxChunkSize)
		}
	}

	return chunks, nil
}
