package rag

import (
	"context"
	"fmt"
	"strings"

	"tangerina/internal/contextutil"
	"tangerina/internal/indexer"
	"tangerina/internal/vectorstore"
)

// Retriever embeds a query and runs a similarity search over the blog index.
type Retriever struct {
	embedder      Embedder
	vectorStore   vectorstore.VectorStore
	collection    string
	k             int
	numCandidates int
}

// NewRetriever creates a retriever over the given collection.
// numCandidates widens the ANN candidate pool scanned before truncation to k.
func NewRetriever(embedder Embedder, vectorStore vectorstore.VectorStore, collection string, k, numCandidates int) *Retriever {
	return &Retriever{
		embedder:      embedder,
		vectorStore:   vectorStore,
		collection:    collection,
		k:             k,
		numCandidates: numCandidates,
	}
}

// EnrichQuery restates a question with the same title/keyword framing used
// when documents were embedded, which improves recall against those vectors.
func EnrichQuery(query string) string {
	return fmt.Sprintf("Title: %s\nKeywords: %s\n%s", query, indexer.Keywords(query), query)
}

// Retrieve returns the top candidates for a query, ordered by descending
// similarity score.
//
// An embedding failure propagates: without a query vector there is nothing
// to search. A retrieval backend failure degrades to an empty candidate
// list instead, so the pipeline can continue with "no local context".
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]Candidate, error) {
	logger := contextutil.LoggerFromContext(ctx)

	vec, err := r.embedder.EmbedText(ctx, EnrichQuery(query))
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := r.vectorStore.Search(ctx, r.collection, vec, r.k, r.numCandidates)
	if err != nil {
		logger.WarnContext(ctx, "retrieval failed, continuing without local context", "error", err)
		return nil, nil
	}

	candidates := make([]Candidate, 0, len(results))
	for _, result := range results {
		candidates = append(candidates, Candidate{
			BlogID:  result.PointID,
			Title:   metaString(result.Meta, "title"),
			Snippet: metaString(result.Meta, "snippet"),
			Score:   result.Score,
		})
	}

	return candidates, nil
}

// FormatBlogBlocks renders candidates as numbered source blocks for the
// evaluator and synthesizer prompts. Order matters: citation numbering in
// the synthesized answer is positional against this list.
func FormatBlogBlocks(candidates []Candidate) []string {
	blocks := make([]string, 0, len(candidates))
	for i, c := range candidates {
		var b strings.Builder
		fmt.Fprintf(&b, "[%d] %s\n", i+1, c.Title)
		if c.Snippet != "" {
			b.WriteString(c.Snippet)
			b.WriteString("\n")
		}
		blocks = append(blocks, b.String())
	}
	return blocks
}

func metaString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	if s, ok := meta[key].(string); ok {
		return s
	}
	return ""
}
