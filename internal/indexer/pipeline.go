package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks tangerina/internal/indexer Embedder

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"tangerina/internal/contextutil"
	"tangerina/internal/storage"
	"tangerina/internal/vectorstore"
)

// snippetLength bounds the snippet stored as point metadata.
const snippetLength = 200

// Embedder generates embedding vectors for text.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Pipeline orchestrates embedding of blog documents into SQLite and Qdrant.
// One blog document maps to one vector: chunk texts are concatenated back
// together for a single embedding call, so retrieval happens at document
// granularity.
type Pipeline struct {
	blogRepo    storage.BlogStore
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(blogRepo storage.BlogStore, embedder Embedder, vectorStore vectorstore.VectorStore, collection string) *Pipeline {
	return &Pipeline{
		blogRepo:    blogRepo,
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
	}
}

// IndexBlog embeds a single blog by ID.
// Unchanged content (same hash as last indexed) is skipped. Empty content
// after sanitization is a hard failure: the blog is removed from the vector
// index and ErrEmptyContent is returned.
func (p *Pipeline) IndexBlog(ctx context.Context, blogID string) error {
	blog, err := p.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return fmt.Errorf("failed to load blog: %w", err)
	}

	_, err = p.indexRecord(ctx, blog)
	return err
}

// IndexStats summarizes an IndexAll run.
type IndexStats struct {
	Indexed int
	Skipped int
	Failed  int
}

// IndexAll embeds every blog in the store, continuing past per-blog failures.
func (p *Pipeline) IndexAll(ctx context.Context) (IndexStats, error) {
	logger := contextutil.LoggerFromContext(ctx)

	blogs, err := p.blogRepo.ListAll(ctx)
	if err != nil {
		return IndexStats{}, fmt.Errorf("failed to list blogs: %w", err)
	}

	var stats IndexStats
	for _, blog := range blogs {
		indexed, err := p.indexRecord(ctx, blog)
		if err != nil {
			logger.WarnContext(ctx, "failed to index blog", "blog_id", blog.ID, "title", blog.Title, "error", err)
			stats.Failed++
			continue
		}
		if indexed {
			stats.Indexed++
		} else {
			stats.Skipped++
		}
	}

	logger.InfoContext(ctx, "index run completed",
		"indexed", stats.Indexed, "skipped", stats.Skipped, "failed", stats.Failed)
	return stats, nil
}

// indexRecord embeds one blog record. Returns false when the blog was
// skipped because its content hash is unchanged.
func (p *Pipeline) indexRecord(ctx context.Context, blog *storage.BlogRecord) (bool, error) {
	logger := contextutil.LoggerFromContext(ctx)

	hash := contentHash(blog.Title, blog.Body)
	if blog.EmbeddedHash == hash && len(blog.Embedding) > 0 {
		logger.DebugContext(ctx, "skipping unchanged blog", "blog_id", blog.ID, "hash", hash)
		return false, nil
	}

	chunks, err := PrepareForEmbedding(ctx, blog.Title, blog.Body)
	if err != nil {
		if errors.Is(err, ErrEmptyContent) {
			// Blogs with no embeddable content must not stay searchable.
			if delErr := p.vectorStore.Delete(ctx, p.collection, []string{blog.ID}); delErr != nil {
				logger.WarnContext(ctx, "failed to remove empty blog from index", "blog_id", blog.ID, "error", delErr)
			}
		}
		return false, fmt.Errorf("failed to prepare blog %s: %w", blog.ID, err)
	}

	combined := strings.Join(chunks, " ")
	vec, err := p.embedder.EmbedText(ctx, combined)
	if err != nil {
		return false, fmt.Errorf("failed to embed blog %s: %w", blog.ID, err)
	}

	if err := p.blogRepo.UpdateEmbedding(ctx, blog.ID, vec, hash); err != nil {
		return false, fmt.Errorf("failed to store embedding for blog %s: %w", blog.ID, err)
	}

	point := vectorstore.Point{
		ID:  blog.ID,
		Vec: vec,
		Meta: map[string]any{
			"title":   blog.Title,
			"snippet": Snippet(Sanitize(blog.Body), snippetLength),
		},
	}
	if err := p.vectorStore.Upsert(ctx, p.collection, []vectorstore.Point{point}); err != nil {
		return false, fmt.Errorf("failed to upsert vector for blog %s: %w", blog.ID, err)
	}

	logger.InfoContext(ctx, "indexed blog", "blog_id", blog.ID, "title", blog.Title, "chunks", len(chunks))
	return true, nil
}

// contentHash fingerprints the embeddable fields of a blog. The embedding is
// recomputed whenever title or body changes.
func contentHash(title, body string) string {
	sum := sha256.Sum256([]byte(title + "\x00" + body))
	return fmt.Sprintf("%x", sum)
}
