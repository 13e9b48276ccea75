package storage

import "time"

// BlogRecord represents a blog post in the database.
// Title and body are owned by the content-management side; the embedding and
// embedded hash are derived columns written back by the indexing pipeline.
type BlogRecord struct {
	ID           string    // UUID (same as Qdrant point ID)
	Title        string
	Body         string    // Rich-text (HTML) body as authored
	AuthorName   string
	AuthorAvatar string
	ReadTime     string
	Embedding    []float32 // Derived document embedding, nil until indexed
	EmbeddedHash string    // SHA256 hex of title+body at the time of embedding
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
