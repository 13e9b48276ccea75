package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_blog_store.go -package=mocks tangerina/internal/storage BlogStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// BlogStore defines the interface for blog storage operations.
type BlogStore interface {
	// ListAll returns all blogs ordered by creation time.
	ListAll(ctx context.Context) ([]*BlogRecord, error)
	// GetByID gets a blog by its ID. Returns nil and ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*BlogRecord, error)
	// Upsert inserts a new blog or updates title/body/author fields of an existing one.
	Upsert(ctx context.Context, blog *BlogRecord) error
	// UpdateEmbedding atomically replaces the stored embedding and content hash
	// for a blog. A single UPDATE, so readers never observe a half-written vector.
	UpdateEmbedding(ctx context.Context, id string, embedding []float32, hash string) error
}

// BlogRepo provides methods for blog operations.
// It implements the BlogStore interface.
type BlogRepo struct {
	db *sql.DB
}

// NewBlogRepo creates a new BlogRepo.
func NewBlogRepo(db *sql.DB) *BlogRepo {
	return &BlogRepo{db: db}
}

const blogColumns = "id, title, body, author_name, author_avatar, read_time, embedding, embedded_hash, created_at, updated_at"

// ListAll returns all blogs ordered by creation time.
func (r *BlogRepo) ListAll(ctx context.Context) ([]*BlogRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+blogColumns+" FROM blogs ORDER BY created_at",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query blogs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var blogs []*BlogRecord
	for rows.Next() {
		blog, err := scanBlog(rows.Scan)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return blogs, nil
}

// GetByID gets a blog by its ID. Returns nil and ErrNotFound if not found.
func (r *BlogRepo) GetByID(ctx context.Context, id string) (*BlogRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+blogColumns+" FROM blogs WHERE id = ?", id,
	)

	blog, err := scanBlog(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return blog, nil
}

// Upsert inserts a new blog or updates an existing one.
// Generates a UUID for new blogs; updating content clears nothing here —
// the indexing pipeline detects stale embeddings via the content hash.
func (r *BlogRepo) Upsert(ctx context.Context, blog *BlogRecord) error {
	if blog.ID == "" {
		blog.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO blogs (id, title, body, author_name, author_avatar, read_time, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		 ON CONFLICT (id) DO UPDATE SET
		 title = excluded.title, body = excluded.body, author_name = excluded.author_name,
		 author_avatar = excluded.author_avatar, read_time = excluded.read_time,
		 updated_at = CURRENT_TIMESTAMP`,
		blog.ID, blog.Title, blog.Body, blog.AuthorName, blog.AuthorAvatar, blog.ReadTime,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert blog: %w", err)
	}

	return nil
}

// UpdateEmbedding atomically replaces the stored embedding and content hash for a blog.
func (r *BlogRepo) UpdateEmbedding(ctx context.Context, id string, embedding []float32, hash string) error {
	encoded, err := json.Marshal(embedding)
	if err != nil {
		return fmt.Errorf("failed to encode embedding: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE blogs SET embedding = ?, embedded_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		string(encoded), hash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update embedding: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// scanBlog scans a blog row using the provided scan function.
func scanBlog(scan func(dest ...any) error) (*BlogRecord, error) {
	var blog BlogRecord
	var embedding sql.NullString
	var createdAtStr, updatedAtStr string

	err := scan(
		&blog.ID, &blog.Title, &blog.Body, &blog.AuthorName, &blog.AuthorAvatar,
		&blog.ReadTime, &embedding, &blog.EmbeddedHash, &createdAtStr, &updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan blog: %w", err)
	}

	if embedding.Valid && embedding.String != "" {
		if err := json.Unmarshal([]byte(embedding.String), &blog.Embedding); err != nil {
			return nil, fmt.Errorf("failed to decode embedding: %w", err)
		}
	}

	blog.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	blog.UpdatedAt, err = parseTimestamp(updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
	}

	return &blog, nil
}

// parseTimestamp parses a SQLite DATETIME string.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	// SQLite might use an alternative format
	return time.Parse(time.RFC3339, s)
}
