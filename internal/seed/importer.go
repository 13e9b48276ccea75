// Package seed imports starter blog content from JSON files so a fresh
// deployment has something to retrieve against.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tangerina/internal/contextutil"
	"tangerina/internal/storage"
)

// blogEntry is the on-disk seed format.
type blogEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      struct {
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
	} `json:"author"`
	ReadTime string `json:"readTime"`
}

// Importer loads seed blogs into the blog store.
type Importer struct {
	blogRepo storage.BlogStore
	dir      string
}

// NewImporter creates an importer reading .json files from dir.
func NewImporter(blogRepo storage.BlogStore, dir string) *Importer {
	return &Importer{blogRepo: blogRepo, dir: dir}
}

// Import loads every .json file in the seed directory. Each file holds one
// blog object or an array of them. Blogs whose title already exists are
// skipped, so repeated startups do not duplicate content. Returns the number
// of blogs imported.
func (im *Importer) Import(ctx context.Context) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	entries, err := os.ReadDir(im.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed directory: %w", err)
	}

	existing, err := im.existingTitles(ctx)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(im.dir, entry.Name())
		blogs, err := loadFile(path)
		if err != nil {
			logger.WarnContext(ctx, "skipping unreadable seed file", "path", path, "error", err)
			continue
		}

		for _, blog := range blogs {
			if blog.Title == "" || blog.Description == "" {
				logger.WarnContext(ctx, "skipping incomplete seed blog", "path", path, "title", blog.Title)
				continue
			}
			if existing[strings.ToLower(blog.Title)] {
				continue
			}

			record := &storage.BlogRecord{
				Title:        blog.Title,
				Body:         blog.Description,
				AuthorName:   blog.Author.Name,
				AuthorAvatar: blog.Author.Avatar,
				ReadTime:     blog.ReadTime,
			}
			if err := im.blogRepo.Upsert(ctx, record); err != nil {
				return imported, fmt.Errorf("failed to import seed blog %q: %w", blog.Title, err)
			}
			existing[strings.ToLower(blog.Title)] = true
			imported++
		}
	}

	logger.InfoContext(ctx, "seed import completed", "dir", im.dir, "imported", imported)
	return imported, nil
}

// existingTitles returns the lowercase titles already in the store.
func (im *Importer) existingTitles(ctx context.Context) (map[string]bool, error) {
	blogs, err := im.blogRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing blogs: %w", err)
	}
	titles := make(map[string]bool, len(blogs))
	for _, blog := range blogs {
		titles[strings.ToLower(blog.Title)] = true
	}
	return titles, nil
}

// loadFile decodes a seed file holding one blog or an array of blogs.
func loadFile(path string) ([]blogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var many []blogEntry
	if err := json.Unmarshal(data, &many); err == nil {
		return many, nil
	}

	var one blogEntry
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("not a blog object or array: %w", err)
	}
	return []blogEntry{one}, nil
}
