package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"tangerina/internal/contextutil"
	"tangerina/internal/storage"
)

// BlogIndexer recomputes the embedding for a blog after a content change.
type BlogIndexer interface {
	IndexBlog(ctx context.Context, blogID string) error
}

// BlogHandler handles HTTP requests for blog content management.
type BlogHandler struct {
	blogRepo storage.BlogStore
	pipeline BlogIndexer
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(blogRepo storage.BlogStore, pipeline BlogIndexer) *BlogHandler {
	return &BlogHandler{
		blogRepo: blogRepo,
		pipeline: pipeline,
	}
}

// BlogRequest is the payload for creating or updating a blog.
type BlogRequest struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	AuthorName   string `json:"authorName"`
	AuthorAvatar string `json:"authorAvatar"`
	ReadTime     string `json:"readTime"`
}

// BlogResponse is the API representation of a blog.
type BlogResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Body         string `json:"body"`
	AuthorName   string `json:"authorName"`
	AuthorAvatar string `json:"authorAvatar"`
	ReadTime     string `json:"readTime"`
	Indexed      bool   `json:"indexed"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

func toBlogResponse(blog *storage.BlogRecord) BlogResponse {
	return BlogResponse{
		ID:           blog.ID,
		Title:        blog.Title,
		Body:         blog.Body,
		AuthorName:   blog.AuthorName,
		AuthorAvatar: blog.AuthorAvatar,
		ReadTime:     blog.ReadTime,
		Indexed:      len(blog.Embedding) > 0,
		CreatedAt:    blog.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    blog.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// List handles GET /api/blogs.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	blogs, err := h.blogRepo.ListAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list blogs", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to list blogs")
		return
	}

	resp := make([]BlogResponse, 0, len(blogs))
	for _, blog := range blogs {
		resp = append(resp, toBlogResponse(blog))
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Get handles GET /api/blogs/{id}.
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id := chi.URLParam(r, "id")
	blog, err := h.blogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, "Blog not found")
			return
		}
		logger.ErrorContext(ctx, "failed to get blog", "blog_id", id, "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to get blog")
		return
	}

	writeJSON(ctx, w, http.StatusOK, toBlogResponse(blog))
}

// Create handles POST /api/blogs.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.upsert(w, r, "")
}

// Update handles PUT /api/blogs/{id}.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.upsert(w, r, id)
}

// upsert stores the blog and reindexes its embedding. An indexing failure
// does not lose the content: the blog is saved and picked up again by the
// next full index run via its stale hash.
func (h *BlogHandler) upsert(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req BlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		writeError(ctx, w, http.StatusBadRequest, "Title and body are required")
		return
	}

	if id != "" {
		if _, err := h.blogRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(ctx, w, http.StatusNotFound, "Blog not found")
				return
			}
			logger.ErrorContext(ctx, "failed to check blog", "blog_id", id, "error", err)
			writeError(ctx, w, http.StatusInternalServerError, "Failed to update blog")
			return
		}
	}

	blog := &storage.BlogRecord{
		ID:           id,
		Title:        req.Title,
		Body:         req.Body,
		AuthorName:   req.AuthorName,
		AuthorAvatar: req.AuthorAvatar,
		ReadTime:     req.ReadTime,
	}
	if err := h.blogRepo.Upsert(ctx, blog); err != nil {
		logger.ErrorContext(ctx, "failed to save blog", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to save blog")
		return
	}

	if err := h.pipeline.IndexBlog(ctx, blog.ID); err != nil {
		logger.WarnContext(ctx, "failed to index blog after save", "blog_id", blog.ID, "error", err)
	}

	saved, err := h.blogRepo.GetByID(ctx, blog.ID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to reload blog", "blog_id", blog.ID, "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to save blog")
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	writeJSON(ctx, w, status, toBlogResponse(saved))
}
