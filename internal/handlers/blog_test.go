package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"tangerina/internal/handlers/mocks"
	"tangerina/internal/storage"
	storagemocks "tangerina/internal/storage/mocks"
)

func newBlogRouter(handler *BlogHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/blogs", handler.List)
	r.Post("/api/blogs", handler.Create)
	r.Get("/api/blogs/{id}", handler.Get)
	r.Put("/api/blogs/{id}", handler.Update)
	return r
}

func TestBlogHandler_Create(t *testing.T) {
	t.Run("creates and indexes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		blogRepo := storagemocks.NewMockBlogStore(ctrl)
		pipeline := mocks.NewMockBlogIndexer(ctrl)

		var savedID string
		blogRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, blog *storage.BlogRecord) error {
				blog.ID = "generated-id"
				savedID = blog.ID
				return nil
			})
		pipeline.EXPECT().IndexBlog(gomock.Any(), "generated-id").Return(nil)
		blogRepo.EXPECT().GetByID(gomock.Any(), "generated-id").
			DoAndReturn(func(context.Context, string) (*storage.BlogRecord, error) {
				return &storage.BlogRecord{
					ID:        savedID,
					Title:     "Morning Rituals",
					Body:      "<p>Body</p>",
					Embedding: []float32{0.1},
				}, nil
			})

		handler := NewBlogHandler(blogRepo, pipeline)
		req := httptest.NewRequest(http.MethodPost, "/api/blogs",
			strings.NewReader(`{"title":"Morning Rituals","body":"<p>Body</p>","authorName":"Asha"}`))
		rec := httptest.NewRecorder()
		newBlogRouter(handler).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
		}
		var resp BlogResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.ID != "generated-id" || !resp.Indexed {
			t.Errorf("response = %+v", resp)
		}
	})

	t.Run("missing title rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := NewBlogHandler(storagemocks.NewMockBlogStore(ctrl), mocks.NewMockBlogIndexer(ctrl))

		req := httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader(`{"body":"<p>x</p>"}`))
		rec := httptest.NewRecorder()
		newBlogRouter(handler).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("index failure does not lose content", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		blogRepo := storagemocks.NewMockBlogStore(ctrl)
		pipeline := mocks.NewMockBlogIndexer(ctrl)

		blogRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, blog *storage.BlogRecord) error {
				blog.ID = "b1"
				return nil
			})
		pipeline.EXPECT().IndexBlog(gomock.Any(), "b1").Return(errors.New("embedding backend down"))
		blogRepo.EXPECT().GetByID(gomock.Any(), "b1").Return(&storage.BlogRecord{ID: "b1", Title: "T", Body: "B"}, nil)

		handler := NewBlogHandler(blogRepo, pipeline)
		req := httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader(`{"title":"T","body":"B"}`))
		rec := httptest.NewRecorder()
		newBlogRouter(handler).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Errorf("status = %d, want 201 despite index failure", rec.Code)
		}
		var resp BlogResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
		if resp.Indexed {
			t.Error("blog should report unindexed after pipeline failure")
		}
	})
}

func TestBlogHandler_Update(t *testing.T) {
	t.Run("updates existing blog", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		blogRepo := storagemocks.NewMockBlogStore(ctrl)
		pipeline := mocks.NewMockBlogIndexer(ctrl)

		existing := &storage.BlogRecord{ID: "b1", Title: "Old", Body: "old"}
		blogRepo.EXPECT().GetByID(gomock.Any(), "b1").Return(existing, nil)
		blogRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
		pipeline.EXPECT().IndexBlog(gomock.Any(), "b1").Return(nil)
		blogRepo.EXPECT().GetByID(gomock.Any(), "b1").Return(&storage.BlogRecord{ID: "b1", Title: "New", Body: "new"}, nil)

		handler := NewBlogHandler(blogRepo, pipeline)
		req := httptest.NewRequest(http.MethodPut, "/api/blogs/b1", strings.NewReader(`{"title":"New","body":"new"}`))
		rec := httptest.NewRecorder()
		newBlogRouter(handler).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown blog", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		blogRepo := storagemocks.NewMockBlogStore(ctrl)
		blogRepo.EXPECT().GetByID(gomock.Any(), "nope").Return(nil, storage.ErrNotFound)

		handler := NewBlogHandler(blogRepo, mocks.NewMockBlogIndexer(ctrl))
		req := httptest.NewRequest(http.MethodPut, "/api/blogs/nope", strings.NewReader(`{"title":"T","body":"B"}`))
		rec := httptest.NewRecorder()
		newBlogRouter(handler).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestBlogHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	blogRepo := storagemocks.NewMockBlogStore(ctrl)
	blogRepo.EXPECT().GetByID(gomock.Any(), "b1").Return(&storage.BlogRecord{ID: "b1", Title: "T", Body: "B"}, nil)

	handler := NewBlogHandler(blogRepo, mocks.NewMockBlogIndexer(ctrl))
	req := httptest.NewRequest(http.MethodGet, "/api/blogs/b1", nil)
	rec := httptest.NewRecorder()
	newBlogRouter(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp BlogResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "b1" || resp.Title != "T" {
		t.Errorf("response = %+v", resp)
	}
}

func TestBlogHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	blogRepo := storagemocks.NewMockBlogStore(ctrl)
	blogRepo.EXPECT().ListAll(gomock.Any()).Return([]*storage.BlogRecord{
		{ID: "b1", Title: "One"},
		{ID: "b2", Title: "Two"},
	}, nil)

	handler := NewBlogHandler(blogRepo, mocks.NewMockBlogIndexer(ctrl))
	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	rec := httptest.NewRecorder()
	newBlogRouter(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp []BlogResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Errorf("blogs length = %d, want 2", len(resp))
	}
}
