package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tangerina/internal/handlers"
	"tangerina/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine      handlers.AnswerEngine
	BlogRepo    storage.BlogStore
	Pipeline    handlers.BlogIndexer
	VectorStore handlers.CollectionChecker
	Collection  string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(180 * time.Second))
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.Engine)
	blogHandler := handlers.NewBlogHandler(deps.BlogRepo, deps.Pipeline)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.Collection)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", blogHandler.List)
			r.Post("/", blogHandler.Create)
			r.Get("/{id}", blogHandler.Get)
			r.Put("/{id}", blogHandler.Update)
		})
	})

	return r
}
