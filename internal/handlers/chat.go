package handlers

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_handlers.go -package=mocks tangerina/internal/handlers AnswerEngine,BlogIndexer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"tangerina/internal/contextutil"
	"tangerina/internal/llm"
	"tangerina/internal/rag"
)

// AnswerEngine runs the question-answering pipeline for one chat turn.
type AnswerEngine interface {
	Answer(ctx context.Context, req rag.AnswerRequest) (*rag.AnswerResponse, error)
}

// ChatHandler handles HTTP requests for chat.
type ChatHandler struct {
	engine AnswerEngine
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(engine AnswerEngine) *ChatHandler {
	return &ChatHandler{engine: engine}
}

// ServeHTTP handles POST /api/chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req rag.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.engine.Answer(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, rag.ErrEmptyQuery):
			writeError(ctx, w, http.StatusBadRequest, "Message is required")
		case errors.Is(err, llm.ErrEmbedding):
			logger.ErrorContext(ctx, "embedding backend failure", "error", err)
			writeError(ctx, w, http.StatusBadGateway, "Failed to process question")
		default:
			logger.ErrorContext(ctx, "chat request failed", "error", err)
			writeError(ctx, w, http.StatusInternalServerError, "Failed to generate response")
		}
		return
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}
