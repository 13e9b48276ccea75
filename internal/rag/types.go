package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_deps.go -package=mocks tangerina/internal/rag ChatModel,WebSearcher,Embedder

import "context"

// Citation types distinguish local blog sources from live web sources.
const (
	CitationTypeBlog = "blog"
	CitationTypeWeb  = "web"
)

// Citation is a structured reference extracted from a synthesized answer.
// Exactly one of BlogID or URL is set, matching Type.
type Citation struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
	BlogID  string `json:"blogId,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Candidate is a retrieved blog document with its similarity score.
type Candidate struct {
	BlogID  string  `json:"blogId"`
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	Score   float32 `json:"score"`
}

// AnswerRequest is one question turn entering the pipeline.
// PreviousQuestions carries the user's earlier questions in this session so
// follow-up suggestions avoid repeats.
type AnswerRequest struct {
	Message           string   `json:"message"`
	PreviousQuestions []string `json:"previousQuestions,omitempty"`
}

// AnswerResponse is the structured pipeline output.
type AnswerResponse struct {
	Response    string     `json:"response"`
	Citations   []Citation `json:"citations"`
	References  *string    `json:"references"`
	Suggestions []string   `json:"suggestions"`
}

// ChatModel is the single calling contract used for evaluation, synthesis,
// and suggestion generation; only the prompt templates differ.
type ChatModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// WebSearcher provides formatted web source blocks for a query.
type WebSearcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// Embedder generates embedding vectors for text.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}
