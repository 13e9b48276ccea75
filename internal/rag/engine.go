package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tangerina/internal/contextutil"
	"tangerina/internal/websearch"
)

// ErrEmptyQuery is returned for blank questions.
var ErrEmptyQuery = errors.New("query cannot be empty")

// Engine runs the full question-answering pipeline: retrieve local context,
// judge its sufficiency, optionally escalate to web search, synthesize an
// answer with citations, parse them back out, and suggest follow-ups.
//
// Degrade-vs-propagate is decided per stage: embedding failures propagate
// (an answer without retrieval context would be ungrounded), while web
// search and suggestions degrade since they only enhance the answer.
type Engine struct {
	retriever   *Retriever
	model       ChatModel
	webSearcher WebSearcher
}

// NewEngine creates a new answer engine.
func NewEngine(retriever *Retriever, model ChatModel, webSearcher WebSearcher) *Engine {
	return &Engine{
		retriever:   retriever,
		model:       model,
		webSearcher: webSearcher,
	}
}

// Answer processes one question turn and returns the structured response.
func (e *Engine) Answer(ctx context.Context, req AnswerRequest) (*AnswerResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	query := strings.TrimSpace(req.Message)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	candidates, err := e.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}
	blogBlocks := FormatBlogBlocks(candidates)

	evaluation := evaluateSufficiency(ctx, e.model, query, blogBlocks)

	webResults := ""
	if evaluation == Insufficient {
		webResults, err = e.runWebSearch(ctx, query)
		if err != nil {
			// Degrade to local-only synthesis rather than failing the turn.
			logger.WarnContext(ctx, "web search fallback degraded", "error", err)
			webResults = ""
		}
	}

	answer := synthesizeAnswer(ctx, e.model, query, blogBlocks, webResults)
	body, references, citations := ExtractCitations(ctx, answer, candidates)
	suggestions := generateSuggestions(ctx, e.model, query, answer, req.PreviousQuestions)

	logger.InfoContext(ctx, "answer generated",
		"query", query,
		"candidates", len(candidates),
		"evaluation", evaluation,
		"web_search", webResults != "",
		"citations", len(citations))

	return &AnswerResponse{
		Response:    body,
		Citations:   citations,
		References:  references,
		Suggestions: suggestions,
	}, nil
}

// runWebSearch escalates to the web search fallback. An unconfigured search
// backend is expected in some deployments and logged at info level only.
func (e *Engine) runWebSearch(ctx context.Context, query string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	results, err := e.webSearcher.Search(ctx, query)
	if err != nil {
		if errors.Is(err, websearch.ErrNotConfigured) {
			logger.InfoContext(ctx, "web search not configured, answering from local context only")
			return "", nil
		}
		return "", err
	}
	return results, nil
}
