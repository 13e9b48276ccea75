package rag

import (
	"context"
	"fmt"
	"strings"

	"tangerina/internal/contextutil"
)

// Evaluation outcomes. Insufficient is the fail-safe: any unexpected model
// output or call failure resolves to it, so the pipeline errs toward doing
// more work rather than answering from thin context.
const (
	Sufficient   = "SUFFICIENT"
	Insufficient = "INSUFFICIENT"
)

const evaluatePromptTemplate = `You are Tangerina, an Ayurvedic expert with both deep scientific knowledge and generations of traditional wisdom.
While your approach is warm and caring, your primary focus is on providing precise, well-researched information.

Query: %s

Blog results:
%s

Your task is to determine if these results contain sufficiently accurate and comprehensive information.
Consider with utmost rigor:
1. Scientific accuracy and authenticity of Ayurvedic principles
2. Depth and completeness of technical information
3. Presence of verifiable traditional knowledge
4. Clinical relevance and practical applicability

Return only "SUFFICIENT" if the results provide thorough, accurate information, or "INSUFFICIENT" if more authoritative sources are needed.`

// evaluateSufficiency decides whether local blog context is enough to answer
// the query, or whether the web search fallback must run. This is the sole
// gate on that escalation.
func evaluateSufficiency(ctx context.Context, model ChatModel, query string, blogResults []string) string {
	logger := contextutil.LoggerFromContext(ctx)

	prompt := fmt.Sprintf(evaluatePromptTemplate, query, strings.Join(blogResults, "\n"))

	result, err := model.Complete(ctx, prompt)
	if err != nil {
		logger.WarnContext(ctx, "sufficiency evaluation failed, escalating to web search", "error", err)
		return Insufficient
	}

	result = strings.TrimSpace(result)
	if result != Sufficient && result != Insufficient {
		logger.WarnContext(ctx, "unexpected evaluation result, escalating to web search", "result", result)
		return Insufficient
	}

	return result
}
