package rag

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"tangerina/internal/contextutil"
)

const suggestionCount = 3

const suggestPromptTemplate = `You are an intelligent Ayurvedic expert assistant helping users explore topics deeply.

Current query: %s

Your response: %s

Previous questions asked: %s

Generate exactly 3 insightful follow-up questions that would help the user:
1. Dive deeper into specific aspects mentioned in your answer
2. Explore related Ayurvedic concepts that weren't fully covered
3. Connect the topic to practical, everyday applications

Rules:
- Questions must be directly related to Ayurveda and holistic health
- Avoid repeating previously asked questions
- Make questions specific and focused
- Format them as a numbered list (1., 2., 3.)
- Each question should start with words like "How", "What", "Why", "Can you explain"

Return ONLY the numbered questions, nothing else.`

var listNumberRe = regexp.MustCompile(`^\d+\.\s*`)

// genericSuggestions pads the list when the model returns fewer than 3
// usable questions.
var genericSuggestions = []string{
	"What are the other Ayurvedic principles related to this topic?",
	"How can I incorporate these Ayurvedic practices into my daily routine?",
	"Can you explain the long-term benefits of following these Ayurvedic guidelines?",
}

// fallbackSuggestions replaces the list entirely when the model call fails.
// Suggestions are a non-critical enhancement and never fail the request.
var fallbackSuggestions = []string{
	"What are the key Ayurvedic principles behind this?",
	"How can I apply this knowledge in my daily life?",
	"Can you explain more about the health benefits?",
}

// generateSuggestions produces exactly 3 follow-up questions conditioned on
// the answer and the user's previous questions.
func generateSuggestions(ctx context.Context, model ChatModel, query, answer string, previousQuestions []string) []string {
	logger := contextutil.LoggerFromContext(ctx)

	prompt := fmt.Sprintf(suggestPromptTemplate, query, answer, strings.Join(previousQuestions, "\n"))

	result, err := model.Complete(ctx, prompt)
	if err != nil {
		logger.WarnContext(ctx, "suggestion generation failed, using fallback", "error", err)
		return append([]string(nil), fallbackSuggestions...)
	}

	suggestions := make([]string, 0, suggestionCount)
	for _, line := range strings.Split(result, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		suggestions = append(suggestions, listNumberRe.ReplaceAllString(line, ""))
		if len(suggestions) == suggestionCount {
			break
		}
	}

	for i := 0; len(suggestions) < suggestionCount; i++ {
		suggestions = append(suggestions, genericSuggestions[i%len(genericSuggestions)])
	}

	return suggestions
}
