package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"tangerina/internal/rag/mocks"
)

func TestSynthesizeAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("returns model answer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		model := mocks.NewMockChatModel(ctrl)
		model.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("Namaste, my dear friend [1].", nil)

		got := synthesizeAnswer(ctx, model, "query", []string{"[1] Source"}, "")
		if got != "Namaste, my dear friend [1]." {
			t.Errorf("synthesizeAnswer() = %q", got)
		}
	})

	t.Run("empty web results use placeholder", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		model := mocks.NewMockChatModel(ctrl)
		model.EXPECT().Complete(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, prompt string) (string, error) {
				if !strings.Contains(prompt, "No web results available") {
					t.Error("prompt missing web results placeholder")
				}
				return "answer", nil
			})

		synthesizeAnswer(ctx, model, "query", nil, "")
	})

	t.Run("web results included in prompt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		model := mocks.NewMockChatModel(ctrl)
		model.EXPECT().Complete(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, prompt string) (string, error) {
				if !strings.Contains(prompt, "Reference Format: [1] Sleep Guide - https://example.com/sleep") {
					t.Error("prompt missing web source block")
				}
				return "answer", nil
			})

		webBlock := "Source: Sleep Guide\nURL: https://example.com/sleep\nContent: text\n\nReference Format: [1] Sleep Guide - https://example.com/sleep\n---"
		synthesizeAnswer(ctx, model, "query", nil, webBlock)
	})

	t.Run("model failure yields sentinel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		model := mocks.NewMockChatModel(ctrl)
		model.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("backend down"))

		got := synthesizeAnswer(ctx, model, "query", nil, "")
		if got != AnswerFailed {
			t.Errorf("synthesizeAnswer() = %q, want %q", got, AnswerFailed)
		}
	})

	t.Run("blank answer yields sentinel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		model := mocks.NewMockChatModel(ctrl)
		model.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("  \n", nil)

		got := synthesizeAnswer(ctx, model, "query", nil, "")
		if got != AnswerEmpty {
			t.Errorf("synthesizeAnswer() = %q, want %q", got, AnswerEmpty)
		}
	})
}
