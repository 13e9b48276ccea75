package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"tangerina/internal/rag/mocks"
)

func TestEvaluateSufficiency(t *testing.T) {
	tests := []struct {
		name      string
		modelResp string
		modelErr  error
		want      string
	}{
		{
			name:      "sufficient",
			modelResp: "SUFFICIENT",
			want:      Sufficient,
		},
		{
			name:      "insufficient",
			modelResp: "INSUFFICIENT",
			want:      Insufficient,
		},
		{
			name:      "whitespace trimmed",
			modelResp: "  SUFFICIENT\n",
			want:      Sufficient,
		},
		{
			name:      "unexpected output fails open",
			modelResp: "The results look adequate to me.",
			want:      Insufficient,
		},
		{
			name:     "model error fails open",
			modelErr: errors.New("backend unreachable"),
			want:     Insufficient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			model := mocks.NewMockChatModel(ctrl)
			model.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(tt.modelResp, tt.modelErr)

			got := evaluateSufficiency(context.Background(), model, "What balances vata?", []string{"[1] Vata Basics"})
			if got != tt.want {
				t.Errorf("evaluateSufficiency() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateSufficiency_PromptContainsQueryAndContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	model := mocks.NewMockChatModel(ctrl)
	model.EXPECT().Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (string, error) {
			if !strings.Contains(prompt, "What balances vata?") {
				t.Error("prompt missing query")
			}
			if !strings.Contains(prompt, "[1] Vata Basics") {
				t.Error("prompt missing blog context")
			}
			return Sufficient, nil
		})

	evaluateSufficiency(context.Background(), model, "What balances vata?", []string{"[1] Vata Basics"})
}
