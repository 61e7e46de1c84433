package grading

import (
	"context"
	"errors"
	"strings"
	"testing"

	"llm-quiz/internal/core/generate"
)

type fakeJudge struct {
	response string
	err      error
	context  string
}

func (f *fakeJudge) Complete(ctx context.Context, prompt, contextText string) (string, error) {
	f.context = contextText
	return f.response, f.err
}

func TestCheckAnswer_Verdicts(t *testing.T) {
	cases := []struct {
		response string
		want     bool
	}{
		{"True", true},
		{" true \n", true},
		{"참", true},
		{"정답", true},
		{"False", false},
		{"거짓", false},
		{"maybe", false},
	}
	for _, tc := range cases {
		judge := &fakeJudge{response: tc.response}
		got, err := CheckAnswer(context.Background(), judge, "서울", "서울특별시", generate.ShortAnswer)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tc.want {
			t.Errorf("verdict %q graded %v, want %v", tc.response, got, tc.want)
		}
	}
}

func TestCheckAnswer_SendsBothAnswers(t *testing.T) {
	judge := &fakeJudge{response: "True"}
	_, err := CheckAnswer(context.Background(), judge, "사용자 답", "정답 텍스트", generate.ShortAnswer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(judge.context, "정답 텍스트") || !strings.Contains(judge.context, "사용자 답") {
		t.Fatalf("judge context missing answers: %q", judge.context)
	}
}

func TestCheckAnswer_PropagatesError(t *testing.T) {
	judge := &fakeJudge{err: errors.New("down")}
	if _, err := CheckAnswer(context.Background(), judge, "a", "b", generate.ShortAnswer); err == nil {
		t.Fatalf("expected error when judge is unavailable")
	}
}
