package quiz

import (
	"fmt"
	"testing"

	"llm-quiz/internal/core/generate"
)

func resultWith(n int, sub string, qt generate.QuestionType) *generate.Result {
	quotas := generate.Quotas{sub: {qt: n}}
	r := generate.NewResult(quotas)
	qs := make([]generate.Question, n)
	as := make([]generate.Answer, n)
	for i := 0; i < n; i++ {
		qs[i] = generate.Question{Type: qt, Text: fmt.Sprintf("질문 %d", i)}
		as[i] = generate.Answer{Text: fmt.Sprintf("답 %d", i)}
	}
	r.Questions[sub][qt] = qs
	r.Answers[sub][qt] = as
	return r
}

func TestTrimToRequested(t *testing.T) {
	// The loop ran against an inflated target of 4; the caller asked for 2.
	result := resultWith(4, "역사", generate.ShortAnswer)
	requested := generate.Quotas{"역사": {generate.ShortAnswer: 2}}

	trimToRequested(result, requested)

	if got := len(result.Questions["역사"][generate.ShortAnswer]); got != 2 {
		t.Fatalf("collected = %d, want 2", got)
	}
	extras := result.Extras["역사"][generate.ShortAnswer]
	if len(extras) != 2 {
		t.Fatalf("extras = %d, want 2", len(extras))
	}
	if extras[0].Question.Text != "질문 2" || extras[1].Question.Text != "질문 3" {
		t.Fatalf("trimmed overflow out of order: %q, %q", extras[0].Question.Text, extras[1].Question.Text)
	}
}

func TestTrimToRequested_UnderTargetUntouched(t *testing.T) {
	result := resultWith(1, "역사", generate.ShortAnswer)
	requested := generate.Quotas{"역사": {generate.ShortAnswer: 3}}

	trimToRequested(result, requested)

	if got := len(result.Questions["역사"][generate.ShortAnswer]); got != 1 {
		t.Fatalf("collected = %d, want 1", got)
	}
	if len(result.Extras["역사"][generate.ShortAnswer]) != 0 {
		t.Fatalf("no extras expected for a shortfall")
	}
}
