package generate

import (
	"fmt"
	"testing"
)

func TestQuotasInflate(t *testing.T) {
	quotas := Quotas{"역사": {ShortAnswer: 3, MultipleChoice: 2}}
	inflated := quotas.Inflate(1.5)
	if inflated["역사"][ShortAnswer] != 4 {
		t.Errorf("3 x 1.5 should truncate to 4, got %d", inflated["역사"][ShortAnswer])
	}
	if inflated["역사"][MultipleChoice] != 3 {
		t.Errorf("2 x 1.5 should truncate to 3, got %d", inflated["역사"][MultipleChoice])
	}
	// The input is untouched.
	if quotas["역사"][ShortAnswer] != 3 {
		t.Errorf("Inflate must not mutate its receiver")
	}
}

func TestQuotasInflate_NonPositiveFactor(t *testing.T) {
	quotas := Quotas{"역사": {ShortAnswer: 3}}
	if got := quotas.Inflate(0)["역사"][ShortAnswer]; got != 3 {
		t.Errorf("factor 0 should behave as identity, got %d", got)
	}
}

func makeQA(n int) ([]Question, []Answer) {
	qs := make([]Question, n)
	as := make([]Answer, n)
	for i := 0; i < n; i++ {
		qs[i] = Question{Type: ShortAnswer, Text: fmt.Sprintf("질문 %d", i)}
		as[i] = Answer{Text: fmt.Sprintf("답 %d", i)}
	}
	return qs, as
}

func TestResultApply_BanksSurplus(t *testing.T) {
	quotas := Quotas{"역사": {ShortAnswer: 2}}
	r := NewResult(quotas)

	qs, as := makeQA(5)
	r.apply("역사", ShortAnswer, 2, qs, as)

	if got := r.collected("역사", ShortAnswer); got != 2 {
		t.Fatalf("collected = %d, want 2", got)
	}
	if len(r.Extras["역사"][ShortAnswer]) != 3 {
		t.Fatalf("extras = %d, want 3", len(r.Extras["역사"][ShortAnswer]))
	}
	// Arrival order preserved on both sides.
	if r.Questions["역사"][ShortAnswer][0].Text != "질문 0" {
		t.Errorf("collected order wrong")
	}
	if r.Extras["역사"][ShortAnswer][0].Question.Text != "질문 2" {
		t.Errorf("extras order wrong")
	}
}

func TestResultApply_ZeroRemainingIsNoop(t *testing.T) {
	quotas := Quotas{"역사": {ShortAnswer: 2}}
	r := NewResult(quotas)
	qs, as := makeQA(3)
	r.apply("역사", ShortAnswer, 0, qs, as)
	if r.collected("역사", ShortAnswer) != 0 || len(r.Extras["역사"][ShortAnswer]) != 0 {
		t.Fatalf("apply with zero remaining must not collect or bank")
	}
}

func TestResultFinalize_OverflowToFrontOfExtras(t *testing.T) {
	quotas := Quotas{"역사": {ShortAnswer: 2}}
	r := NewResult(quotas)

	qs, as := makeQA(6)
	// Collect 4 (target 2 + margin 2), bank the remaining 2.
	r.apply("역사", ShortAnswer, 4, qs, as)
	r.finalize(quotas)

	if got := r.collected("역사", ShortAnswer); got != 2 {
		t.Fatalf("collected after finalize = %d, want 2", got)
	}
	extras := r.Extras["역사"][ShortAnswer]
	if len(extras) != 4 {
		t.Fatalf("extras = %d, want 4", len(extras))
	}
	// Overflow (items 2, 3) comes before the previously banked surplus (4, 5).
	wantOrder := []string{"질문 2", "질문 3", "질문 4", "질문 5"}
	for i, want := range wantOrder {
		if extras[i].Question.Text != want {
			t.Fatalf("extras[%d] = %q, want %q", i, extras[i].Question.Text, want)
		}
	}
}

func TestResultSatisfied(t *testing.T) {
	quotas := Quotas{"역사": {ShortAnswer: 2}}
	r := NewResult(quotas)
	qs, as := makeQA(3)

	if r.satisfied(quotas, 1) {
		t.Fatalf("empty result cannot be satisfied")
	}
	r.apply("역사", ShortAnswer, 3, qs, as)
	if !r.satisfied(quotas, 1) {
		t.Fatalf("3 collected should satisfy target 2 + margin 1")
	}
	if r.satisfied(quotas, 2) {
		t.Fatalf("3 collected should not satisfy target 2 + margin 2")
	}
}

func TestQuestionTypeTag(t *testing.T) {
	if MultipleChoice.Tag() != "MULTIPLE-CHOICE" {
		t.Errorf("Tag() = %q", MultipleChoice.Tag())
	}
	if TrueFalse.Tag() != "TRUE/FALSE" {
		t.Errorf("Tag() = %q", TrueFalse.Tag())
	}
}
