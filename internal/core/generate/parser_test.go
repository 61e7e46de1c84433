package generate

import (
	"strings"
	"testing"
)

const sampleResponse = `
[MULTIPLE-CHOICE]
문제 1. 대한민국의 수도는 어디인가?
a) 서울
b) 부산
c) 대구
d) 광주

정답: a) 서울
해설: 대한민국의 수도는 서울이다.

[SHORT ANSWER]
문제 1. 헌법이 공포된 연도는?

정답: 1948년
해설: 제헌 헌법은 1948년에 공포되었다.

문제 2. 초대 대통령의 이름은?

정답: 이승만
해설: 초대 대통령은 이승만이다.
`

func TestParseResponse_SplitsBlocksAndUnits(t *testing.T) {
	want := []QuestionType{MultipleChoice, ShortAnswer}
	questions, answers := ParseResponse(sampleResponse, want)

	if len(questions[MultipleChoice]) != 1 {
		t.Fatalf("multiple-choice questions = %d, want 1", len(questions[MultipleChoice]))
	}
	if len(questions[ShortAnswer]) != 2 {
		t.Fatalf("short answer questions = %d, want 2", len(questions[ShortAnswer]))
	}
	for _, qt := range want {
		if len(questions[qt]) != len(answers[qt]) {
			t.Fatalf("%q: questions and answers misaligned: %d vs %d", qt, len(questions[qt]), len(answers[qt]))
		}
	}
	if !strings.Contains(questions[MultipleChoice][0], "a) 서울") {
		t.Errorf("options should stay in the raw question: %q", questions[MultipleChoice][0])
	}
	if !strings.HasPrefix(answers[ShortAnswer][0], "1948년") {
		t.Errorf("answer text wrong: %q", answers[ShortAnswer][0])
	}
}

func TestParseResponse_DropsUnknownTag(t *testing.T) {
	raw := `
[ESSAY]
문제 1. 논술형 문제입니다.

정답: 없음
`
	questions, answers := ParseResponse(raw, []QuestionType{ShortAnswer})
	if len(questions[ShortAnswer]) != 0 || len(answers[ShortAnswer]) != 0 {
		t.Fatalf("unknown tag block should be dropped, got %d questions", len(questions[ShortAnswer]))
	}
}

func TestParseResponse_DropsUnrequestedType(t *testing.T) {
	questions, _ := ParseResponse(sampleResponse, []QuestionType{ShortAnswer})
	if _, ok := questions[MultipleChoice]; ok {
		t.Fatalf("unrequested type should not appear in output")
	}
	if len(questions[ShortAnswer]) != 2 {
		t.Fatalf("short answer questions = %d, want 2", len(questions[ShortAnswer]))
	}
}

func TestParseResponse_DropsUnitWithoutAnswerMarker(t *testing.T) {
	raw := `
[SHORT ANSWER]
문제 1. 정답 표시가 없는 문제입니다.

문제 2. 정상 문제입니다.

정답: 정상
해설: 정상 항목.
`
	questions, answers := ParseResponse(raw, []QuestionType{ShortAnswer})
	if len(questions[ShortAnswer]) != 1 {
		t.Fatalf("questions = %d, want 1", len(questions[ShortAnswer]))
	}
	if !strings.HasPrefix(answers[ShortAnswer][0], "정상") {
		t.Errorf("kept the wrong unit: %q", answers[ShortAnswer][0])
	}
}

func TestNormalizeTag_Variants(t *testing.T) {
	cases := []struct {
		in   string
		want QuestionType
		ok   bool
	}{
		{"MULTIPLE-CHOICE", MultipleChoice, true},
		{"SHORT ANSWER", ShortAnswer, true},
		{"TRUE/FALSE", TrueFalse, true},
		{"FILL-IN-THE-BLANK", FillInTheBlank, true},
		{"ESSAY", "", false},
	}
	for _, tc := range cases {
		got, ok := normalizeTag(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("normalizeTag(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
