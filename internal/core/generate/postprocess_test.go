package generate

import (
	"testing"
)

func TestPostProcess_MultipleChoice(t *testing.T) {
	questions := map[QuestionType][]string{
		MultipleChoice: {
			"대한민국의 수도는 어디인가?\na) 서울\nb) 부산\nc) 대구\nd) 광주",
		},
	}
	answers := map[QuestionType][]string{
		MultipleChoice: {"a) 서울\n해설: 대한민국의 수도는 서울이다."},
	}

	outQ, outA := PostProcess(questions, answers)
	if len(outQ[MultipleChoice]) != 1 {
		t.Fatalf("questions = %d, want 1", len(outQ[MultipleChoice]))
	}
	q := outQ[MultipleChoice][0]
	if q.Text != "대한민국의 수도는 어디인가?" {
		t.Errorf("stem should not contain options: %q", q.Text)
	}
	if len(q.Options) != 4 || q.Options[0] != "a) 서울" || q.Options[3] != "d) 광주" {
		t.Errorf("options wrong: %q", q.Options)
	}
	a := outA[MultipleChoice][0]
	if a.Text != "a) 서울" {
		t.Errorf("answer text = %q", a.Text)
	}
	if a.Explanation != "대한민국의 수도는 서울이다." {
		t.Errorf("explanation = %q", a.Explanation)
	}
}

func TestPostProcess_MultipleChoiceWrongOptionCount(t *testing.T) {
	questions := map[QuestionType][]string{
		MultipleChoice: {"수도는?\na) 서울\nb) 부산\nc) 대구"},
	}
	answers := map[QuestionType][]string{
		MultipleChoice: {"a) 서울"},
	}
	outQ, _ := PostProcess(questions, answers)
	if len(outQ[MultipleChoice]) != 0 {
		t.Fatalf("3-option question should be dropped")
	}
}

func TestPostProcess_FillInTheBlank(t *testing.T) {
	questions := map[QuestionType][]string{
		FillInTheBlank: {
			"대한민국의 수도는 _____이다.",
			"빈칸이 없는 문제입니다.",
		},
	}
	answers := map[QuestionType][]string{
		FillInTheBlank: {"서울\n해설: 수도는 서울.", "없음"},
	}
	outQ, outA := PostProcess(questions, answers)
	if len(outQ[FillInTheBlank]) != 1 {
		t.Fatalf("questions = %d, want 1 (blank-less item dropped)", len(outQ[FillInTheBlank]))
	}
	if outA[FillInTheBlank][0].Text != "서울" {
		t.Errorf("answer = %q", outA[FillInTheBlank][0].Text)
	}
}

func TestPostProcess_ShortAnswerAndTrueFalsePassThrough(t *testing.T) {
	questions := map[QuestionType][]string{
		ShortAnswer: {"헌법 공포 연도는?"},
		TrueFalse:   {"서울은 대한민국의 수도이다."},
	}
	answers := map[QuestionType][]string{
		ShortAnswer: {"1948년\n해설: 제헌 헌법."},
		TrueFalse:   {"참\n해설: 수도는 서울."},
	}
	outQ, outA := PostProcess(questions, answers)
	if len(outQ[ShortAnswer]) != 1 || len(outQ[TrueFalse]) != 1 {
		t.Fatalf("pass-through types lost items: %d, %d", len(outQ[ShortAnswer]), len(outQ[TrueFalse]))
	}
	if outA[TrueFalse][0].Text != "참" {
		t.Errorf("true/false answer = %q", outA[TrueFalse][0].Text)
	}
}

func TestPostProcess_DropsEmptyAnswer(t *testing.T) {
	questions := map[QuestionType][]string{
		ShortAnswer: {"질문입니다?"},
	}
	answers := map[QuestionType][]string{
		ShortAnswer: {"   \n해설: 답이 비어 있음."},
	}
	outQ, _ := PostProcess(questions, answers)
	if len(outQ[ShortAnswer]) != 0 {
		t.Fatalf("empty answer should drop the item")
	}
}

func TestSplitAnswer_NoExplanation(t *testing.T) {
	ans := splitAnswer("서울")
	if ans.Text != "서울" || ans.Explanation != "" {
		t.Fatalf("splitAnswer = %+v", ans)
	}
}
