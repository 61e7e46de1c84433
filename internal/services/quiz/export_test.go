package quiz

import (
	"strings"
	"testing"

	"llm-quiz/internal/database/model"
)

func TestRenderQuestionCell_FoldsChoices(t *testing.T) {
	choices := `["a) 서울","b) 부산","c) 대구","d) 광주"]`
	q := model.Question{QuestionText: "수도는 어디인가?", Choices: &choices}

	got := renderQuestionCell(q)
	want := "수도는 어디인가?\na) 서울\nb) 부산\nc) 대구\nd) 광주"
	if got != want {
		t.Fatalf("renderQuestionCell = %q, want %q", got, want)
	}
}

func TestRenderQuestionCell_NoChoices(t *testing.T) {
	q := model.Question{QuestionText: "헌법 공포 연도는?"}
	if got := renderQuestionCell(q); got != "헌법 공포 연도는?" {
		t.Fatalf("renderQuestionCell = %q", got)
	}
}

func TestRenderQuestionCell_BadChoicesJSON(t *testing.T) {
	bad := "not-json"
	q := model.Question{QuestionText: "질문?", Choices: &bad}
	if got := renderQuestionCell(q); got != "질문?" {
		t.Fatalf("broken choices must fall back to the bare question, got %q", got)
	}
}

func TestCSVHeaderColumns(t *testing.T) {
	if len(csvHeader) != 5 {
		t.Fatalf("header columns = %d, want 5", len(csvHeader))
	}
	if strings.Join(csvHeader, ",") != "문제 번호,유형,문제,정답,해설" {
		t.Fatalf("header = %v", csvHeader)
	}
}
