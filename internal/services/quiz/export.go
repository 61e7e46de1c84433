package quiz

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"llm-quiz/internal/database/model"

	"gorm.io/gorm"
)

// csvHeader matches the download format users import into spreadsheets. The
// leading BOM makes Excel detect UTF-8 so the Korean columns render correctly.
var csvHeader = []string{"문제 번호", "유형", "문제", "정답", "해설"}

// ExportCSV renders the user's questions (optionally one subtopic) as a
// UTF-8 CSV document. Multiple-choice options are folded into the question
// cell, one per line, so the file stands alone without a second sheet.
func ExportCSV(db *gorm.DB, userID int64, subtopic string) ([]byte, error) {
	questions, err := ListQuestions(db, userID, subtopic)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i, q := range questions {
		row := []string{
			fmt.Sprintf("%d", i+1),
			q.QuestionType,
			renderQuestionCell(q),
			q.AnswerText,
			q.Explanation,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderQuestionCell(q model.Question) string {
	if q.Choices == nil {
		return q.QuestionText
	}
	var options []string
	if err := json.Unmarshal([]byte(*q.Choices), &options); err != nil || len(options) == 0 {
		return q.QuestionText
	}
	var b strings.Builder
	b.WriteString(q.QuestionText)
	for _, opt := range options {
		b.WriteString("\n")
		b.WriteString(opt)
	}
	return b.String()
}
