package quiz

import (
	"encoding/json"
	"errors"

	"llm-quiz/internal/core/generate"
	"llm-quiz/internal/database/model"

	"gorm.io/gorm"
)

// SaveResult persists a generation result for one user and subject. Collected
// questions get sequential positions per (subtopic, type); banked extras are
// stored with IsExtra set so RegenerateQuestion can draw on them later.
func SaveResult(db *gorm.DB, userID int64, subject string, result *generate.Result) ([]model.Question, error) {
	var records []model.Question

	for sub, types := range result.Questions {
		for _, qt := range generate.AllTypes {
			qs, ok := types[qt]
			if !ok {
				continue
			}
			as := result.Answers[sub][qt]
			for i, q := range qs {
				rec, err := toRecord(userID, subject, sub, q, as[i])
				if err != nil {
					return nil, err
				}
				rec.Position = i + 1
				records = append(records, rec)
			}
			for _, qa := range result.Extras[sub][qt] {
				rec, err := toRecord(userID, subject, sub, qa.Question, qa.Answer)
				if err != nil {
					return nil, err
				}
				rec.IsExtra = true
				records = append(records, rec)
			}
		}
	}

	if len(records) == 0 {
		return []model.Question{}, nil
	}
	if err := db.Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func toRecord(userID int64, subject, subtopic string, q generate.Question, a generate.Answer) (model.Question, error) {
	rec := model.Question{
		UserID:       userID,
		Subject:      subject,
		Subtopic:     subtopic,
		QuestionType: string(q.Type),
		QuestionText: q.Text,
		AnswerText:   a.Text,
		Explanation:  a.Explanation,
	}
	if len(q.Options) > 0 {
		raw, err := json.Marshal(q.Options)
		if err != nil {
			return model.Question{}, err
		}
		s := string(raw)
		rec.Choices = &s
	}
	return rec, nil
}

func GetQuestionByID(db *gorm.DB, id int64) (*model.Question, error) {
	var q model.Question
	if err := db.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// ListQuestions returns the non-extra questions of a user, optionally filtered
// by subtopic, ordered the way they were generated.
func ListQuestions(db *gorm.DB, userID int64, subtopic string) ([]model.Question, error) {
	tx := db.Where("user_id = ? AND is_extra = ?", userID, false)
	if subtopic != "" {
		tx = tx.Where("subtopic = ?", subtopic)
	}
	var out []model.Question
	if err := tx.Order("subtopic, question_type, position").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// PopExtra takes one banked extra matching (user, subtopic, type) out of the
// pool. Returns gorm.ErrRecordNotFound when the pool is empty.
func PopExtra(db *gorm.DB, userID int64, subtopic, questionType string) (*model.Question, error) {
	var extra model.Question
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND subtopic = ? AND question_type = ? AND is_extra = ?",
			userID, subtopic, questionType, true).
			Order("id").
			First(&extra).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, extra.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &extra, nil
}

// ReplaceQuestion swaps the stored content of dst with the replacement while
// keeping the original ID and position, so the question's place in any room
// or export is preserved.
func ReplaceQuestion(db *gorm.DB, dst *model.Question, replacement *model.Question) error {
	if dst == nil || replacement == nil {
		return errors.New("nil question")
	}
	return db.Model(&model.Question{}).Where("id = ?", dst.ID).Updates(map[string]interface{}{
		"question_text": replacement.QuestionText,
		"choices":       replacement.Choices,
		"answer_text":   replacement.AnswerText,
		"explanation":   replacement.Explanation,
	}).Error
}

func DeleteQuestionByID(db *gorm.DB, userID, id int64) error {
	res := db.Where("user_id = ?", userID).Delete(&model.Question{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
