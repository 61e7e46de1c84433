package quiz

import (
	"context"
	"errors"
	"time"

	"llm-quiz/config"
	"llm-quiz/internal/core/generate"
	"llm-quiz/internal/core/grading"
	"llm-quiz/internal/database"
	"llm-quiz/internal/database/model"
	"llm-quiz/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrRoomClosed    = errors.New("room is not open")
	ErrWrongPassword = errors.New("wrong room password")
)

// CreateRoom sets up a shared quiz room over a fixed set of the owner's
// questions, protected by a password and optionally bounded by a time window.
func CreateRoom(ownerID int64, name, password string, questionIDs []int64, startAt, endAt *time.Time) (*model.Room, error) {
	if name == "" {
		return nil, errors.New("room name required")
	}
	if password == "" {
		return nil, errors.New("room password required")
	}
	if len(questionIDs) == 0 {
		return nil, errors.New("room needs at least one question")
	}
	if startAt != nil && endAt != nil && !endAt.After(*startAt) {
		return nil, errors.New("room window must end after it starts")
	}

	db, err := database.GetDB()
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	room := model.Room{
		Name:         name,
		OwnerID:      ownerID,
		PasswordHash: string(hash),
		StartAt:      startAt,
		EndAt:        endAt,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Question{}).
			Where("id IN ? AND user_id = ? AND is_extra = ?", questionIDs, ownerID, false).
			Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(questionIDs)) {
			return errors.New("room questions must be owned, non-extra questions")
		}
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		links := make([]model.RoomQuestion, 0, len(questionIDs))
		for i, qid := range questionIDs {
			links = append(links, model.RoomQuestion{RoomID: room.ID, QuestionID: qid, Position: i + 1})
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// AuthenticateRoom checks the password and the time window. Participants only
// get the questions once both pass.
func AuthenticateRoom(roomID int64, password string, now time.Time) (*model.Room, error) {
	room, err := database.GetEntityByID[model.Room](context.Background(), roomID)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(room.PasswordHash), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}
	if room.StartAt != nil && now.Before(*room.StartAt) {
		return nil, ErrRoomClosed
	}
	if room.EndAt != nil && now.After(*room.EndAt) {
		return nil, ErrRoomClosed
	}
	return room, nil
}

// RoomQuestions returns the room's questions in presentation order, answers
// and explanations stripped.
func RoomQuestions(roomID int64) ([]model.Question, error) {
	db, err := database.GetDB()
	if err != nil {
		return nil, err
	}
	var out []model.Question
	err = db.Model(&model.Question{}).
		Joins("JOIN room_questions ON room_questions.question_id = questions.id").
		Where("room_questions.room_id = ?", roomID).
		Order("room_questions.position").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].AnswerText = ""
		out[i].Explanation = ""
	}
	return out, nil
}

// SubmitAnswers grades a participant's full submission. Exact-match types are
// graded locally; free-text answers go to the model judge. The score row is
// written once per (room, user) submission.
func SubmitAnswers(ctx context.Context, roomID, userID int64, answers map[int64]string) (*model.Score, error) {
	if len(answers) == 0 {
		return nil, errors.New("no answers submitted")
	}
	db, err := database.GetDB()
	if err != nil {
		return nil, err
	}

	var links []model.RoomQuestion
	if err := db.Where("room_id = ?", roomID).Order("position").Find(&links).Error; err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, errors.New("room has no questions")
	}

	client := generate.NewHTTPModelClient()
	records := make([]model.RoomAnswer, 0, len(links))
	correct := 0
	for _, link := range links {
		question, err := GetQuestionByID(db, link.QuestionID)
		if err != nil {
			return nil, err
		}
		answer := answers[link.QuestionID]
		ok := gradeOne(ctx, client, question, answer)
		if ok {
			correct++
		}
		isCorrect := ok
		records = append(records, model.RoomAnswer{
			RoomID:     roomID,
			UserID:     userID,
			QuestionID: link.QuestionID,
			AnswerText: answer,
			IsCorrect:  &isCorrect,
		})
	}

	score := model.Score{
		RoomID:          roomID,
		UserID:          userID,
		TotalQuestions:  len(links),
		CorrectAnswers:  correct,
		PercentageScore: float64(correct) / float64(len(links)) * 100,
	}
	err = database.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&records).Error; err != nil {
			return err
		}
		return tx.Create(&score).Error
	})
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// gradeOne decides one answer. Multiple-choice and true/false compare the
// leading option letter or normalized token; anything else is a semantic call
// to the judge. A judge failure grades as incorrect rather than failing the
// whole submission.
func gradeOne(ctx context.Context, client generate.ModelClient, question *model.Question, answer string) bool {
	if answer == "" {
		return false
	}
	qt := generate.QuestionType(question.QuestionType)
	switch qt {
	case generate.MultipleChoice, generate.TrueFalse:
		return grading.NormalizedEqual(answer, question.AnswerText)
	}
	ok, err := grading.CheckAnswer(ctx, client, answer, question.AnswerText, qt)
	if err != nil {
		logger.Error(err, "%v: judge unavailable, marking question %d incorrect", config.ModuleRoom, question.ID)
		return false
	}
	return ok
}

// RoomResults lists the scores of a room for its owner, newest first.
func RoomResults(roomID, ownerID int64) ([]model.Score, error) {
	db, err := database.GetDB()
	if err != nil {
		return nil, err
	}
	var room model.Room
	if err := db.First(&room, roomID).Error; err != nil {
		return nil, err
	}
	if room.OwnerID != ownerID {
		return nil, errors.New("room does not belong to user")
	}
	var scores []model.Score
	if err := db.Where("room_id = ?", roomID).Order("created_at DESC").Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}
