package quiz

import (
	"encoding/json"
	"strconv"

	"llm-quiz/config"
	"llm-quiz/internal/core/generate"
	"llm-quiz/internal/database"
	"llm-quiz/internal/database/model"
	quizsvc "llm-quiz/internal/services/quiz"
	"llm-quiz/pkg/apperror"
	"llm-quiz/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"
)

type generateRequest struct {
	UserID  int64                     `json:"user_id"`
	Subject string                    `json:"subject"`
	DocIDs  []int64                   `json:"doc_ids"`
	Quotas  map[string]map[string]int `json:"quotas"`
}

type questionView struct {
	ID           int64    `json:"id"`
	Subject      string   `json:"subject"`
	Subtopic     string   `json:"subtopic"`
	QuestionType string   `json:"question_type"`
	QuestionText string   `json:"question_text"`
	Choices      []string `json:"choices,omitempty"`
	AnswerText   string   `json:"answer_text"`
	Explanation  string   `json:"explanation"`
	Position     int      `json:"position"`
}

func toView(q model.Question) questionView {
	v := questionView{
		ID:           q.ID,
		Subject:      q.Subject,
		Subtopic:     q.Subtopic,
		QuestionType: q.QuestionType,
		QuestionText: q.QuestionText,
		AnswerText:   q.AnswerText,
		Explanation:  q.Explanation,
		Position:     q.Position,
	}
	if q.Choices != nil {
		_ = json.Unmarshal([]byte(*q.Choices), &v.Choices)
	}
	return v
}

// HandleGenerate runs the generation pipeline synchronously. The loop is
// bounded by max_retries, so the request finishes even when quotas cannot be
// met; a shortfall shows up as fewer questions in the response.
func HandleGenerate(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	var req generateRequest
	if err := c.Bind().Body(&req); err != nil {
		return apperror.BadRequest(config.ModuleQuiz, c, status.InvalidRequestBody, "invalid request body")
	}
	if req.UserID <= 0 {
		return apperror.BadRequest(config.ModuleQuiz, c, status.MissingParams, "user_id is required")
	}
	if len(req.DocIDs) == 0 {
		return apperror.BadRequest(config.ModuleQuiz, c, status.MissingParams, "doc_ids is required")
	}
	if len(req.Quotas) == 0 {
		return apperror.BadRequest(config.ModuleQuiz, c, status.MissingParams, "quotas is required")
	}

	quotas := make(generate.Quotas, len(req.Quotas))
	for sub, types := range req.Quotas {
		quotas[sub] = make(map[generate.QuestionType]int, len(types))
		for rawType, n := range types {
			qt := generate.QuestionType(rawType)
			if !qt.Valid() {
				return apperror.BadRequest(config.ModuleQuiz, c, status.InvalidRequestBody,
					"unknown question type "+rawType)
			}
			if n <= 0 {
				return apperror.BadRequest(config.ModuleQuiz, c, status.InvalidRequestBody,
					"question counts must be positive")
			}
			quotas[sub][qt] = n
		}
	}

	questions, err := quizsvc.GenerateForSubtopics(c.Context(), quizsvc.GenerateRequest{
		UserID:  req.UserID,
		Subject: req.Subject,
		DocIDs:  req.DocIDs,
		Quotas:  quotas,
	})
	if err != nil {
		return apperror.InternalError(config.ModuleQuiz, c, status.New(status.GenerateInternal, err))
	}

	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, toView(q))
	}
	return apperror.Success(config.ModuleQuiz, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "questions generated",
		TrackingID: trackingID,
		Data:       views,
	})
}

// HandleList returns the user's stored questions, optionally one subtopic.
func HandleList(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		return apperror.BadRequest(config.ModuleQuiz, c, status.MissingParams, "user_id is required")
	}

	db, err := database.GetDB()
	if err != nil {
		return apperror.InternalError(config.ModuleQuiz, c, err)
	}
	questions, err := quizsvc.ListQuestions(db, userID, c.Query("subtopic"))
	if err != nil {
		return apperror.InternalError(config.ModuleQuiz, c, err)
	}

	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, toView(q))
	}
	return apperror.Success(config.ModuleQuiz, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "ok",
		TrackingID: trackingID,
		Data:       views,
	})
}

// HandleRegenerate swaps a question for a banked extra of the same subtopic
// and type.
func HandleRegenerate(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	questionID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || questionID <= 0 {
		return apperror.BadRequest(config.ModuleQuiz, c, status.MissingParams, "invalid question id")
	}
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		return apperror.BadRequest(config.ModuleQuiz, c, status.MissingParams, "user_id is required")
	}

	replaced, err := quizsvc.RegenerateQuestion(userID, questionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperror.NotFound(config.ModuleQuiz, c, "question not found")
		}
		return apperror.InternalError(config.ModuleQuiz, c, status.New(status.GenerateExtraExhausted, err))
	}

	return apperror.Success(config.ModuleQuiz, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "question replaced",
		TrackingID: trackingID,
		Data:       toView(*replaced),
	})
}

func HandleDelete(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	questionID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || questionID <= 0 {
		return apperror.BadRequest(config.ModuleQuiz, c, status.MissingParams, "invalid question id")
	}
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		return apperror.BadRequest(config.ModuleQuiz, c, status.MissingParams, "user_id is required")
	}

	if err := quizsvc.DeleteQuestion(userID, questionID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperror.NotFound(config.ModuleQuiz, c, "question not found")
		}
		return apperror.InternalError(config.ModuleQuiz, c, err)
	}

	return apperror.Success(config.ModuleQuiz, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "question deleted",
		TrackingID: trackingID,
	})
}

// HandleExport streams the user's questions as a CSV download.
func HandleExport(c fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		return apperror.BadRequest(config.ModuleQuiz, c, status.MissingParams, "user_id is required")
	}

	db, err := database.GetDB()
	if err != nil {
		return apperror.InternalError(config.ModuleQuiz, c, err)
	}
	data, err := quizsvc.ExportCSV(db, userID, c.Query("subtopic"))
	if err != nil {
		return apperror.InternalError(config.ModuleQuiz, c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="questions.csv"`)
	return c.Send(data)
}
