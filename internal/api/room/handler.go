package room

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"llm-quiz/config"
	"llm-quiz/internal/database/model"
	quizsvc "llm-quiz/internal/services/quiz"
	"llm-quiz/pkg/apperror"
	"llm-quiz/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"
)

type createRequest struct {
	OwnerID     int64      `json:"owner_id"`
	Name        string     `json:"name"`
	Password    string     `json:"password"`
	QuestionIDs []int64    `json:"question_ids"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
}

type joinRequest struct {
	Password string `json:"password"`
}

type submitRequest struct {
	UserID   int64             `json:"user_id"`
	Password string            `json:"password"`
	Answers  map[string]string `json:"answers"`
}

type roomQuestionView struct {
	ID           int64    `json:"id"`
	QuestionType string   `json:"question_type"`
	QuestionText string   `json:"question_text"`
	Choices      []string `json:"choices,omitempty"`
}

func HandleCreate(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	var req createRequest
	if err := c.Bind().Body(&req); err != nil {
		return apperror.BadRequest(config.ModuleRoom, c, status.InvalidRequestBody, "invalid request body")
	}
	if req.OwnerID <= 0 {
		return apperror.BadRequest(config.ModuleRoom, c, status.MissingParams, "owner_id is required")
	}

	room, err := quizsvc.CreateRoom(req.OwnerID, req.Name, req.Password, req.QuestionIDs, req.StartAt, req.EndAt)
	if err != nil {
		return apperror.BadRequest(config.ModuleRoom, c, status.InvalidRequestBody, err.Error())
	}

	return apperror.Success(config.ModuleRoom, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "room created",
		TrackingID: trackingID,
		Data:       fiber.Map{"room_id": room.ID},
	})
}

// HandleJoin authenticates a participant and returns the room's questions
// without answers.
func HandleJoin(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	roomID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || roomID <= 0 {
		return apperror.BadRequest(config.ModuleRoom, c, status.MissingParams, "invalid room id")
	}
	var req joinRequest
	if err := c.Bind().Body(&req); err != nil {
		return apperror.BadRequest(config.ModuleRoom, c, status.InvalidRequestBody, "invalid request body")
	}

	if _, err := quizsvc.AuthenticateRoom(roomID, req.Password, time.Now()); err != nil {
		return roomAuthError(c, err)
	}
	questions, err := quizsvc.RoomQuestions(roomID)
	if err != nil {
		return apperror.InternalError(config.ModuleRoom, c, err)
	}

	views := make([]roomQuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, toRoomView(q))
	}
	return apperror.Success(config.ModuleRoom, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "ok",
		TrackingID: trackingID,
		Data:       views,
	})
}

// HandleSubmit grades the participant's answers and returns the score.
func HandleSubmit(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	roomID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || roomID <= 0 {
		return apperror.BadRequest(config.ModuleRoom, c, status.MissingParams, "invalid room id")
	}
	var req submitRequest
	if err := c.Bind().Body(&req); err != nil {
		return apperror.BadRequest(config.ModuleRoom, c, status.InvalidRequestBody, "invalid request body")
	}
	if req.UserID <= 0 {
		return apperror.BadRequest(config.ModuleRoom, c, status.MissingParams, "user_id is required")
	}

	if _, err := quizsvc.AuthenticateRoom(roomID, req.Password, time.Now()); err != nil {
		return roomAuthError(c, err)
	}

	answers := make(map[int64]string, len(req.Answers))
	for rawID, text := range req.Answers {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || id <= 0 {
			return apperror.BadRequest(config.ModuleRoom, c, status.InvalidRequestBody, "answers must be keyed by question id")
		}
		answers[id] = text
	}

	score, err := quizsvc.SubmitAnswers(c.Context(), roomID, req.UserID, answers)
	if err != nil {
		return apperror.InternalError(config.ModuleRoom, c, status.New(status.RoomInternal, err))
	}

	return apperror.Success(config.ModuleRoom, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "answers graded",
		TrackingID: trackingID,
		Data: fiber.Map{
			"total_questions":  score.TotalQuestions,
			"correct_answers":  score.CorrectAnswers,
			"percentage_score": score.PercentageScore,
		},
	})
}

// HandleResults lists all scores of a room for its owner.
func HandleResults(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	roomID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || roomID <= 0 {
		return apperror.BadRequest(config.ModuleRoom, c, status.MissingParams, "invalid room id")
	}
	ownerID, err := strconv.ParseInt(c.Query("owner_id"), 10, 64)
	if err != nil || ownerID <= 0 {
		return apperror.BadRequest(config.ModuleRoom, c, status.MissingParams, "owner_id is required")
	}

	scores, err := quizsvc.RoomResults(roomID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound(config.ModuleRoom, c, "room not found")
		}
		return apperror.InternalError(config.ModuleRoom, c, err)
	}

	return apperror.Success(config.ModuleRoom, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "ok",
		TrackingID: trackingID,
		Data:       scores,
	})
}

func roomAuthError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, quizsvc.ErrWrongPassword):
		return apperror.Unauthorized(config.ModuleRoom, c, status.WrongPassword, "wrong room password")
	case errors.Is(err, quizsvc.ErrRoomClosed):
		return apperror.WriteError(config.ModuleRoom, c, fiber.StatusForbidden, "QZ-3001", "room is not open")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(config.ModuleRoom, c, "room not found")
	}
	return apperror.InternalError(config.ModuleRoom, c, err)
}

func toRoomView(q model.Question) roomQuestionView {
	v := roomQuestionView{
		ID:           q.ID,
		QuestionType: q.QuestionType,
		QuestionText: q.QuestionText,
	}
	if q.Choices != nil {
		_ = json.Unmarshal([]byte(*q.Choices), &v.Choices)
	}
	return v
}
