package apperror

import (
	"fmt"

	"llm-quiz/config"
	"llm-quiz/pkg/apperror/status"
	"llm-quiz/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

// ErrorResponse is the standardized HTTP error payload
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}

type FiberSuccessMessage struct {
	Code       status.SuccessCode `json:"code"`
	Message    string             `json:"message"`
	TrackingID string             `json:"tracking_id"`
	Data       any                `json:"data"`
}

// WriteError logs a structured warning and returns a standardized JSON error
func WriteError(module config.Module, c fiber.Ctx, httpStatus int, code string, message string) error {
	logger.WithFields(map[string]interface{}{
		"module":        module,
		"status_code":   httpStatus,
		"error_code":    code,
		"error_message": message,
		"http_method":   c.Method(),
		"path":          c.Path(),
		"url":           c.OriginalURL(),
		"ip":            c.IP(),
	}).Warnf("http error")

	return c.Status(httpStatus).JSON(ErrorResponse{
		Error:     message,
		ErrorCode: code,
	})
}

// Shorthands for common error responses

func BadRequest(module config.Module, c fiber.Ctx, code status.ErrorCode, message string) error {
	return WriteError(module, c, fiber.StatusBadRequest, fmt.Sprintf("QZ-%d", code), message)
}

func NotFound(module config.Module, c fiber.Ctx, message string) error {
	return WriteError(module, c, fiber.StatusNotFound, fmt.Sprintf("QZ-%d", status.NotFound), message)
}

func Unauthorized(module config.Module, c fiber.Ctx, code status.ErrorCode, message string) error {
	return WriteError(module, c, fiber.StatusUnauthorized, fmt.Sprintf("QZ-%d", code), message)
}

func InternalError(module config.Module, c fiber.Ctx, err error) error {
	code := status.ErrorCodeInternal
	var coded status.CodedError
	if e, ok := err.(status.CodedError); ok {
		coded = e
		code = coded.ErrorCode()
	}
	return WriteError(module, c, fiber.StatusInternalServerError, fmt.Sprintf("QZ-%d", code), err.Error())
}

// Success writes a standardized JSON success response
func Success(module config.Module, c fiber.Ctx, response FiberSuccessMessage) error {
	return c.Status(fiber.StatusOK).JSON(response)
}
