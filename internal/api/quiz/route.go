package quiz

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers question generation and management routes.
func RegisterRoutes(r fiber.Router) {
	r.Post("/quiz/generate", HandleGenerate)
	r.Get("/quiz/questions", HandleList)
	r.Post("/quiz/questions/:id/regenerate", HandleRegenerate)
	r.Delete("/quiz/questions/:id", HandleDelete)
	r.Get("/quiz/export", HandleExport)
}
