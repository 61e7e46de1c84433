package room

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers quiz room routes on the provided router.
func RegisterRoutes(r fiber.Router) {
	r.Post("/rooms", HandleCreate)
	r.Post("/rooms/:id/join", HandleJoin)
	r.Post("/rooms/:id/answers", HandleSubmit)
	r.Get("/rooms/:id/results", HandleResults)
}
