package retriever

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers material search routes on the provided router.
func RegisterRoutes(r fiber.Router) {
	r.Get("/search", HandleSearch)
}
