package ingest

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers ingestion routes on the provided router.
func RegisterRoutes(r fiber.Router) {
	r.Post("/ingest", HandleIngest)
	r.Get("/documents/:id/status", HandleStatus)
}
