package ingest

import (
	"strconv"

	"llm-quiz/config"
	"llm-quiz/internal/database"
	ingestsvc "llm-quiz/internal/services/ingest"
	"llm-quiz/pkg/apperror"
	"llm-quiz/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"
)

type ingestRequest struct {
	DocID int64 `json:"doc_id"`
	Force bool  `json:"force"`
}

type ingestResponse struct {
	DocID  int64  `json:"doc_id"`
	Status string `json:"status"`
}

// HandleIngest kicks off the ingestion pipeline for an uploaded document in
// the background and returns immediately. Clients poll the status endpoint.
func HandleIngest(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	var req ingestRequest
	if err := c.Bind().Body(&req); err != nil {
		return apperror.BadRequest(config.ModuleIngest, c, status.InvalidRequestBody, "invalid request body")
	}
	if req.DocID <= 0 {
		return apperror.BadRequest(config.ModuleIngest, c, status.MissingParams, "doc_id is required")
	}

	db, err := database.GetDB()
	if err != nil {
		return apperror.InternalError(config.ModuleIngest, c, err)
	}
	doc, err := ingestsvc.GetDocumentByID(db, req.DocID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperror.NotFound(config.ModuleIngest, c, "document not found")
		}
		return apperror.InternalError(config.ModuleIngest, c, err)
	}
	if doc.Status == "processing" {
		return apperror.BadRequest(config.ModuleIngest, c, status.InvalidRequestBody, "document is already processing")
	}

	go ingestsvc.RunIngestion(req.DocID, req.Force)

	return apperror.Success(config.ModuleIngest, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "ingestion started",
		TrackingID: trackingID,
		Data:       ingestResponse{DocID: req.DocID, Status: "processing"},
	})
}

// HandleStatus reports where a document is in the pipeline.
func HandleStatus(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	docID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || docID <= 0 {
		return apperror.BadRequest(config.ModuleIngest, c, status.MissingParams, "invalid document id")
	}

	db, err := database.GetDB()
	if err != nil {
		return apperror.InternalError(config.ModuleIngest, c, err)
	}
	doc, err := ingestsvc.GetDocumentByID(db, docID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperror.NotFound(config.ModuleIngest, c, "document not found")
		}
		return apperror.InternalError(config.ModuleIngest, c, err)
	}

	return apperror.Success(config.ModuleIngest, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "ok",
		TrackingID: trackingID,
		Data:       ingestResponse{DocID: doc.ID, Status: doc.Status},
	})
}
