package retriever

import (
	"strconv"
	"strings"

	"llm-quiz/config"
	core "llm-quiz/internal/core/retriever"
	"llm-quiz/pkg/apperror"
	"llm-quiz/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

type searchResponse struct {
	Query string     `json:"query"`
	Hits  []core.Hit `json:"hits"`
}

// HandleSearch embeds the query and runs a similarity search over the
// ingested material. doc_ids narrows the search to specific documents.
func HandleSearch(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return apperror.BadRequest(config.ModuleRetriever, c, status.MissingParams, "q is required")
	}

	topK := 8
	if raw := c.Query("top_k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			return apperror.BadRequest(config.ModuleRetriever, c, status.InvalidRequestBody, "top_k must be 1-100")
		}
		topK = n
	}

	var filters core.Filters
	if raw := c.Query("doc_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil || id <= 0 {
				return apperror.BadRequest(config.ModuleRetriever, c, status.InvalidRequestBody, "doc_ids must be a comma-separated id list")
			}
			filters.DocIDs = append(filters.DocIDs, id)
		}
	}

	ctx := c.Context()
	vector, err := core.EmbedQuery(ctx, query)
	if err != nil {
		return apperror.InternalError(config.ModuleRetriever, c, status.New(status.IngestEmbeddingFailed, err))
	}
	hits, err := core.SearchMilvus(ctx, vector, topK, filters)
	if err != nil {
		return apperror.InternalError(config.ModuleRetriever, c, err)
	}

	return apperror.Success(config.ModuleRetriever, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "ok",
		TrackingID: trackingID,
		Data:       searchResponse{Query: query, Hits: hits},
	})
}
