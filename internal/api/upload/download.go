package upload

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"llm-quiz/config"
	"llm-quiz/internal/database"
	"llm-quiz/internal/database/model"
	"llm-quiz/pkg/apperror"
	"llm-quiz/pkg/apperror/status"
	s3client "llm-quiz/pkg/s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"
)

type downloadResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

// HandleDownloadURL returns a short-lived presigned URL for an S3-stored
// document. Locally stored documents have no URL to hand out.
func HandleDownloadURL(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	docID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || docID <= 0 {
		return apperror.BadRequest(config.ModuleUpload, c, status.MissingParams, "invalid document id")
	}

	doc, err := database.GetEntityByID[model.Document](c.Context(), docID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperror.NotFound(config.ModuleUpload, c, "document not found")
		}
		return apperror.InternalError(config.ModuleUpload, c, err)
	}
	if doc.FilePath == nil || !strings.HasPrefix(*doc.FilePath, "s3://") {
		return apperror.BadRequest(config.ModuleUpload, c, status.UnsupportedFormat, "document is not stored in object storage")
	}

	u, err := url.Parse(*doc.FilePath)
	if err != nil {
		return apperror.InternalError(config.ModuleUpload, c, err)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")

	presigner, err := s3client.GetPresignClient()
	if err != nil {
		return apperror.InternalError(config.ModuleUpload, c, err)
	}
	const ttl = 15 * time.Minute
	req, err := presigner.PresignGetObject(c.Context(), &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, awss3.WithPresignExpires(ttl))
	if err != nil {
		return apperror.InternalError(config.ModuleUpload, c, err)
	}

	return apperror.Success(config.ModuleUpload, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "ok",
		TrackingID: trackingID,
		Data:       downloadResponse{URL: req.URL, ExpiresIn: int(ttl.Seconds())},
	})
}
