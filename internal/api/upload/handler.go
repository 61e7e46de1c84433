package upload

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"llm-quiz/config"
	"llm-quiz/internal/database"
	"llm-quiz/internal/database/model"
	"llm-quiz/pkg/apperror"
	"llm-quiz/pkg/apperror/status"
	s3client "llm-quiz/pkg/s3"

	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"
)

type uploadResponse struct {
	DocID  int64  `json:"doc_id"`
	Status string `json:"status"`
}

// contentTypes maps accepted upload extensions to the stored content type.
// Anything not listed here is rejected before touching storage.
var contentTypes = map[string]string{
	".pdf": "application/pdf",
	".txt": "text/plain; charset=utf-8",
	".mp4": "video/mp4",
	".mp3": "audio/mpeg",
	".wav": "audio/wav",
	".m4a": "audio/mp4",
}

func HandleUpload(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	fh, err := c.FormFile("file")
	if err != nil {
		return apperror.BadRequest(config.ModuleUpload, c, status.MissingParams, "file is required")
	}
	if fh == nil || fh.Size == 0 {
		return apperror.BadRequest(config.ModuleUpload, c, status.MissingParams, "empty file")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType, ok := contentTypes[ext]
	if !ok {
		return apperror.BadRequest(config.ModuleUpload, c, status.UnsupportedFormat,
			fmt.Sprintf("unsupported file type %q", ext))
	}

	file, err := fh.Open()
	if err != nil {
		return apperror.BadRequest(config.ModuleUpload, c, status.MissingParams, "cannot open file")
	}
	defer file.Close()

	db, err := database.GetDB()
	if err != nil {
		return apperror.InternalError(config.ModuleUpload, c, err)
	}
	userID, err := ensureDefaultUser(db)
	if err != nil {
		return apperror.InternalError(config.ModuleUpload, c, err)
	}

	useS3 := strings.TrimSpace(config.Cfg.S3.Bucket) != ""
	var storedPath, shaHex string
	if useS3 {
		storedPath, shaHex, err = storeToS3(c.Context(), file, ext, contentType)
	} else {
		storedPath, shaHex, err = storeToLocal(file, ext)
	}
	if err != nil {
		return apperror.InternalError(config.ModuleUpload, c, status.New(status.UploadInternal, err))
	}

	original := fh.Filename
	now := time.Now()
	doc := model.Document{
		UserID:           userID,
		OriginalFilename: &original,
		FilePath:         &storedPath,
		Sha256:           &shaHex,
		Status:           "uploaded",
		UploadedAt:       &now,
	}
	if err := database.CreateEntity(c.Context(), &doc); err != nil {
		return apperror.InternalError(config.ModuleUpload, c, err)
	}

	return apperror.Success(config.ModuleUpload, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "file uploaded",
		TrackingID: trackingID,
		Data:       uploadResponse{DocID: doc.ID, Status: doc.Status},
	})
}

// ensureDefaultUser keeps single-tenant deployments working without an auth
// layer in front: every upload lands on the same account.
func ensureDefaultUser(db *gorm.DB) (int64, error) {
	var user model.User
	err := db.Where("email = ?", "default@localhost").First(&user).Error
	if err == nil {
		return user.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return 0, err
	}
	user = model.User{Email: "default@localhost"}
	if err := db.Create(&user).Error; err != nil {
		return 0, err
	}
	return user.ID, nil
}

func storeToLocal(r io.Reader, ext string) (string, string, error) {
	baseDir := filepath.Join("storage", "documents")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create storage dir: %w", err)
	}

	tmp, err := os.CreateTemp(baseDir, "upload-*.tmp")
	if err != nil {
		return "", "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmp, hasher), r); err != nil {
		return "", "", fmt.Errorf("write file: %w", err)
	}

	shaHex := hex.EncodeToString(hasher.Sum(nil))
	finalPath := filepath.Join(baseDir, shaHex+ext)
	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		return "", "", fmt.Errorf("finalize file: %w", err)
	}
	return finalPath, shaHex, nil
}

func storeToS3(ctx context.Context, r multipart.File, ext, contentType string) (string, string, error) {
	// Spool to a temp file so the body can be hashed first and streamed to
	// storage second.
	tmp, err := os.CreateTemp("", "s3-upload-*.tmp")
	if err != nil {
		return "", "", fmt.Errorf("tempfile: %w", err)
	}
	defer func() {
		tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmp, hasher), r); err != nil {
		return "", "", fmt.Errorf("stream copy: %w", err)
	}
	shaHex := hex.EncodeToString(hasher.Sum(nil))

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", "", fmt.Errorf("seek: %w", err)
	}
	key := fmt.Sprintf("documents/%s%s", shaHex, ext)
	if err := s3client.PutObject(ctx, key, tmp, contentType); err != nil {
		return "", "", fmt.Errorf("put object: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", config.Cfg.S3.Bucket, key), shaHex, nil
}
