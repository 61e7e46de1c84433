package ingest

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"llm-quiz/config"
	coreingest "llm-quiz/internal/core/ingest"
	"llm-quiz/internal/core/transcribe"
	"llm-quiz/internal/database"
	"llm-quiz/pkg/logger"
)

// RunIngestion orchestrates the ingestion pipeline for a document ID:
// fetch, extract or transcribe, segment, embed, upsert into Milvus, persist
// chunk rows. Meant to run as a background job after upload.
func RunIngestion(docID int64, force bool) {
	db, err := database.GetDB()
	if err != nil {
		logger.Error(err, "ingest: db unavailable")
		return
	}

	doc, err := GetDocumentByID(db, docID)
	if err != nil {
		logger.Error(err, "ingest: get document failed")
		return
	}
	if doc.FilePath == nil {
		logger.Error(errors.New("no file path"), "ingest: document %d has no stored file", docID)
		return
	}
	logger.WithFields(map[string]interface{}{
		"doc_id":    docID,
		"file_path": *doc.FilePath,
	}).Info("ingest: start")

	// Idempotency
	exists, err := HasChunks(db, docID)
	if err != nil {
		logger.Error(err, "ingest: check chunks failed")
		return
	}
	if exists && !force {
		logger.Info("ingest: chunks already exist; skip (no force)")
		return
	}
	if exists && force {
		if err := DeleteChunksByDocID(db, docID); err != nil {
			logger.Error(err, "ingest: cleanup chunks failed")
			return
		}
	}

	_ = UpdateDocumentStatus(db, docID, "processing")

	tmpPath, cleanup, err := coreingest.FetchToLocalTemp(*doc.FilePath)
	if err != nil {
		logger.Error(err, "ingest: fetch file failed")
		_ = UpdateDocumentStatus(db, docID, "failed")
		return
	}
	defer cleanup()

	pages, err := extractPages(tmpPath)
	if err != nil {
		logger.Error(err, "ingest: extract text failed")
		_ = UpdateDocumentStatus(db, docID, "failed")
		return
	}
	logger.WithFields(map[string]interface{}{
		"doc_id": docID,
		"pages":  len(pages),
	}).Info("ingest: extracted pages")

	ext := strings.ToLower(filepath.Ext(tmpPath))
	splitter := coreingest.NewSplitter(config.Cfg.Ingest.ChunkSize, config.Cfg.Ingest.ChunkOverlap, ext == ".pdf")
	chunks := splitter.BuildChunks(pages)
	if len(chunks) == 0 {
		logger.Error(errors.New("no chunks"), "ingest: nothing to index for document %d", docID)
		_ = UpdateDocumentStatus(db, docID, "failed")
		return
	}
	logger.WithFields(map[string]interface{}{
		"doc_id":     docID,
		"chunks":     len(chunks),
		"chunk_size": config.Cfg.Ingest.ChunkSize,
	}).Info("ingest: chunks built")

	inputs := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		inputs = append(inputs, ch.Content)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	vectors, err := coreingest.EmbedOpenAI(ctx, inputs)
	if err != nil {
		logger.Error(err, "ingest: embedding failed")
		_ = UpdateDocumentStatus(db, docID, "failed")
		return
	}
	if len(vectors) != len(chunks) {
		logger.Error(errors.New("mismatch"), "ingest: embedding count mismatch")
		_ = UpdateDocumentStatus(db, docID, "failed")
		return
	}

	milvusIDs, collection, err := coreingest.UpsertMilvusVectors(ctx, vectors, docID, chunks)
	if err != nil {
		logger.Error(err, "ingest: milvus upsert failed")
		_ = UpdateDocumentStatus(db, docID, "failed")
		return
	}

	if err := InsertChunks(db, docID, chunks, milvusIDs, collection); err != nil {
		logger.Error(err, "ingest: db insert chunks failed")
		_ = UpdateDocumentStatus(db, docID, "failed")
		return
	}

	_ = UpdateDocumentStatus(db, docID, "ready")
}

// extractPages turns the stored file into page texts. Media files go through
// the model server's transcription endpoints; documents are extracted locally.
func extractPages(localPath string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(localPath))
	if transcribe.IsMedia(ext) {
		client := transcribe.NewClient()
		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(config.Cfg.ModelServer.TranscribeTimeout)*time.Second)
		defer cancel()

		var (
			text string
			err  error
		)
		if transcribe.IsVideo(ext) {
			text, err = client.TranscribeVideo(ctx, localPath)
		} else {
			text, err = client.TranscribeAudio(ctx, localPath)
		}
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			return nil, errors.New("empty transcript")
		}
		return []string{text}, nil
	}
	return coreingest.ExtractTextPages(localPath)
}
