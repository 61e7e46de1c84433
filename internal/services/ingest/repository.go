package ingest

import (
	"crypto/sha256"
	"encoding/hex"

	"llm-quiz/internal/core/ingest"
	"llm-quiz/internal/database/model"

	"gorm.io/gorm"
)

func GetDocumentByID(db *gorm.DB, docID int64) (*model.Document, error) {
	var doc model.Document
	if err := db.First(&doc, docID).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func HasChunks(db *gorm.DB, docID int64) (bool, error) {
	var count int64
	if err := db.Model(&model.Chunk{}).Where("document_id = ?", docID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func DeleteChunksByDocID(db *gorm.DB, docID int64) error {
	return db.Where("document_id = ?", docID).Delete(&model.Chunk{}).Error
}

func UpdateDocumentStatus(db *gorm.DB, docID int64, status string) error {
	return db.Model(&model.Document{}).Where("id = ?", docID).Update("status", status).Error
}

// ChunkContents returns the ordered chunk texts for a set of documents,
// flattened in document then chunk order.
func ChunkContents(db *gorm.DB, docIDs []int64) ([]string, error) {
	var rows []model.Chunk
	if err := db.Where("document_id IN ?", docIDs).
		Order("document_id, chunk_index").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Content)
	}
	return out, nil
}

func InsertChunks(db *gorm.DB, docID int64, chunks []ingest.Chunk, milvusIDs []int64, collection string) error {
	records := make([]model.Chunk, 0, len(chunks))
	for i, ch := range chunks {
		content := ch.Content
		preview := ingest.BuildContentPreview(content, 512)
		h := sha256.Sum256([]byte(content))
		hash := hex.EncodeToString(h[:])
		var milvusID int64
		if i < len(milvusIDs) {
			milvusID = milvusIDs[i]
		}
		pageIdx := ch.PageIndex
		records = append(records, model.Chunk{
			DocumentID:       docID,
			ChunkIndex:       ch.ChunkIndex,
			PageIndex:        &pageIdx,
			Content:          content,
			ContentPreview:   &preview,
			MilvusCollection: collection,
			MilvusID:         milvusID,
			ContentHash:      hash,
		})
	}
	return db.Create(&records).Error
}
