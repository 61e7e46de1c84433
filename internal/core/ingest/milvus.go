package ingest

import (
	"context"
	"fmt"

	"llm-quiz/config"

	milvusclient "github.com/milvus-io/milvus-sdk-go/v2/client"
	milvusentity "github.com/milvus-io/milvus-sdk-go/v2/entity"
)

const milvusVectorDim = 1536

const milvusContentMaxLength = 4096

// UpsertMilvusVectors ensures the material collection exists, drops any
// vectors previously stored for the document, and inserts the chunk
// embeddings together with their content, so search can return snippets
// without a second lookup. Returns the assigned IDs and the collection name.
func UpsertMilvusVectors(ctx context.Context, vectors [][]float32, docID int64, chunks []Chunk) ([]int64, string, error) {
	cli, err := milvusclient.NewClient(ctx, milvusclient.Config{Address: config.Cfg.Milvus.Address})
	if err != nil {
		return nil, "", err
	}
	defer cli.Close()

	collection := config.Cfg.Milvus.Collection
	if collection == "" {
		collection = "material_chunks"
	}
	exists, err := cli.HasCollection(ctx, collection)
	if err != nil {
		return nil, "", err
	}
	if exists {
		// Re-ingest: remove the document's previous vectors first, so a
		// shrunken document leaves no stale tail behind.
		if err := cli.Delete(ctx, collection, "", docDeleteExpr(docID)); err != nil {
			return nil, "", err
		}
	} else if err := createMaterialCollection(ctx, cli, collection); err != nil {
		return nil, "", err
	}

	docIDs := make([]int64, len(chunks))
	chunkIdxs := make([]int32, len(chunks))
	pageIdxs := make([]int32, len(chunks))
	contents := make([]string, len(chunks))
	for i, ch := range chunks {
		docIDs[i] = docID
		chunkIdxs[i] = ch.ChunkIndex
		pageIdxs[i] = ch.PageIndex
		contents[i] = truncateRunes(ch.Content, milvusContentMaxLength)
	}

	ids := chunkVectorIDs(docID, chunks)
	colID := milvusentity.NewColumnInt64("id", ids)
	colDoc := milvusentity.NewColumnInt64("doc_id", docIDs)
	colChunk := milvusentity.NewColumnInt32("chunk_index", chunkIdxs)
	colPage := milvusentity.NewColumnInt32("page_index", pageIdxs)
	colContent := milvusentity.NewColumnVarChar("content", contents)
	colVec := milvusentity.NewColumnFloatVector("embedding", milvusVectorDim, vectors)

	if _, err := cli.Insert(ctx, collection, "", colID, colDoc, colChunk, colPage, colContent, colVec); err != nil {
		return nil, "", err
	}
	return ids, collection, nil
}

// chunkVectorIDs derives the primary key of each chunk vector from its
// document and chunk index, so chunk k of document d always lands on the
// same key.
func chunkVectorIDs(docID int64, chunks []Chunk) []int64 {
	ids := make([]int64, len(chunks))
	for i := range chunks {
		ids[i] = (docID << 20) + int64(chunks[i].ChunkIndex)
	}
	return ids
}

// docDeleteExpr selects every vector of one document.
func docDeleteExpr(docID int64) string {
	return fmt.Sprintf("doc_id == %d", docID)
}

func createMaterialCollection(ctx context.Context, cli milvusclient.Client, collection string) error {
	schema := milvusentity.NewSchema().WithName(collection).WithDescription("quiz source material chunks")
	schema.WithField(milvusentity.NewField().WithName("id").WithDataType(milvusentity.FieldTypeInt64).WithIsPrimaryKey(true))
	schema.WithField(milvusentity.NewField().WithName("doc_id").WithDataType(milvusentity.FieldTypeInt64))
	schema.WithField(milvusentity.NewField().WithName("chunk_index").WithDataType(milvusentity.FieldTypeInt32))
	schema.WithField(milvusentity.NewField().WithName("page_index").WithDataType(milvusentity.FieldTypeInt32))
	schema.WithField(milvusentity.NewField().WithName("content").WithDataType(milvusentity.FieldTypeVarChar).WithMaxLength(milvusContentMaxLength))
	schema.WithField(milvusentity.NewField().WithName("embedding").WithDataType(milvusentity.FieldTypeFloatVector).WithDim(milvusVectorDim))

	if err := cli.CreateCollection(ctx, schema, 2); err != nil {
		return err
	}

	hnswCfg := config.Cfg.Milvus.IndexHNSWConfig
	m, ef := hnswCfg.M, hnswCfg.EfConstruction
	if m <= 0 {
		m = 16
	}
	if ef <= 0 {
		ef = 128
	}
	metric := milvusentity.MetricType(hnswCfg.MetricType)
	if metric == "" {
		metric = milvusentity.COSINE
	}
	idx, err := milvusentity.NewIndexHNSW(metric, m, ef)
	if err != nil {
		return err
	}
	return cli.CreateIndex(ctx, collection, "embedding", idx, false)
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
