package ingest

import "testing"

func TestChunkVectorIDs_Deterministic(t *testing.T) {
	chunks := []Chunk{{ChunkIndex: 0}, {ChunkIndex: 1}, {ChunkIndex: 2}}
	first := chunkVectorIDs(42, chunks)
	second := chunkVectorIDs(42, chunks)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("id %d changed between runs: %d vs %d", i, first[i], second[i])
		}
	}
	for i := 1; i < len(first); i++ {
		if first[i] != first[i-1]+1 {
			t.Errorf("ids not consecutive: %v", first)
		}
	}
}

func TestChunkVectorIDs_DistinctAcrossDocuments(t *testing.T) {
	chunks := []Chunk{{ChunkIndex: 0}}
	a := chunkVectorIDs(1, chunks)[0]
	b := chunkVectorIDs(2, chunks)[0]
	if a == b {
		t.Fatalf("documents 1 and 2 share vector id %d", a)
	}
}

func TestDocDeleteExpr(t *testing.T) {
	if got := docDeleteExpr(17); got != "doc_id == 17" {
		t.Fatalf("docDeleteExpr = %q", got)
	}
}
