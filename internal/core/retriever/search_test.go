package retriever

import (
	"context"
	"testing"
)

func TestEmbedQuery_Empty(t *testing.T) {
	if _, err := EmbedQuery(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty query")
	}
}

func TestSearchMilvus_EmptyVector(t *testing.T) {
	hits, err := SearchMilvus(context.Background(), nil, 10, Filters{})
	if err != nil {
		t.Fatalf("empty vector should short-circuit without error: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("hits = %d, want 0", len(hits))
	}
}

func TestBuildExpr(t *testing.T) {
	if got := buildExpr(Filters{}); got != "" {
		t.Fatalf("no filters should produce no expression, got %q", got)
	}
	got := buildExpr(Filters{DocIDs: []int64{3, 7, 11}})
	if got != "doc_id in [3,7,11]" {
		t.Fatalf("buildExpr = %q", got)
	}
}
