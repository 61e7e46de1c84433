package generate

import (
	"context"
	"math"
	"testing"
)

// directionalEmbedder maps known strings to fixed 2d vectors so ranking is
// predictable.
type directionalEmbedder struct {
	vectors map[string][]float32
}

func (d directionalEmbedder) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	out := make([][]float32, len(inputs))
	for i, in := range inputs {
		if v, ok := d.vectors[in]; ok {
			out[i] = v
		} else {
			out[i] = []float32{0, 1}
		}
	}
	return out, nil
}

func TestGroupIndexSearch_RanksBySimilarity(t *testing.T) {
	emb := directionalEmbedder{vectors: map[string][]float32{
		"가까운 자료": {1, 0},
		"먼 자료":   {0, 1},
		"중간 자료":  {1, 1},
		"질의":     {1, 0},
	}}
	idx, err := buildGroupIndex(context.Background(), emb, []string{"먼 자료", "중간 자료", "가까운 자료"})
	if err != nil {
		t.Fatalf("buildGroupIndex: %v", err)
	}

	hits, err := idx.search(context.Background(), emb, "질의", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	if hits[0] != "가까운 자료" || hits[1] != "중간 자료" {
		t.Fatalf("ranking wrong: %q", hits)
	}
}

func TestGroupIndexSearch_TopKCappedAtGroupSize(t *testing.T) {
	emb := directionalEmbedder{vectors: map[string][]float32{}}
	idx, err := buildGroupIndex(context.Background(), emb, []string{"하나", "둘"})
	if err != nil {
		t.Fatalf("buildGroupIndex: %v", err)
	}
	hits, err := idx.search(context.Background(), emb, "질의", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
}

func TestCosineSimilarity(t *testing.T) {
	if got := cosineSimilarity([]float32{1, 0}, []float32{1, 0}); math.Abs(float64(got)-1) > 1e-6 {
		t.Errorf("identical vectors: %v", got)
	}
	if got := cosineSimilarity([]float32{1, 0}, []float32{0, 1}); math.Abs(float64(got)) > 1e-6 {
		t.Errorf("orthogonal vectors: %v", got)
	}
	if got := cosineSimilarity([]float32{0, 0}, []float32{1, 0}); got != 0 {
		t.Errorf("zero vector: %v", got)
	}
}
