package generate

import (
	"context"
	"errors"
	"math"
	"sort"

	"llm-quiz/internal/core/ingest"
)

// Embedder computes embedding vectors for texts, one vector per input.
type Embedder interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

// OpenAIEmbedder is the default Embedder backed by the OpenAI embeddings API.
type OpenAIEmbedder struct{}

func (OpenAIEmbedder) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	return ingest.EmbedOpenAI(ctx, inputs)
}

// groupIndex is a transient similarity index over one document group. It
// lives for a single round; embeddings are computed once per group per round
// regardless of how many subtopics query it.
type groupIndex struct {
	chunks  []string
	vectors [][]float32
}

func buildGroupIndex(ctx context.Context, emb Embedder, group []string) (*groupIndex, error) {
	vectors, err := emb.Embed(ctx, group)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(group) {
		return nil, errors.New("embedding count mismatch")
	}
	return &groupIndex{chunks: group, vectors: vectors}, nil
}

// search returns up to topK chunks ranked by cosine similarity to query;
// the effective K never exceeds the group size.
func (g *groupIndex) search(ctx context.Context, emb Embedder, query string, topK int) ([]string, error) {
	if topK <= 0 {
		topK = 8
	}
	if topK > len(g.chunks) {
		topK = len(g.chunks)
	}
	vecs, err := emb.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, errors.New("no embedding returned")
	}
	qv := vecs[0]

	order := make([]int, len(g.chunks))
	for i := range order {
		order[i] = i
	}
	sims := make([]float32, len(g.chunks))
	for i, v := range g.vectors {
		sims[i] = cosineSimilarity(qv, v)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sims[order[a]] > sims[order[b]]
	})

	out := make([]string, 0, topK)
	for _, idx := range order[:topK] {
		out = append(out, g.chunks[idx])
	}
	return out, nil
}

func cosineSimilarity(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
