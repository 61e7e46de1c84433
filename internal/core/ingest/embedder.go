package ingest

import (
	"context"
	"errors"

	"llm-quiz/config"
	"llm-quiz/pkg/logger"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

type openAIEmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type openAIEmbeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// EmbedOpenAI calls the OpenAI embeddings endpoint for the given inputs and
// returns one vector per input, preserving order. Inputs are sent in batches
// of up to 100.
func EmbedOpenAI(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return [][]float32{}, nil
	}
	key := config.Cfg.OpenAI.Key
	if key == "" {
		return nil, errors.New("missing openai key")
	}
	var all [][]float32
	for i := 0; i < len(inputs); i += 100 {
		j := i + 100
		if j > len(inputs) {
			j = len(inputs)
		}
		batch := inputs[i:j]
		logger.WithFields(map[string]interface{}{
			"model":       config.Cfg.OpenAI.EmbeddingModel,
			"batch_start": i,
			"batch_size":  len(batch),
		}).Debug("openai: embedding batch start")

		vectors, err := embedBatch(ctx, key, batch)
		if err != nil {
			logger.Error(err, "%v: embedding batch %d-%d failed", config.ModuleOpenAI, i, j)
			return nil, err
		}
		all = append(all, vectors...)
	}
	return all, nil
}

func embedBatch(ctx context.Context, apiKey string, batch []string) ([][]float32, error) {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	reqBody := openAIEmbeddingRequest{Model: config.Cfg.OpenAI.EmbeddingModel, Input: batch}
	var out openAIEmbeddingResponse
	if err := client.Post(ctx, "/embeddings", reqBody, &out); err != nil {
		return nil, err
	}
	if out.Error != nil {
		return nil, errors.New(out.Error.Message)
	}
	vectors := make([][]float32, len(out.Data))
	for i := range out.Data {
		src := out.Data[i].Embedding
		vec := make([]float32, len(src))
		for k := range src {
			vec[k] = float32(src[k])
		}
		vectors[i] = vec
	}
	return vectors, nil
}
