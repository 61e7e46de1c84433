package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"llm-quiz/config"
)

// ModelClient produces free text from a (system prompt, context) pair.
// A failed call returns an error; the generation loop treats that as zero
// contribution for the round, never as a fatal condition.
type ModelClient interface {
	Complete(ctx context.Context, prompt, contextText string) (string, error)
}

type generateRequest struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// HTTPModelClient talks to the self-hosted model server's /generate endpoint.
// The model server speaks its own minimal JSON protocol, so this is a plain
// HTTP client rather than a vendor SDK.
type HTTPModelClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPModelClient() *HTTPModelClient {
	timeout := time.Duration(config.Cfg.ModelServer.GenerateTimeout) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &HTTPModelClient{
		baseURL: strings.TrimRight(config.Cfg.ModelServer.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPModelClient) Complete(ctx context.Context, prompt, contextText string) (string, error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt, Context: contextText})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("model server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Response, nil
}
