package transcribe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"llm-quiz/config"
)

// Client uploads media files to the model server's transcription endpoints
// and returns the plain-text transcript. The endpoints speak plain multipart
// HTTP, so no vendor SDK applies.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient() *Client {
	timeout := time.Duration(config.Cfg.ModelServer.TranscribeTimeout) * time.Second
	if timeout <= 0 {
		timeout = 300 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(config.Cfg.ModelServer.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// TranscribeVideo extracts the audio track server-side and transcribes it.
func (c *Client) TranscribeVideo(ctx context.Context, path string) (string, error) {
	return c.upload(ctx, "/transcribe_video", path)
}

// TranscribeAudio transcribes a wav/mp3/m4a file.
func (c *Client) TranscribeAudio(ctx context.Context, path string) (string, error) {
	return c.upload(ctx, "/transcribe_audio", path)
}

// IsMedia reports whether ext (with leading dot) goes through transcription
// rather than text extraction.
func IsMedia(ext string) bool {
	switch strings.ToLower(ext) {
	case ".mp4", ".mp3", ".wav", ".m4a":
		return true
	}
	return false
}

// IsVideo reports whether ext needs the video endpoint.
func IsVideo(ext string) bool {
	return strings.ToLower(ext) == ".mp4"
}

func (c *Client) upload(ctx context.Context, endpoint, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("transcription failed: %d - %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return string(raw), nil
}
