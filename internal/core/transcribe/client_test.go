package transcribe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestIsMedia(t *testing.T) {
	for _, ext := range []string{".mp4", ".mp3", ".wav", ".m4a", ".MP3"} {
		if !IsMedia(ext) {
			t.Errorf("IsMedia(%q) = false", ext)
		}
	}
	for _, ext := range []string{".pdf", ".txt", ""} {
		if IsMedia(ext) {
			t.Errorf("IsMedia(%q) = true", ext)
		}
	}
}

func TestIsVideo(t *testing.T) {
	if !IsVideo(".mp4") || !IsVideo(".MP4") {
		t.Errorf("mp4 should be video")
	}
	if IsVideo(".mp3") {
		t.Errorf("mp3 is not video")
	}
}

func TestUpload_SendsMultipartAndReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe_audio" {
			t.Errorf("path = %q", r.URL.Path)
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer f.Close()
		io.Copy(io.Discard, f)
		io.WriteString(w, "전사된 텍스트입니다.")
	}))
	defer srv.Close()

	tmp := filepath.Join(t.TempDir(), "sample.mp3")
	if err := os.WriteFile(tmp, []byte("fake audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := &Client{baseURL: srv.URL, client: srv.Client()}
	got, err := c.TranscribeAudio(context.Background(), tmp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "전사된 텍스트입니다." {
		t.Fatalf("transcript = %q", got)
	}
}

func TestUpload_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tmp := filepath.Join(t.TempDir(), "sample.wav")
	if err := os.WriteFile(tmp, []byte("fake audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := &Client{baseURL: srv.URL, client: srv.Client()}
	if _, err := c.TranscribeAudio(context.Background(), tmp); err == nil {
		t.Fatalf("expected error on 503")
	}
}
