package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPModelClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Prompt != "프롬프트" || req.Context != "맥락" {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "생성된 텍스트"})
	}))
	defer srv.Close()

	c := &HTTPModelClient{baseURL: srv.URL, client: srv.Client()}
	got, err := c.Complete(context.Background(), "프롬프트", "맥락")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "생성된 텍스트" {
		t.Fatalf("response = %q", got)
	}
}

func TestHTTPModelClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := &HTTPModelClient{baseURL: srv.URL, client: srv.Client()}
	if _, err := c.Complete(context.Background(), "p", "c"); err == nil {
		t.Fatalf("expected error on 503")
	}
}
