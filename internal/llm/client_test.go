package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGenerate_ReturnsTrimmedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"response":"  The deadline is December 31, 2024.  ","done":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "llama3.2", 5*time.Second)
	got, err := c.Generate(context.Background(), "extract the deadline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "The deadline is December 31, 2024." {
		t.Errorf("unexpected response %q", got)
	}
	if c.Stats.Snapshot().Count != 1 {
		t.Errorf("expected 1 recorded sample, got %d", c.Stats.Snapshot().Count)
	}
}

func TestGenerateOnce_ServerErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "llama3.2", 5*time.Second)
	_, err := c.generateOnce(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsRetryable(err) {
		t.Errorf("expected retryable error, got %v", err)
	}
}

func TestGenerate_BadRequestIsNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad model", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "nope", 5*time.Second)
	if _, err := c.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestGenerate_ErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"model not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "missing", 5*time.Second)
	if _, err := c.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for error field in response")
	}
}

func TestGenerate_EmptyResponseIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"   ","done":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "llama3.2", 5*time.Second)
	if _, err := c.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for blank completion")
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "llama3.2", 5*time.Second)
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	srv.Close()
	if err := c.Ping(context.Background()); err == nil {
		t.Error("expected error after server shutdown")
	}
}

func TestBackoff_CapsAndGrows(t *testing.T) {
	for attempt := 0; attempt < 6; attempt++ {
		d := Backoff(attempt)
		if d < time.Second {
			t.Errorf("attempt %d: backoff %v below base", attempt, d)
		}
		if d > 45*time.Second {
			t.Errorf("attempt %d: backoff %v above cap+jitter", attempt, d)
		}
	}
}
