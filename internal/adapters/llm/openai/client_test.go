package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/janosbartek-debug/aqua-astrae/internal/adapters/llm/openai"
	"github.com/janosbartek-debug/aqua-astrae/internal/domain"
	"github.com/janosbartek-debug/aqua-astrae/internal/ports"
)

func testPrompt() ports.Prompt {
	return ports.Prompt{
		System: "You are the Aqua Astrae Oraculum.",
		User:   "Question: What lies ahead?\nCards: p1: The Fool (upright)",
	}
}

func TestInvoke_Completion_Success(t *testing.T) {
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("bad auth header: %s", r.Header.Get("Authorization"))
		}

		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "  A hopeful reading.  "}},
			},
			"usage": map[string]any{"total_tokens": 321},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := openai.NewClient(srv.Client(), "test-key", srv.URL, slog.Default())

	res, err := client.Invoke(context.Background(), testPrompt(), "gpt-4o-mini")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Text != "A hopeful reading." {
		t.Errorf("unexpected text: %q", res.Text)
	}
	if !res.Tokens.Known || res.Tokens.Total != 321 {
		t.Errorf("unexpected usage: %+v", res.Tokens)
	}
	if res.Protocol != ports.ProtocolCompletion {
		t.Errorf("unexpected protocol: %s", res.Protocol)
	}
	if gotReq["model"] != "gpt-4o-mini" {
		t.Errorf("request model: %v", gotReq["model"])
	}
}

func TestInvoke_Completion_NoUsageReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Reading."}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := openai.NewClient(srv.Client(), "key", srv.URL, slog.Default())

	res, err := client.Invoke(context.Background(), testPrompt(), "gpt-4o-mini")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Tokens.Known {
		t.Errorf("usage should be unknown: %+v", res.Tokens)
	}
}

func TestInvoke_Completion_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	client := openai.NewClient(srv.Client(), "key", srv.URL, slog.Default())

	_, err := client.Invoke(context.Background(), testPrompt(), "gpt-4o-mini")

	var pe *domain.ProviderHTTPError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderHTTPError, got %v", err)
	}
	if pe.Status != http.StatusTooManyRequests || pe.Details != "rate limited" {
		t.Errorf("unexpected error fields: %+v", pe)
	}
}

func TestInvoke_MissingAPIKey(t *testing.T) {
	client := openai.NewClient(http.DefaultClient, "", "http://unused", slog.Default())

	_, err := client.Invoke(context.Background(), testPrompt(), "gpt-4o-mini")
	if !errors.Is(err, domain.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}
