package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClaudeCompleter(t *testing.T) {
	completer := NewClaudeCompleter("test-api-key", "claude-sonnet-4-20250514")

	if completer == nil {
		t.Fatal("Expected non-nil completer")
	}

	if completer.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", completer.apiKey)
	}

	if completer.model != "claude-sonnet-4-20250514" {
		t.Errorf("Expected model 'claude-sonnet-4-20250514', got '%s'", completer.model)
	}

	if completer.endpoint != ClaudeAPIEndpoint {
		t.Errorf("Expected endpoint '%s', got '%s'", ClaudeAPIEndpoint, completer.endpoint)
	}

	if completer.httpClient == nil {
		t.Error("Expected non-nil HTTP client")
	}
}

func TestNewClaudeCompleterDefaultModel(t *testing.T) {
	completer := NewClaudeCompleter("key", "")

	if completer.model != ClaudeModel {
		t.Errorf("Expected default model '%s', got '%s'", ClaudeModel, completer.model)
	}
}

func TestComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request.
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}

		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Error("Missing or incorrect API key header")
		}

		if r.Header.Get("Anthropic-Version") != ClaudeAPIVersion {
			t.Error("Missing or incorrect API version header")
		}

		claudeResp := ClaudeResponse{
			ID:   "test-id",
			Type: "message",
			Role: "assistant",
			Content: []Content{
				{
					Type: "text",
					Text: "```latex\nrevised section\n```",
				},
			},
			Model: ClaudeModel,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(claudeResp)
	}))
	defer server.Close()

	completer := NewClaudeCompleter("test-key", "")
	completer.endpoint = server.URL

	text, err := completer.Complete(context.Background(), "Test prompt")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if !strings.Contains(text, "revised section") {
		t.Errorf("Response doesn't contain expected content: '%s'", text)
	}
}

func TestCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "Invalid request"}`))
	}))
	defer server.Close()

	completer := NewClaudeCompleter("test-key", "")
	completer.endpoint = server.URL

	_, err := completer.Complete(context.Background(), "Test prompt")
	if err == nil {
		t.Error("Expected error for bad request, got nil")
	}

	if !strings.Contains(err.Error(), "400") {
		t.Errorf("Error should mention status code 400: %v", err)
	}
}

func TestCompleteEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claudeResp := ClaudeResponse{
			Content: []Content{},
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(claudeResp)
	}))
	defer server.Close()

	completer := NewClaudeCompleter("test-key", "")
	completer.endpoint = server.URL

	_, err := completer.Complete(context.Background(), "Test prompt")
	if err == nil {
		t.Error("Expected error for empty content, got nil")
	}

	if !strings.Contains(err.Error(), "no content") {
		t.Errorf("Error should mention 'no content': %v", err)
	}
}

func TestCompleteContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	completer := NewClaudeCompleter("test-key", "")
	completer.endpoint = server.URL

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := completer.Complete(ctx, "Test prompt")
	if err == nil {
		t.Error("Expected error for cancelled context, got nil")
	}
}

func TestCompleteRequestBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ClaudeRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}

		if len(req.Messages) != 1 {
			t.Fatalf("Expected 1 message, got %d", len(req.Messages))
		}

		if req.Messages[0].Role != "user" {
			t.Errorf("Expected role 'user', got '%s'", req.Messages[0].Role)
		}

		if req.Messages[0].Content != "the prompt" {
			t.Errorf("Expected prompt content, got '%s'", req.Messages[0].Content)
		}

		claudeResp := ClaudeResponse{
			Content: []Content{
				{
					Type: "text",
					Text: "ok",
				},
			},
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(claudeResp)
	}))
	defer server.Close()

	completer := NewClaudeCompleter("test-key", "")
	completer.endpoint = server.URL

	_, err := completer.Complete(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
}

func TestHTTPClientTimeout(t *testing.T) {
	completer := NewClaudeCompleter("test-key", "")

	// Verify timeout is set.
	if completer.httpClient.Timeout != 120*time.Second {
		t.Errorf("Expected timeout 120s, got %v", completer.httpClient.Timeout)
	}
}
