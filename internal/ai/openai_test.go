package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resumekit/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewOpenAIClient(config.OpenAIConfig{
		APIKey:         "test-key",
		Model:          "gpt-4o",
		BaseURL:        server.URL,
		TimeoutSeconds: 5,
	})
}

func TestNewOpenAIClientUnconfigured(t *testing.T) {
	if client := NewOpenAIClient(config.OpenAIConfig{}); client != nil {
		t.Fatal("empty api key must yield nil client")
	}
}

func TestOpenAIClientComplete(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  hello there \n"}},
			},
		})
	})

	got, err := client.Complete(context.Background(), "sys", "user msg")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello there" {
		t.Fatalf("content = %q", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o" {
		t.Fatalf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Content != "user msg" {
		t.Fatalf("messages = %+v", gotReq.Messages)
	}
}

func TestOpenAIClientUpstreamError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit_error"}}`))
	})

	_, err := client.Complete(context.Background(), "sys", "user")
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("err = %v, want upstream error surfaced", err)
	}
}

func TestOpenAIClientEmptyChoices(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.Complete(context.Background(), "sys", "user")
	if err == nil || !strings.Contains(err.Error(), "missing choices") {
		t.Fatalf("err = %v, want missing choices", err)
	}
}
