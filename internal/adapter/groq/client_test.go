package groq_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Strob0t/SkillBridge/internal/adapter/groq"
	"github.com/Strob0t/SkillBridge/internal/domain"
	"github.com/Strob0t/SkillBridge/internal/port/llm"
)

var testParams = llm.Params{Temperature: 0.8, TopP: 0.9, MaxTokens: 4000}

func testMessages() []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: "system"},
		{Role: llm.RoleUser, Content: "hello"},
	}
}

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Fatalf("unexpected auth: %q", auth)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["model"] != "llama-3.3-70b-versatile" {
			t.Errorf("unexpected model: %v", body["model"])
		}
		if body["temperature"] != 0.8 || body["top_p"] != 0.9 {
			t.Errorf("unexpected sampling params: %v %v", body["temperature"], body["top_p"])
		}
		if body["max_tokens"] != float64(4000) {
			t.Errorf("unexpected max_tokens: %v", body["max_tokens"])
		}
		if body["stream"] != false {
			t.Errorf("expected stream=false, got %v", body["stream"])
		}
		msgs, _ := body["messages"].([]any)
		if len(msgs) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(msgs))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"status\":\"OK\"}"}}]}`))
	}))
	defer srv.Close()

	client := groq.NewClient(srv.URL, "test-key", 0)
	text, err := client.Complete(context.Background(), "llama-3.3-70b-versatile", testMessages(), testParams)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != `{"status":"OK"}` {
		t.Fatalf("unexpected content: %q", text)
	}
}

func TestCompleteProviderErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"Invalid API Key"}}`, domain.ErrAuth},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down"}}`, domain.ErrRateLimited},
		{"decommissioned", http.StatusBadRequest, `{"error":{"code":"model_decommissioned"}}`, domain.ErrModelDecommissioned},
		{"server error", http.StatusInternalServerError, `oops`, domain.ErrUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := groq.NewClient(srv.URL, "test-key", 0)
			_, err := client.Complete(context.Background(), "m", testMessages(), testParams)

			var pe *groq.ProviderError
			if !errors.As(err, &pe) {
				t.Fatalf("expected ProviderError, got %T: %v", err, err)
			}
			if pe.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, pe.StatusCode)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCompleteTruncatesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer srv.Close()

	client := groq.NewClient(srv.URL, "test-key", 0)
	_, err := client.Complete(context.Background(), "m", testMessages(), testParams)

	var pe *groq.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if len(pe.Body) != 200 {
		t.Errorf("expected body truncated to 200 bytes, got %d", len(pe.Body))
	}
}

func TestCompleteMalformedResponse(t *testing.T) {
	for name, body := range map[string]string{
		"no choices":  `{"choices":[]}`,
		"no message":  `{"choices":[{"index":0}]}`,
		"not json":    `<html>`,
		"empty reply": `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			client := groq.NewClient(srv.URL, "test-key", 0)
			_, err := client.Complete(context.Background(), "m", testMessages(), testParams)
			if !errors.Is(err, groq.ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
			if !errors.Is(err, domain.ErrUpstream) {
				t.Fatalf("expected ErrUpstream classification, got %v", err)
			}
		})
	}
}

func TestCompleteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := groq.NewClient(url, "test-key", 0)
	_, err := client.Complete(context.Background(), "m", testMessages(), testParams)

	var te *groq.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("expected ErrUpstream classification, got %v", err)
	}
}

func TestCompleteMissingKey(t *testing.T) {
	client := groq.NewClient("http://127.0.0.1:1", "", 0)
	_, err := client.Complete(context.Background(), "m", testMessages(), testParams)
	if !errors.Is(err, domain.ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" || r.Method != http.MethodGet {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"llama-3.3-70b-versatile"},{"id":"gemma2-9b-it"}]}`))
	}))
	defer srv.Close()

	client := groq.NewClient(srv.URL+"/", "test-key", 0)
	ids, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "llama-3.3-70b-versatile" {
		t.Fatalf("unexpected models: %v", ids)
	}
}
