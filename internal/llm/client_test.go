package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sankalp112kashyap/SoftwareCode-Debloat-LLMs/internal/config"
)

func testConfig() config.Config {
	return config.Config{MaxTokens: 4000, Temperature: 0.1}
}

func TestInvokeUnsupportedModel(t *testing.T) {
	c := NewClient(testConfig(), nil)
	_, err := c.Invoke(context.Background(), "gpt-99", "prompt", "code")
	if !errors.Is(err, ErrUnsupportedModel) {
		t.Fatalf("Invoke() error = %v, want ErrUnsupportedModel", err)
	}
}

func TestInvokeMissingCredentials(t *testing.T) {
	c := NewClient(testConfig(), nil)

	for _, alias := range []string{"claude-3-7-sonnet", "gpt-4o", "gemini-2-0-flash", "deepseek-r1"} {
		t.Run(alias, func(t *testing.T) {
			_, err := c.Invoke(context.Background(), alias, "prompt", "code")
			if !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("Invoke(%s) error = %v, want ErrMissingCredentials", alias, err)
			}
			if !errors.Is(err, ErrAuthentication) {
				t.Errorf("Invoke(%s) error should also match ErrAuthentication", alias)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt("Debloat this.", "x = 1")
	want := "Debloat this.\n\n```\nx = 1\n```"
	if got != want {
		t.Errorf("BuildPrompt() = %q, want %q", got, want)
	}
}

func TestModelsSorted(t *testing.T) {
	c := NewClient(testConfig(), nil)
	models := c.Models()
	if len(models) == 0 {
		t.Fatal("no models registered")
	}
	for i := 1; i < len(models); i++ {
		if models[i-1] >= models[i] {
			t.Fatalf("models not sorted: %v", models)
		}
	}
}

func TestAvailable(t *testing.T) {
	cfg := testConfig()
	cfg.OpenAIAPIKey = "sk-test"
	c := NewClient(cfg, nil)

	tests := []struct {
		alias string
		want  bool
	}{
		{"gpt-4o", true},
		{"claude-3-7-sonnet", false},
		{"llama3", true}, // local, no credentials needed
		{"unknown", false},
	}

	for _, tt := range tests {
		if got := c.Available(tt.alias); got != tt.want {
			t.Errorf("Available(%q) = %v, want %v", tt.alias, got, tt.want)
		}
	}
}

func newDeepSeekTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := testConfig()
	cfg.DeepSeekAPIKey = "sk-deepseek"
	c := NewClient(cfg, nil)
	c.deepSeekURL = srv.URL
	return c
}

func TestDeepSeekBackend(t *testing.T) {
	c := newDeepSeekTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-deepseek" {
			t.Errorf("Authorization = %q", got)
		}
		var req deepSeekRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if req.Model != "deepseek-reasoner" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "x = 1") {
			t.Errorf("messages = %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(deepSeekResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Role: "assistant", Content: "```\nx = 1\n```"}}},
		})
	})

	out, err := c.Invoke(context.Background(), "deepseek-r1", "Debloat this.", "x = 1")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if out != "```\nx = 1\n```" {
		t.Errorf("Invoke() = %q", out)
	}
}

func TestDeepSeekStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrAuthentication},
		{http.StatusForbidden, ErrAuthentication},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusInternalServerError, ErrRequest},
	}

	for _, tt := range tests {
		c := newDeepSeekTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", tt.status)
		})
		_, err := c.Invoke(context.Background(), "deepseek-r1", "p", "s")
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: error = %v, want match for %v", tt.status, err, tt.want)
		}
	}
}

func TestDeepSeekEmptyChoices(t *testing.T) {
	c := newDeepSeekTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(deepSeekResponse{})
	})
	_, err := c.Invoke(context.Background(), "deepseek-r1", "p", "s")
	if !errors.Is(err, ErrRequest) {
		t.Errorf("error = %v, want ErrRequest", err)
	}
}

func TestGeminiBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "g-key" {
			t.Errorf("x-goog-api-key = %q", got)
		}
		if !strings.Contains(r.URL.Path, "gemini-2.0-flash") {
			t.Errorf("path = %q, want model id in path", r.URL.Path)
		}

		var resp geminiResponse
		resp.Candidates = append(resp.Candidates, struct {
			Content geminiContent `json:"content"`
		}{Content: geminiContent{Parts: []geminiPart{{Text: "rewritten"}}}})
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig()
	cfg.GoogleAPIKey = "g-key"
	c := NewClient(cfg, nil)
	c.geminiURL = srv.URL + "/models/%s:generateContent"

	out, err := c.Invoke(context.Background(), "gemini-2-0-flash", "p", "s")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if out != "rewritten" {
		t.Errorf("Invoke() = %q", out)
	}
}
