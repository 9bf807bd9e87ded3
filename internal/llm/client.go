// Package llm provides a uniform client over heterogeneous LLM backends
// using langchaingo, plus raw HTTP adapters for providers it does not cover.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/sankalp112kashyap/SoftwareCode-Debloat-LLMs/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Client dispatches invocations to the backend registered for a model alias.
// It performs no retries; callers bound each call with a context deadline and
// decide retry policy themselves.
type Client struct {
	cfg        config.Config
	models     map[string]ModelSpec
	httpClient *http.Client

	// Endpoints for the raw HTTP backends, overridable in tests.
	deepSeekURL string
	geminiURL   string
}

// NewClient creates a client from configuration and a model registry.
// A nil registry means the built-in aliases.
func NewClient(cfg config.Config, models map[string]ModelSpec) *Client {
	if models == nil {
		models = DefaultRegistry()
	}
	return &Client{
		cfg:         cfg,
		models:      models,
		httpClient:  &http.Client{},
		deepSeekURL: deepSeekEndpoint,
		geminiURL:   geminiEndpoint,
	}
}

// Models returns the known model aliases, sorted.
func (c *Client) Models() []string {
	aliases := make([]string, 0, len(c.models))
	for alias := range c.models {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// Spec returns the registry entry for an alias.
func (c *Client) Spec(alias string) (ModelSpec, bool) {
	spec, ok := c.models[alias]
	return spec, ok
}

// Available reports whether the credentials needed by an alias's backend are
// present. Ollama serves local models and is always considered available.
func (c *Client) Available(alias string) bool {
	spec, ok := c.models[alias]
	if !ok {
		return false
	}
	switch spec.Provider {
	case ProviderAnthropic:
		return c.cfg.AnthropicAPIKey != ""
	case ProviderOpenAI:
		return c.cfg.OpenAIAPIKey != ""
	case ProviderGoogle:
		return c.cfg.GoogleAPIKey != ""
	case ProviderDeepSeek:
		return c.cfg.DeepSeekAPIKey != ""
	case ProviderOllama:
		return true
	}
	return false
}

// BuildPrompt combines prompt text and source into the single user message
// sent to every backend.
func BuildPrompt(promptText, source string) string {
	return promptText + "\n\n```\n" + source + "\n```"
}

// Invoke sends prompt and source text to the backend serving the model alias
// and returns the raw model output.
func (c *Client) Invoke(ctx context.Context, alias, promptText, source string) (string, error) {
	spec, ok := c.models[alias]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedModel, alias)
	}

	full := BuildPrompt(promptText, source)
	slog.Debug("invoking model", "alias", alias, "provider", spec.Provider, "model_id", spec.ModelID, "prompt_len", len(full))

	start := time.Now()
	var out string
	var err error

	switch spec.Provider {
	case ProviderAnthropic:
		out, err = c.generateAnthropic(ctx, spec.ModelID, full)
	case ProviderOpenAI:
		out, err = c.generateOpenAI(ctx, spec.ModelID, full)
	case ProviderGoogle:
		out, err = c.generateGemini(ctx, spec.ModelID, full)
	case ProviderDeepSeek:
		out, err = c.generateDeepSeek(ctx, spec.ModelID, full)
	case ProviderOllama:
		out, err = c.generateOllama(ctx, spec.ModelID, full)
	default:
		return "", fmt.Errorf("%w: provider %s", ErrUnsupportedModel, spec.Provider)
	}

	duration := time.Since(start)
	if err != nil {
		err = classify(err)
		slog.Warn("model invocation failed", "alias", alias, "duration_ms", duration.Milliseconds(), "error", err)
		return "", err
	}

	slog.Debug("model invocation complete", "alias", alias, "duration_ms", duration.Milliseconds(), "output_len", len(out))
	return out, nil
}

func (c *Client) generateAnthropic(ctx context.Context, modelID, prompt string) (string, error) {
	if c.cfg.AnthropicAPIKey == "" {
		return "", fmt.Errorf("%w: ANTHROPIC_API_KEY", ErrMissingCredentials)
	}
	model, err := anthropic.New(
		anthropic.WithToken(c.cfg.AnthropicAPIKey),
		anthropic.WithModel(modelID),
	)
	if err != nil {
		return "", fmt.Errorf("create anthropic model: %w", err)
	}
	return c.generate(ctx, model, prompt)
}

func (c *Client) generateOpenAI(ctx context.Context, modelID, prompt string) (string, error) {
	if c.cfg.OpenAIAPIKey == "" {
		return "", fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingCredentials)
	}
	model, err := openai.New(
		openai.WithToken(c.cfg.OpenAIAPIKey),
		openai.WithModel(modelID),
	)
	if err != nil {
		return "", fmt.Errorf("create openai model: %w", err)
	}
	return c.generate(ctx, model, prompt)
}

func (c *Client) generateOllama(ctx context.Context, modelID, prompt string) (string, error) {
	model, err := ollama.New(
		ollama.WithModel(modelID),
		ollama.WithServerURL(c.cfg.OllamaHost),
	)
	if err != nil {
		return "", fmt.Errorf("create ollama model: %w", err)
	}
	return c.generate(ctx, model, prompt)
}

func (c *Client) generate(ctx context.Context, model llms.Model, prompt string) (string, error) {
	response, err := llms.GenerateFromSinglePrompt(ctx, model, prompt,
		llms.WithTemperature(c.cfg.Temperature),
		llms.WithMaxTokens(c.cfg.MaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return response, nil
}
