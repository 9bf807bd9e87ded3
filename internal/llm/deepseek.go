package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// deepSeekEndpoint is the OpenAI-compatible chat completions endpoint.
// langchaingo has no DeepSeek backend, so this adapter talks to the API
// directly.
const deepSeekEndpoint = "https://api.deepseek.com/v1/chat/completions"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type deepSeekRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type deepSeekResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) generateDeepSeek(ctx context.Context, modelID, prompt string) (string, error) {
	if c.cfg.DeepSeekAPIKey == "" {
		return "", fmt.Errorf("%w: DEEPSEEK_API_KEY", ErrMissingCredentials)
	}

	payload := deepSeekRequest{
		Model:       modelID,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.deepSeekURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.DeepSeekAPIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepseek request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if err := checkStatus(resp); err != nil {
		return "", fmt.Errorf("deepseek: %w", err)
	}

	var parsed deepSeekResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode deepseek response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: no response choices", ErrRequest)
	}

	return parsed.Choices[0].Message.Content, nil
}

// checkStatus maps a non-success HTTP response onto the error taxonomy.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: status %d: %s", ErrAuthentication, resp.StatusCode, snippet)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d: %s", ErrRateLimited, resp.StatusCode, snippet)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrRequest, resp.StatusCode, snippet)
	}
}
