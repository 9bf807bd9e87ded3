package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GOOGLE_API_KEY", "DEEPSEEK_API_KEY",
		"OLLAMA_HOST", "DEBLOAT_MAX_TOKENS", "DEBLOAT_TEMPERATURE",
		"DEBLOAT_TIMEOUT_SECONDS", "DEBLOAT_METRICS_FILE", "DEBLOAT_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.OllamaHost != "http://localhost:11434" {
		t.Errorf("OllamaHost = %q, want default", cfg.OllamaHost)
	}
	if cfg.MaxTokens != 4000 {
		t.Errorf("MaxTokens = %d, want 4000", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.1 {
		t.Errorf("Temperature = %v, want 0.1", cfg.Temperature)
	}
	if cfg.RequestTimeout != 120*time.Second {
		t.Errorf("RequestTimeout = %v, want 120s", cfg.RequestTimeout)
	}
	if cfg.MetricsFile != "debloat_results.csv" {
		t.Errorf("MetricsFile = %q, want default", cfg.MetricsFile)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("DEBLOAT_MAX_TOKENS", "8000")
	t.Setenv("DEBLOAT_TIMEOUT_SECONDS", "30")
	t.Setenv("DEBLOAT_METRICS_FILE", "out.csv")

	cfg := Load()

	if cfg.AnthropicAPIKey != "sk-test" {
		t.Errorf("AnthropicAPIKey = %q, want sk-test", cfg.AnthropicAPIKey)
	}
	if cfg.MaxTokens != 8000 {
		t.Errorf("MaxTokens = %d, want 8000", cfg.MaxTokens)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if cfg.MetricsFile != "out.csv" {
		t.Errorf("MetricsFile = %q, want out.csv", cfg.MetricsFile)
	}
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("DEBLOAT_MAX_TOKENS", "lots")
	t.Setenv("DEBLOAT_TEMPERATURE", "warm")

	cfg := Load()

	if cfg.MaxTokens != 4000 {
		t.Errorf("MaxTokens = %d, want default 4000", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.1 {
		t.Errorf("Temperature = %v, want default 0.1", cfg.Temperature)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLogLevel(tt.in); got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
