package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values. It is loaded once at process start
// and treated as read-only afterwards; components receive it explicitly.
type Config struct {
	// Provider credentials
	AnthropicAPIKey string
	OpenAIAPIKey    string
	GoogleAPIKey    string
	DeepSeekAPIKey  string

	// Ollama serves local models and needs no credentials.
	OllamaHost string

	// Request shaping, shared by all backends.
	MaxTokens      int
	Temperature    float64
	RequestTimeout time.Duration

	// Metrics store and optional model registry override.
	MetricsFile string
	ModelsFile  string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// LoadDotenv loads a .env file from the working directory if one exists.
// Variables already present in the environment are never overridden.
func LoadDotenv() {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		GoogleAPIKey:    os.Getenv("GOOGLE_API_KEY"),
		DeepSeekAPIKey:  os.Getenv("DEEPSEEK_API_KEY"),

		OllamaHost: getEnv("OLLAMA_HOST", "http://localhost:11434"),

		MaxTokens:      getEnvInt("DEBLOAT_MAX_TOKENS", 4000),
		Temperature:    getEnvFloat("DEBLOAT_TEMPERATURE", 0.1),
		RequestTimeout: time.Duration(getEnvInt("DEBLOAT_TIMEOUT_SECONDS", 120)) * time.Second,

		MetricsFile: getEnv("DEBLOAT_METRICS_FILE", "debloat_results.csv"),
		ModelsFile:  getEnv("DEBLOAT_MODELS_FILE", "debloat_models.yaml"),

		LogFile:  getEnv("DEBLOAT_LOG_FILE", "debloat.log"),
		LogLevel: parseLogLevel(getEnv("DEBLOAT_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
		slog.Warn("invalid integer in environment, using default", "key", key, "value", val, "default", defaultVal)
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
		slog.Warn("invalid float in environment, using default", "key", key, "value", val, "default", defaultVal)
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
