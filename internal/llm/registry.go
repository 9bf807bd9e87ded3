package llm

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Provider identifies a backend implementation.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGoogle    Provider = "google"
	ProviderDeepSeek  Provider = "deepseek"
	ProviderOllama    Provider = "ollama"
)

// ModelSpec ties a user-facing model alias to a backend and the model
// identifier that backend expects.
type ModelSpec struct {
	Provider Provider `yaml:"provider"`
	ModelID  string   `yaml:"model_id"`
}

// DefaultRegistry returns the built-in alias table.
func DefaultRegistry() map[string]ModelSpec {
	return map[string]ModelSpec{
		"claude-3-7-sonnet": {Provider: ProviderAnthropic, ModelID: "claude-3-7-sonnet-20250219"},
		"gpt-4o":            {Provider: ProviderOpenAI, ModelID: "gpt-4o"},
		"gemini-2-0-flash":  {Provider: ProviderGoogle, ModelID: "gemini-2.0-flash"},
		"deepseek-r1":       {Provider: ProviderDeepSeek, ModelID: "deepseek-reasoner"},
		"llama3":            {Provider: ProviderOllama, ModelID: "llama3"},
	}
}

type registryFile struct {
	Models map[string]ModelSpec `yaml:"models"`
}

// LoadRegistry merges alias definitions from a YAML file over the built-in
// table. A missing file is not an error; the defaults apply unchanged.
//
//	models:
//	  claude-3-7-sonnet:
//	    provider: anthropic
//	    model_id: claude-3-7-sonnet-20250219
func LoadRegistry(path string) (map[string]ModelSpec, error) {
	registry := DefaultRegistry()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return registry, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read model registry: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse model registry %s: %w", path, err)
	}

	for alias, spec := range file.Models {
		switch spec.Provider {
		case ProviderAnthropic, ProviderOpenAI, ProviderGoogle, ProviderDeepSeek, ProviderOllama:
		default:
			return nil, fmt.Errorf("model registry %s: alias %q has unknown provider %q", path, alias, spec.Provider)
		}
		if spec.ModelID == "" {
			return nil, fmt.Errorf("model registry %s: alias %q has no model_id", path, alias)
		}
		registry[alias] = spec
	}

	return registry, nil
}
