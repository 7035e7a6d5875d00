package factory

import (
	"fmt"
	"time"

	"ai-videobrain-be/pkg/llm"
	"ai-videobrain-be/pkg/llm/ollama"
	"ai-videobrain-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string, timeout time.Duration, maxRetries int) (llm.Provider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName, timeout), nil
	case "openai":
		return openai.NewOpenAIProvider(openai.Config{
			APIKey:     apiKey,
			BaseURL:    baseURL,
			ModelName:  modelName,
			Timeout:    timeout,
			MaxRetries: maxRetries,
		})
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
