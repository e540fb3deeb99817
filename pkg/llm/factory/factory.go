package factory

import (
	"fmt"

	"next-action-be/pkg/llm"
	"next-action-be/pkg/llm/ollama"
	"next-action-be/pkg/llm/openrouter"
)

func NewLLMProvider(providerType, modelName, ollamaBaseURL, openRouterBaseURL, openRouterKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "openrouter":
		if openRouterBaseURL == "" {
			openRouterBaseURL = "https://openrouter.ai/api/v1" // Default
		}
		if openRouterKey == "" {
			return nil, fmt.Errorf("openrouter provider requires an API key")
		}
		return openrouter.NewOpenRouterProvider(openRouterBaseURL, openRouterKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
