package factory

import (
	"fmt"

	"adv-assistant-be/pkg/llm"
	"adv-assistant-be/pkg/llm/deepseek"
	"adv-assistant-be/pkg/llm/ollama"
)

func NewProvider(providerType, model, baseURL, apiKey string) (llm.Provider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, model), nil
	case "deepseek":
		if apiKey == "" {
			return nil, fmt.Errorf("deepseek provider requires an API key")
		}
		return deepseek.NewDeepseekProvider(apiKey, model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
