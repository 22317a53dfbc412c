package factory

import (
	"fmt"

	"velocity-ai-be/pkg/llm"
	"velocity-ai-be/pkg/llm/gemini"
	"velocity-ai-be/pkg/llm/groq"
	"velocity-ai-be/pkg/llm/mock"
	"velocity-ai-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "groq":
		if apiKey == "" {
			// No key configured: serve canned demo responses instead of failing
			return mock.NewMockProvider(), nil
		}
		return groq.NewGroqProvider(apiKey, baseURL, modelName), nil
	case "gemini":
		if apiKey == "" {
			return mock.NewMockProvider(), nil
		}
		return gemini.NewGeminiProvider(apiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "mock":
		return mock.NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
