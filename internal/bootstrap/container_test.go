package bootstrap

import (
	"testing"

	"velocity-ai-be/internal/config"

	"github.com/stretchr/testify/assert"
)

// Hosted providers must never inherit the Ollama base URL; with it set
// they would send chat completions to localhost instead of their own
// API endpoints.
func TestLLMProviderArgs(t *testing.T) {
	cfg := &config.Config{}
	cfg.Keys.Groq = "groq-key"
	cfg.Keys.GoogleGemini = "gemini-key"
	cfg.Ai.OllamaBaseURL = "http://localhost:11434"

	t.Run("groq", func(t *testing.T) {
		cfg.Ai.LLMProvider = "groq"
		apiKey, baseURL := llmProviderArgs(cfg)
		assert.Equal(t, "groq-key", apiKey)
		assert.Empty(t, baseURL)
	})

	t.Run("gemini", func(t *testing.T) {
		cfg.Ai.LLMProvider = "gemini"
		apiKey, baseURL := llmProviderArgs(cfg)
		assert.Equal(t, "gemini-key", apiKey)
		assert.Empty(t, baseURL)
	})

	t.Run("ollama", func(t *testing.T) {
		cfg.Ai.LLMProvider = "ollama"
		apiKey, baseURL := llmProviderArgs(cfg)
		assert.Empty(t, apiKey)
		assert.Equal(t, "http://localhost:11434", baseURL)
	})

	t.Run("mock", func(t *testing.T) {
		cfg.Ai.LLMProvider = "mock"
		_, baseURL := llmProviderArgs(cfg)
		assert.Empty(t, baseURL)
	})
}
