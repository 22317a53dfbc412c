// FILE: test/integration/ollama_integration_test.go
// PURPOSE: Integration test for the local Ollama LLM provider.
// Requires a running Ollama server; skips otherwise.

package integration

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"velocity-ai-be/pkg/llm"
	"velocity-ai-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ollamaBaseURL() string {
	if url := os.Getenv("OLLAMA_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:11434"
}

func ollamaModel() string {
	if model := os.Getenv("OLLAMA_TEST_MODEL"); model != "" {
		return model
	}
	return "gemma:2b"
}

func requireOllama(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(ollamaBaseURL() + "/api/tags")
	if err != nil {
		t.Skipf("Skipping: Ollama not reachable at %s (%v)", ollamaBaseURL(), err)
	}
	resp.Body.Close()
}

func TestOllamaGenerate(t *testing.T) {
	requireOllama(t)

	provider := ollama.NewOllamaProvider(ollamaBaseURL(), ollamaModel())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	out, err := provider.Generate(ctx, "Reply with the single word: pong")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	t.Logf("Ollama replied: %s", out)
}

func TestOllamaChatHistory(t *testing.T) {
	requireOllama(t)

	provider := ollama.NewOllamaProvider(ollamaBaseURL(), ollamaModel())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	history := []llm.Message{
		{Role: "system", Content: "You are a terse assistant. Answer in one short sentence."},
		{Role: "user", Content: "My name is Nakul."},
		{Role: "assistant", Content: "Nice to meet you, Nakul."},
		{Role: "user", Content: "What is my name?"},
	}

	out, err := provider.Chat(ctx, history, llm.WithTemperature(0))
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	t.Logf("Ollama replied: %s", out)
}

func TestOllamaChatOptions(t *testing.T) {
	requireOllama(t)

	provider := ollama.NewOllamaProvider(ollamaBaseURL(), ollamaModel())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	out, err := provider.Chat(ctx,
		[]llm.Message{{Role: "user", Content: "Say hello."}},
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(64),
	)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
