package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"velocity-ai-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGroqProviderDefaults(t *testing.T) {
	p := NewGroqProvider("key", "", "")
	assert.Equal(t, "https://api.groq.com/openai/v1", p.baseURL)
	assert.Equal(t, DefaultModel, p.model)
}

func TestGroqChatHitsConfiguredEndpoint(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "pong"}},
			},
		})
	}))
	defer server.Close()

	p := NewGroqProvider("test-key", server.URL, "llama-3.3-70b-versatile")

	out, err := p.Chat(context.Background(),
		[]llm.Message{{Role: "user", Content: "ping"}},
		llm.WithTemperature(0.2),
	)
	require.NoError(t, err)
	assert.Equal(t, "pong", out)

	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "llama-3.3-70b-versatile", gotReq.Model)
	assert.Equal(t, 0.2, gotReq.Temperature)
}
