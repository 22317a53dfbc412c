package mock

import (
	"context"
	"testing"

	"velocity-ai-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProviderPersonalResponses(t *testing.T) {
	provider := NewMockProvider()
	ctx := context.Background()

	out, err := provider.Generate(ctx, "I have a Math exam on Friday")
	require.NoError(t, err)
	assert.Contains(t, out, "Study Plan")

	out, err = provider.Generate(ctx, "Need to fix the login bug tonight")
	require.NoError(t, err)
	assert.Contains(t, out, "high priority")

	out, err = provider.Generate(ctx, "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "productivity co-pilot")
}

func TestMockProviderWorkspaceDetection(t *testing.T) {
	provider := NewMockProvider()

	history := []llm.Message{
		{Role: "system", Content: "You are Velocity AI in Workspace Mode."},
		{Role: "user", Content: "What's the status today?"},
	}
	out, err := provider.Chat(context.Background(), history)
	require.NoError(t, err)
	assert.Contains(t, out, "Project Pulse Summary")
}

func TestMockProviderChatUsesLastUserMessage(t *testing.T) {
	provider := NewMockProvider()

	history := []llm.Message{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi"},
		{Role: "user", Content: "big exam tomorrow"},
	}
	out, err := provider.Chat(context.Background(), history)
	require.NoError(t, err)
	assert.Contains(t, out, "exam")
}
