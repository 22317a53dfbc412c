package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Unconfigured clients must answer with a friendly message instead of
// erroring, so a missing token never breaks a pipeline run.
func TestUnconfiguredClientsReturnFriendlyMessage(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry("", "", "")

	cases := []struct {
		name   string
		invoke func() (string, error)
		want   string
	}{
		{"github", func() (string, error) { return registry.GitHub.Invoke(ctx, ListRepos{}) },
			"GitHub not configured. Please connect from the UI."},
		{"slack", func() (string, error) { return registry.Slack.Invoke(ctx, ListChannels{}) },
			"Slack not configured. Please connect from the UI."},
		{"gmail", func() (string, error) { return registry.Gmail.Invoke(ctx, ListInbox{}) },
			"Gmail not configured. Please connect from the UI."},
		{"calendar", func() (string, error) { return registry.Calendar.Invoke(ctx, ListEvents{}) },
			"Google Calendar not configured. Please connect from the UI."},
		{"docs", func() (string, error) { return registry.Docs.Invoke(ctx, ListDocs{}) },
			"Google Docs not configured. Please connect from the UI."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := tc.invoke()
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestRegistryBundlesAllClients(t *testing.T) {
	registry := NewRegistry("gh-token", "slack-token", "google-token")

	assert.NotNil(t, registry.GitHub)
	assert.NotNil(t, registry.Slack)
	assert.NotNil(t, registry.Gmail)
	assert.NotNil(t, registry.Calendar)
	assert.NotNil(t, registry.Docs)
}

type bogusGitHubRequest struct{}

func (bogusGitHubRequest) isGitHubRequest() {}

func TestUnsupportedRequestErrors(t *testing.T) {
	client := NewGitHubClient("token")

	_, err := client.Invoke(context.Background(), bogusGitHubRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported github request")
}
