package step

import (
	"context"
	"fmt"

	"velocity-ai-be/pkg/agent/state"
	"velocity-ai-be/pkg/tools"
)

// Ingestor pulls the latest signals from every connected platform.
// Each fetch is isolated: one failing source becomes an error string in
// raw_data while the others still deliver content.
type Ingestor struct {
	tools *tools.Registry
}

func NewIngestor(registry *tools.Registry) *Ingestor {
	return &Ingestor{tools: registry}
}

func (i *Ingestor) Name() string { return NameIngestor }

func (i *Ingestor) Run(ctx context.Context, st *state.State) {
	rawData := map[string]string{}

	rawData["github_repos"] = i.fetch(ctx, func(ctx context.Context) (string, error) {
		return i.tools.GitHub.Invoke(ctx, tools.ListRepos{})
	})
	rawData["slack_channels"] = i.fetch(ctx, func(ctx context.Context) (string, error) {
		return i.tools.Slack.Invoke(ctx, tools.ListChannels{})
	})
	rawData["gmail_inbox"] = i.fetch(ctx, func(ctx context.Context) (string, error) {
		return i.tools.Gmail.Invoke(ctx, tools.ListInbox{})
	})
	rawData["google_docs"] = i.fetch(ctx, func(ctx context.Context) (string, error) {
		return i.tools.Docs.Invoke(ctx, tools.ListDocs{})
	})

	st.RawData = rawData
	st.Sources = []string{"github", "slack", "gmail", "google_docs"}
	st.AppendLog("assistant", fmt.Sprintf("[Ingestor] Collected data from %d sources.", len(rawData)))
}

func (i *Ingestor) fetch(ctx context.Context, call func(context.Context) (string, error)) string {
	ctx, cancel := context.WithTimeout(ctx, toolCallTimeout)
	defer cancel()

	content, err := call(ctx)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return content
}
