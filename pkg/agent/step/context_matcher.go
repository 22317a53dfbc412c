package step

import (
	"context"
	"encoding/json"
	"fmt"

	"velocity-ai-be/pkg/agent/state"
	"velocity-ai-be/pkg/graph"
	"velocity-ai-be/pkg/llm"
)

// rawDataPromptLimit bounds the serialized raw_data spliced into the
// cross-reference prompt so one noisy source can't blow up the context
// window.
const rawDataPromptLimit = 3000

// ContextMatcher cross-references updates across platforms: a Slack
// "UI is finished" gets checked against GitHub commits, and the
// knowledge graph supplies related history. Workspace mode only.
type ContextMatcher struct {
	llm    llm.LLMProvider
	memory graph.Memory
}

func NewContextMatcher(provider llm.LLMProvider, memory graph.Memory) *ContextMatcher {
	return &ContextMatcher{llm: provider, memory: memory}
}

func (c *ContextMatcher) Name() string { return NameContextMatcher }

func (c *ContextMatcher) Run(ctx context.Context, st *state.State) {
	st.Context = c.queryGraph(ctx, st.UserInput)

	rawSummary := ""
	if payload, err := json.Marshal(st.RawData); err == nil {
		rawSummary = truncate(string(payload), rawDataPromptLimit)
	}

	system := fmt.Sprintf(
		"You are the Context Matcher agent in Velocity AI. "+
			"Your job is to cross-reference updates from different platforms "+
			"(GitHub, Slack, Gmail, Docs) and identify:\n"+
			"1. Verified completions (e.g., Slack says 'done' + GitHub has the commit)\n"+
			"2. Conflicting signals (e.g., Slack says 'done' but no commit found)\n"+
			"3. New information that changes priorities\n"+
			"4. Related context from the knowledge graph\n\n"+
			"Knowledge Graph Context:\n%s\n\n"+
			"Respond with a structured JSON with keys: "+
			"'verified_updates', 'conflicts', 'new_signals', 'context_links'",
		st.Context,
	)

	llmCtx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	defer cancel()

	response, err := c.llm.Chat(llmCtx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: fmt.Sprintf("Raw data from all sources:\n%s", rawSummary)},
	})
	if err != nil {
		st.AppendLog("assistant", fmt.Sprintf("[Context Matcher] Analysis skipped: %v", err))
		return
	}
	st.AppendLog("assistant", fmt.Sprintf("[Context Matcher] %s", truncate(response, 500)))
}

// queryGraph retrieves related context, degrading to an empty string so
// a graph outage never blocks cross-referencing.
func (c *ContextMatcher) queryGraph(ctx context.Context, topic string) string {
	ctx, cancel := context.WithTimeout(ctx, graphCallTimeout)
	defer cancel()

	result, err := c.memory.Query(ctx, topic)
	if err != nil {
		return ""
	}
	return result
}
