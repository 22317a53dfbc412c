package step

import (
	"context"
	"fmt"
	"time"

	"velocity-ai-be/pkg/agent/state"
	"velocity-ai-be/pkg/graph"
	"velocity-ai-be/pkg/llm"
	"velocity-ai-be/pkg/tools"
)

// Researcher hunts for opportunities while the user is heads-down:
// trending repos, open-source contributions, market moves. Inputs are
// best-effort; a missing GitHub snapshot or skills profile just
// shrinks the prompt. Personal mode only.
type Researcher struct {
	llm    llm.LLMProvider
	tools  *tools.Registry
	memory graph.Memory
	now    func() time.Time
}

func NewResearcher(provider llm.LLMProvider, registry *tools.Registry, memory graph.Memory) *Researcher {
	return &Researcher{llm: provider, tools: registry, memory: memory, now: time.Now}
}

func (r *Researcher) Name() string { return NameResearcher }

func (r *Researcher) Run(ctx context.Context, st *state.State) {
	githubData := r.fetchGitHub(ctx)
	skillsContext := r.querySkills(ctx)

	system := fmt.Sprintf(
		"You are the Researcher Agent (The Hustle) in Velocity AI.\n"+
			"While the user focuses on studying/coding, you proactively find:\n"+
			"1. Trending repos relevant to their tech stack\n"+
			"2. Open-source contribution opportunities\n"+
			"3. Competitor launches or market shifts\n"+
			"4. Business model ideas for their startup niche\n\n"+
			"User's GitHub profile:\n%s\n\n"+
			"Skills context:\n%s\n\n"+
			"Respond with JSON: research_findings (array of "+
			"{title, category, relevance_score, summary, action_item})",
		truncate(githubData, 500),
		truncate(skillsContext, 300),
	)

	llmCtx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	defer cancel()

	response, err := r.llm.Chat(llmCtx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: st.UserInput},
	})
	if err != nil {
		st.AppendLog("assistant", fmt.Sprintf("[Researcher] Error: %v", err))
		st.ResearchFindings = []string{}
		return
	}

	st.ResearchFindings = []string{response}
	st.AppendLog("assistant", fmt.Sprintf("[Researcher] %s", truncate(response, 500)))

	r.storeFindings(ctx, response)
}

func (r *Researcher) fetchGitHub(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, toolCallTimeout)
	defer cancel()

	data, err := r.tools.GitHub.Invoke(ctx, tools.ListRepos{})
	if err != nil {
		return ""
	}
	return data
}

func (r *Researcher) querySkills(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, graphCallTimeout)
	defer cancel()

	result, err := r.memory.Query(ctx, "skills")
	if err != nil {
		return ""
	}
	return result
}

func (r *Researcher) storeFindings(ctx context.Context, findings string) {
	ctx, cancel := context.WithTimeout(ctx, graphCallTimeout)
	defer cancel()

	_ = r.memory.Store(ctx, "Research", map[string]string{
		"date":     r.now().Format(time.RFC3339),
		"findings": truncate(findings, 200),
	})
}
