package step

import (
	"context"
	"fmt"
	"time"

	"velocity-ai-be/pkg/agent/state"
	"velocity-ai-be/pkg/graph"
	"velocity-ai-be/pkg/llm"
)

// Prioritizer is the brain of both pipelines. It weighs the user's
// input (personal mode) or the ingested platform signals (workspace
// mode) and emits a ranked task list. The LLM's raw text becomes the
// sole element of prioritized_tasks; downstream steps treat it as an
// opaque blob.
type Prioritizer struct {
	llm    llm.LLMProvider
	memory graph.Memory
	now    func() time.Time
}

func NewPrioritizer(provider llm.LLMProvider, memory graph.Memory) *Prioritizer {
	return &Prioritizer{llm: provider, memory: memory, now: time.Now}
}

func (p *Prioritizer) Name() string { return NamePrioritizer }

func (p *Prioritizer) Run(ctx context.Context, st *state.State) {
	graphContext := p.queryGraph(ctx, st.UserInput)

	var system string
	if st.Mode == state.ModeWorkspace {
		system = fmt.Sprintf(
			"You are the Prioritizer (Task Sorting Agent) in Velocity AI Workspace Mode.\n"+
				"Re-evaluate what the team needs to do next based on:\n"+
				"- Latest updates from all platforms\n"+
				"- Market signals and competitor moves\n"+
				"- Sprint velocity and team capacity\n"+
				"- Blocker resolution urgency\n\n"+
				"Context:\n%s\n\n"+
				"Respond with JSON array of priorities, each with: "+
				"title, urgency (critical/high/medium/low), project, assigned_to, ai_reasoning",
			st.Context,
		)
	} else {
		system = fmt.Sprintf(
			"You are the Prioritizer (The Brain) in Velocity AI Personal Mode.\n"+
				"Given the user's input, analyze and prioritize their tasks.\n"+
				"Consider:\n"+
				"- Academic deadlines and grade weight (exams > homework > reading)\n"+
				"- Startup urgency (bugs affecting users > feature work > nice-to-haves)\n"+
				"- Energy levels (hard tasks when fresh, light tasks when tired)\n"+
				"- Historical context from the knowledge graph\n\n"+
				"Knowledge Graph:\n%s\n\n"+
				"Respond with JSON array of tasks, each with: "+
				"title, priority (critical/high/medium/low), category (academic/startup/personal), "+
				"estimated_hours, reasoning",
			graphContext,
		)
	}

	llmCtx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	defer cancel()

	response, err := p.llm.Chat(llmCtx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: st.UserInput},
	})
	if err != nil {
		st.AppendLog("assistant", fmt.Sprintf("[Prioritizer] Error: %v", err))
		st.PrioritizedTasks = []string{}
		return
	}

	st.PrioritizedTasks = []string{response}
	st.AppendLog("assistant", fmt.Sprintf("[Prioritizer] %s", truncate(response, 500)))

	// Snapshot today's priorities for future graph context; failure ignored.
	p.storeSnapshot(ctx, response)
}

func (p *Prioritizer) queryGraph(ctx context.Context, topic string) string {
	ctx, cancel := context.WithTimeout(ctx, graphCallTimeout)
	defer cancel()

	result, err := p.memory.Query(ctx, topic)
	if err != nil {
		return ""
	}
	return result
}

func (p *Prioritizer) storeSnapshot(ctx context.Context, tasks string) {
	ctx, cancel := context.WithTimeout(ctx, graphCallTimeout)
	defer cancel()

	_ = p.memory.Store(ctx, "PrioritySnapshot", map[string]string{
		"date":  p.now().Format(time.RFC3339),
		"tasks": truncate(tasks, 200),
	})
}
