package step

import (
	"context"
	"fmt"
	"strings"

	"velocity-ai-be/pkg/agent/state"
	"velocity-ai-be/pkg/llm"
)

// Planner turns prioritized tasks into a proposed daily schedule. It is
// the single place in the system that requests a human gate: on success
// it always sets requires_approval and a pending proposed_action. On
// LLM failure it degrades to "nothing proposed", never to "assume
// approved". Personal mode only.
type Planner struct {
	llm llm.LLMProvider
}

func NewPlanner(provider llm.LLMProvider) *Planner {
	return &Planner{llm: provider}
}

func (p *Planner) Name() string { return NamePlanner }

func (p *Planner) Run(ctx context.Context, st *state.State) {
	prioritiesText := strings.Join(st.PrioritizedTasks, "\n")

	system := "You are the Timetable Planner Agent in Velocity AI.\n" +
		"Given the prioritized tasks, create an optimal daily schedule.\n" +
		"Rules:\n" +
		"- Study blocks: 45-90 min with breaks (Pomodoro-friendly)\n" +
		"- Coding blocks: 2-3 hour deep work sessions\n" +
		"- No scheduling over existing commitments\n" +
		"- High-grade-impact items get prime focus hours (morning)\n" +
		"- Include breaks and transition time\n\n" +
		"Respond with JSON array of schedule_blocks, each with: " +
		"title, start_time (HH:MM), end_time (HH:MM), category, reasoning\n\n" +
		"Also set 'requires_approval': true since you're proposing schedule changes."

	llmCtx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	defer cancel()

	response, err := p.llm.Chat(llmCtx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: fmt.Sprintf("Prioritized tasks:\n%s", prioritiesText)},
	})
	if err != nil {
		st.AppendLog("assistant", fmt.Sprintf("[Planner] Error: %v", err))
		st.ScheduleProposals = []string{}
		st.RequiresApproval = false
		return
	}

	st.ScheduleProposals = []string{response}
	st.RequiresApproval = true
	st.ProposedAction = &state.ProposedAction{
		Type:        "schedule",
		Description: "AI wants to block time on your calendar for these tasks",
		Status:      "pending_approval",
	}
	st.AppendLog("assistant", fmt.Sprintf("[Planner] %s", truncate(response, 500)))
}
