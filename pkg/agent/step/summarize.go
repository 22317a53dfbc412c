package step

import (
	"context"
	"fmt"
	"strings"

	"velocity-ai-be/pkg/agent/state"
	"velocity-ai-be/pkg/llm"
)

// Summarizer is the terminal step of both pipelines. It compiles every
// accumulated output into the dashboard digest and is the guaranteed
// fallback that makes a run total: on LLM failure the summary becomes a
// literal failure description instead of staying empty.
type Summarizer struct {
	llm llm.LLMProvider
}

func NewSummarizer(provider llm.LLMProvider) *Summarizer {
	return &Summarizer{llm: provider}
}

func (s *Summarizer) Name() string { return NameSummarizer }

func (s *Summarizer) Run(ctx context.Context, st *state.State) {
	priorities := strings.Join(st.PrioritizedTasks, "\n")
	schedule := strings.Join(st.ScheduleProposals, "\n")
	research := strings.Join(st.ResearchFindings, "\n")

	var system string
	if st.Mode == state.ModeWorkspace {
		system = "You are the Summary Agent in Velocity AI Workspace Mode.\n" +
			"Compile a concise project management dashboard update.\n" +
			"Include:\n" +
			"1. Project status overview (with status emojis 🟢🟡🔴)\n" +
			"2. Key updates from all platforms with source attribution\n" +
			"3. Re-ranked priorities with AI reasoning\n" +
			"4. Action items and blockers\n\n" +
			"Be data-driven, cite sources, use markdown."
	} else {
		system = "You are the Summary Agent in Velocity AI Personal Mode.\n" +
			"Compile a clean, friendly daily summary for the student's dashboard.\n" +
			"Include:\n" +
			"1. Top 3 priorities for today (with emojis)\n" +
			"2. Proposed schedule (if planner produced one)\n" +
			"3. Research highlights (if any)\n" +
			"4. One motivational insight\n\n" +
			"Be concise, use markdown formatting, be encouraging."
	}

	human := fmt.Sprintf(
		"User message: %s\n\nPriorities:\n%s\n\nSchedule:\n%s\n\nResearch:\n%s\n\nContext:\n%s",
		st.UserInput, priorities, schedule, research, st.Context,
	)

	llmCtx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	defer cancel()

	response, err := s.llm.Chat(llmCtx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: human},
	})
	if err != nil {
		st.Summary = fmt.Sprintf("Summary generation failed: %v", err)
		st.AppendLog("assistant", st.Summary)
		return
	}

	st.Summary = response
	st.AppendLog("assistant", response)
}
