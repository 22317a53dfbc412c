package step

import (
	"context"
	"errors"
	"strings"
	"testing"

	"velocity-ai-be/pkg/agent/state"
	"velocity-ai-be/pkg/llm"
	"velocity-ai-be/pkg/tools"
)

// fakeLLM returns one canned reply (or error) and records the prompts
// it was called with.
type fakeLLM struct {
	reply string
	err   error
	calls [][]llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	f.calls = append(f.calls, messages)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

type fakeGitHub struct {
	reply string
	err   error
}

func (f fakeGitHub) Invoke(ctx context.Context, req tools.GitHubRequest) (string, error) {
	return f.reply, f.err
}

type fakeSlack struct {
	reply string
	err   error
}

func (f fakeSlack) Invoke(ctx context.Context, req tools.SlackRequest) (string, error) {
	return f.reply, f.err
}

type fakeGmail struct {
	reply string
	err   error
}

func (f fakeGmail) Invoke(ctx context.Context, req tools.GmailRequest) (string, error) {
	return f.reply, f.err
}

type fakeDocs struct {
	reply string
	err   error
}

func (f fakeDocs) Invoke(ctx context.Context, req tools.DocsRequest) (string, error) {
	return f.reply, f.err
}

// fakeMemory records stores and answers queries with a canned string.
type fakeMemory struct {
	queryReply string
	queryErr   error
	stored     []storedNode
}

type storedNode struct {
	label string
	props map[string]string
}

func (f *fakeMemory) Query(ctx context.Context, topic string) (string, error) {
	return f.queryReply, f.queryErr
}

func (f *fakeMemory) Store(ctx context.Context, label string, properties map[string]string) error {
	f.stored = append(f.stored, storedNode{label: label, props: properties})
	return nil
}

func (f *fakeMemory) Relate(ctx context.Context, fromLabel, fromName, relation, toLabel, toName string) error {
	return nil
}

func (f *fakeMemory) Tasks(ctx context.Context) (string, error) {
	return "No tasks stored yet.", nil
}

func registry(github tools.GitHubSource, slack tools.SlackSource, gmail tools.GmailSource, docs tools.DocsSource) *tools.Registry {
	return &tools.Registry{GitHub: github, Slack: slack, Gmail: gmail, Docs: docs}
}

// ─── Ingestor ───

func TestIngestorCollectsAllSources(t *testing.T) {
	ingestor := NewIngestor(registry(
		fakeGitHub{reply: "• repo-one ⭐0"},
		fakeSlack{reply: "• #general (5 members) 🌐"},
		fakeGmail{reply: "Inbox is empty."},
		fakeDocs{reply: "• Roadmap (modified: 2025-01-01)"},
	))

	st := state.New("daily digest", state.ModeWorkspace)
	ingestor.Run(context.Background(), st)

	want := map[string]string{
		"github_repos":   "• repo-one ⭐0",
		"slack_channels": "• #general (5 members) 🌐",
		"gmail_inbox":    "Inbox is empty.",
		"google_docs":    "• Roadmap (modified: 2025-01-01)",
	}
	for key, content := range want {
		if st.RawData[key] != content {
			t.Errorf("RawData[%q] = %q, want %q", key, st.RawData[key], content)
		}
	}

	wantSources := []string{"github", "slack", "gmail", "google_docs"}
	if len(st.Sources) != len(wantSources) {
		t.Fatalf("Sources = %v", st.Sources)
	}
	for i, s := range wantSources {
		if st.Sources[i] != s {
			t.Errorf("Sources[%d] = %q, want %q", i, st.Sources[i], s)
		}
	}

	if len(st.ConversationLog) != 2 {
		t.Fatalf("log entries = %d, want 2 (user + ingestor)", len(st.ConversationLog))
	}
	if st.ConversationLog[1].Content != "[Ingestor] Collected data from 4 sources." {
		t.Errorf("log entry = %q", st.ConversationLog[1].Content)
	}
}

func TestIngestorIsolatesFailures(t *testing.T) {
	ingestor := NewIngestor(registry(
		fakeGitHub{reply: "• repo-one ⭐0"},
		fakeSlack{reply: "• #general (5 members) 🌐"},
		fakeGmail{err: errors.New("token expired")},
		fakeDocs{reply: "No documents found."},
	))

	st := state.New("daily digest", state.ModeWorkspace)
	ingestor.Run(context.Background(), st)

	if st.RawData["github_repos"] != "• repo-one ⭐0" {
		t.Errorf("github data lost: %q", st.RawData["github_repos"])
	}
	if !strings.HasPrefix(st.RawData["gmail_inbox"], "Error: ") {
		t.Errorf("gmail entry = %q, want an Error string", st.RawData["gmail_inbox"])
	}
	// Sources still lists every attempted platform.
	if len(st.Sources) != 4 {
		t.Errorf("Sources = %v", st.Sources)
	}
}

// ─── ContextMatcher ───

func TestContextMatcherSetsContext(t *testing.T) {
	provider := &fakeLLM{reply: `{"verified_updates": []}`}
	matcher := NewContextMatcher(provider, &fakeMemory{queryReply: "• Task: {title: Fix login bug}"})

	st := state.New("what changed?", state.ModeWorkspace)
	st.RawData = map[string]string{"github_repos": "data"}
	matcher.Run(context.Background(), st)

	if st.Context != "• Task: {title: Fix login bug}" {
		t.Errorf("Context = %q", st.Context)
	}
	if len(st.ConversationLog) != 2 {
		t.Fatalf("log entries = %d, want 2", len(st.ConversationLog))
	}
	if !strings.HasPrefix(st.ConversationLog[1].Content, "[Context Matcher] ") {
		t.Errorf("log entry = %q", st.ConversationLog[1].Content)
	}

	// The raw data and the graph context both reach the prompt.
	system := provider.calls[0][0].Content
	if !strings.Contains(system, "Fix login bug") {
		t.Errorf("system prompt missing graph context: %q", system)
	}
	human := provider.calls[0][1].Content
	if !strings.Contains(human, "github_repos") {
		t.Errorf("user prompt missing raw data: %q", human)
	}
}

func TestContextMatcherGraphFailureDegradesToEmptyContext(t *testing.T) {
	matcher := NewContextMatcher(&fakeLLM{reply: "ok"}, &fakeMemory{queryErr: errors.New("graph down")})

	st := state.New("what changed?", state.ModeWorkspace)
	matcher.Run(context.Background(), st)

	if st.Context != "" {
		t.Errorf("Context = %q, want empty on graph failure", st.Context)
	}
}

func TestContextMatcherLLMFailureOnlyLogs(t *testing.T) {
	matcher := NewContextMatcher(&fakeLLM{err: errors.New("rate limited")}, &fakeMemory{queryReply: "ctx"})

	st := state.New("what changed?", state.ModeWorkspace)
	matcher.Run(context.Background(), st)

	if len(st.ConversationLog) != 2 {
		t.Fatalf("log entries = %d, want exactly one appended", len(st.ConversationLog))
	}
	if !strings.HasPrefix(st.ConversationLog[1].Content, "[Context Matcher] Analysis skipped: ") {
		t.Errorf("log entry = %q", st.ConversationLog[1].Content)
	}
}

func TestContextMatcherBoundsRawData(t *testing.T) {
	provider := &fakeLLM{reply: "ok"}
	matcher := NewContextMatcher(provider, &fakeMemory{})

	st := state.New("digest", state.ModeWorkspace)
	st.RawData = map[string]string{"github_repos": strings.Repeat("x", 10_000)}
	matcher.Run(context.Background(), st)

	human := provider.calls[0][1].Content
	if len(human) > len("Raw data from all sources:\n")+rawDataPromptLimit {
		t.Errorf("raw data not truncated: %d chars", len(human))
	}
}

// ─── Prioritizer ───

func TestPrioritizerOverwritesTasks(t *testing.T) {
	provider := &fakeLLM{reply: `[{"title": "Study Linear Algebra"}]`}
	memory := &fakeMemory{queryReply: "• PrioritySnapshot: {tasks: old}"}
	prioritizer := NewPrioritizer(provider, memory)

	st := state.New("exam friday", state.ModePersonal)
	st.PrioritizedTasks = []string{"stale entry"}
	prioritizer.Run(context.Background(), st)

	if len(st.PrioritizedTasks) != 1 || st.PrioritizedTasks[0] != `[{"title": "Study Linear Algebra"}]` {
		t.Errorf("PrioritizedTasks = %v, want overwrite with the new reply", st.PrioritizedTasks)
	}
	if !strings.HasPrefix(st.ConversationLog[1].Content, "[Prioritizer] ") {
		t.Errorf("log entry = %q", st.ConversationLog[1].Content)
	}

	// Snapshot persisted for future context.
	if len(memory.stored) != 1 || memory.stored[0].label != "PrioritySnapshot" {
		t.Fatalf("stored = %+v", memory.stored)
	}
	if memory.stored[0].props["tasks"] == "" || memory.stored[0].props["date"] == "" {
		t.Errorf("snapshot props = %v", memory.stored[0].props)
	}
}

func TestPrioritizerModePrompts(t *testing.T) {
	tests := []struct {
		mode state.Mode
		want string
	}{
		{state.ModePersonal, "Personal Mode"},
		{state.ModeWorkspace, "Workspace Mode"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			provider := &fakeLLM{reply: "[]"}
			prioritizer := NewPrioritizer(provider, &fakeMemory{})

			st := state.New("input", tt.mode)
			prioritizer.Run(context.Background(), st)

			system := provider.calls[0][0].Content
			if !strings.Contains(system, tt.want) {
				t.Errorf("system prompt = %q, want mention of %q", truncate(system, 80), tt.want)
			}
		})
	}
}

func TestPrioritizerLLMFailureClearsTasks(t *testing.T) {
	prioritizer := NewPrioritizer(&fakeLLM{err: errors.New("quota exceeded")}, &fakeMemory{})

	st := state.New("exam friday", state.ModePersonal)
	st.PrioritizedTasks = []string{"stale entry"}
	prioritizer.Run(context.Background(), st)

	if len(st.PrioritizedTasks) != 0 {
		t.Errorf("PrioritizedTasks = %v, want empty on failure", st.PrioritizedTasks)
	}
	if !strings.HasPrefix(st.ConversationLog[1].Content, "[Prioritizer] Error: ") {
		t.Errorf("log entry = %q", st.ConversationLog[1].Content)
	}
}

// ─── Planner ───

func TestPlannerRequestsApproval(t *testing.T) {
	planner := NewPlanner(&fakeLLM{reply: `[{"title": "Deep work", "start_time": "09:00"}]`})

	st := state.New("plan my day", state.ModePersonal)
	st.PrioritizedTasks = []string{"tasks"}
	planner.Run(context.Background(), st)

	if len(st.ScheduleProposals) != 1 {
		t.Fatalf("ScheduleProposals = %v", st.ScheduleProposals)
	}
	if !st.RequiresApproval {
		t.Error("RequiresApproval must be true when proposals exist")
	}
	if st.ProposedAction == nil {
		t.Fatal("ProposedAction missing")
	}
	if st.ProposedAction.Type != "schedule" || st.ProposedAction.Status != "pending_approval" {
		t.Errorf("ProposedAction = %+v", st.ProposedAction)
	}
	if st.ProposedAction.Description != "AI wants to block time on your calendar for these tasks" {
		t.Errorf("Description = %q", st.ProposedAction.Description)
	}
}

func TestPlannerFailureProposesNothing(t *testing.T) {
	planner := NewPlanner(&fakeLLM{err: errors.New("timeout")})

	st := state.New("plan my day", state.ModePersonal)
	st.PrioritizedTasks = []string{"tasks"}
	planner.Run(context.Background(), st)

	// Failure degrades to "nothing proposed", never "assume approved".
	if len(st.ScheduleProposals) != 0 {
		t.Errorf("ScheduleProposals = %v, want empty", st.ScheduleProposals)
	}
	if st.RequiresApproval {
		t.Error("RequiresApproval must be false when nothing was proposed")
	}
	if !strings.HasPrefix(st.ConversationLog[1].Content, "[Planner] Error: ") {
		t.Errorf("log entry = %q", st.ConversationLog[1].Content)
	}
}

// ─── Researcher ───

func TestResearcherWritesFindings(t *testing.T) {
	provider := &fakeLLM{reply: `{"research_findings": []}`}
	memory := &fakeMemory{queryReply: "Go, Postgres"}
	researcher := NewResearcher(provider, registry(
		fakeGitHub{reply: "• velocity-ai ⭐42"},
		fakeSlack{}, fakeGmail{}, fakeDocs{},
	), memory)

	st := state.New("find opportunities", state.ModePersonal)
	researcher.Run(context.Background(), st)

	if len(st.ResearchFindings) != 1 {
		t.Fatalf("ResearchFindings = %v", st.ResearchFindings)
	}

	system := provider.calls[0][0].Content
	if !strings.Contains(system, "velocity-ai ⭐42") {
		t.Errorf("system prompt missing GitHub snapshot: %q", truncate(system, 120))
	}
	if !strings.Contains(system, "Go, Postgres") {
		t.Errorf("system prompt missing skills context")
	}

	if len(memory.stored) != 1 || memory.stored[0].label != "Research" {
		t.Errorf("stored = %+v", memory.stored)
	}
}

func TestResearcherFailureClearsFindings(t *testing.T) {
	researcher := NewResearcher(&fakeLLM{err: errors.New("down")}, registry(
		fakeGitHub{err: errors.New("no token")},
		fakeSlack{}, fakeGmail{}, fakeDocs{},
	), &fakeMemory{queryErr: errors.New("graph down")})

	st := state.New("find opportunities", state.ModePersonal)
	researcher.Run(context.Background(), st)

	if len(st.ResearchFindings) != 0 {
		t.Errorf("ResearchFindings = %v, want empty", st.ResearchFindings)
	}
	if !strings.HasPrefix(st.ConversationLog[1].Content, "[Researcher] Error: ") {
		t.Errorf("log entry = %q", st.ConversationLog[1].Content)
	}
}

// ─── Summarizer ───

func TestSummarizerSetsSummary(t *testing.T) {
	provider := &fakeLLM{reply: "## Your Day\n1. 📚 Study"}
	summarizer := NewSummarizer(provider)

	st := state.New("exam friday", state.ModePersonal)
	st.PrioritizedTasks = []string{"study plan"}
	st.ScheduleProposals = []string{"blocks"}
	st.ResearchFindings = []string{"findings"}
	summarizer.Run(context.Background(), st)

	if st.Summary != "## Your Day\n1. 📚 Study" {
		t.Errorf("Summary = %q", st.Summary)
	}
	if st.ConversationLog[1].Content != st.Summary {
		t.Errorf("log entry = %q, want the summary itself", st.ConversationLog[1].Content)
	}

	human := provider.calls[0][1].Content
	for _, fragment := range []string{"study plan", "blocks", "findings", "User message: exam friday"} {
		if !strings.Contains(human, fragment) {
			t.Errorf("user prompt missing %q", fragment)
		}
	}
}

func TestSummarizerFailureFallback(t *testing.T) {
	summarizer := NewSummarizer(&fakeLLM{err: errors.New("model overloaded")})

	st := state.New("exam friday", state.ModePersonal)
	summarizer.Run(context.Background(), st)

	if !strings.HasPrefix(st.Summary, "Summary generation failed: ") {
		t.Errorf("Summary = %q, want failure fallback", st.Summary)
	}
	if len(st.ConversationLog) != 2 {
		t.Errorf("log entries = %d, want exactly one appended", len(st.ConversationLog))
	}
}

func TestTruncatePreservesShortStrings(t *testing.T) {
	if got := truncate("short", 500); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate(strings.Repeat("é", 600), 500); len([]rune(got)) != 500 {
		t.Errorf("truncate() kept %d runes", len([]rune(got)))
	}
}
