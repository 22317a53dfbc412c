package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"velocity-ai-be/pkg/agent/checkpoint"
	"velocity-ai-be/pkg/agent/state"
	"velocity-ai-be/pkg/llm"
	"velocity-ai-be/pkg/tools"
)

// scriptedLLM answers by which agent's system prompt is calling, so a
// full pipeline run produces distinguishable step outputs.
type scriptedLLM struct {
	err       error
	panicWith string
}

func (f *scriptedLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	if f.panicWith != "" {
		panic(f.panicWith)
	}
	if f.err != nil {
		return "", f.err
	}

	system := messages[0].Content
	human := messages[len(messages)-1].Content
	switch {
	case strings.Contains(system, "Prioritizer"):
		return fmt.Sprintf("priorities for: %s", human), nil
	case strings.Contains(system, "Timetable Planner"):
		return `[{"title": "Deep work", "start_time": "09:00", "end_time": "11:00"}]`, nil
	case strings.Contains(system, "Researcher"):
		return `{"research_findings": [{"title": "trending repo"}]}`, nil
	case strings.Contains(system, "Context Matcher"):
		return `{"verified_updates": [], "conflicts": []}`, nil
	case strings.Contains(system, "Summary Agent"):
		return fmt.Sprintf("Digest — %s", human), nil
	default:
		return "ok", nil
	}
}

func (f *scriptedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
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

type fakeMemory struct {
	queryReply string
	queryErr   error
}

func (f *fakeMemory) Query(ctx context.Context, topic string) (string, error) {
	return f.queryReply, f.queryErr
}

func (f *fakeMemory) Store(ctx context.Context, label string, properties map[string]string) error {
	return nil
}

func (f *fakeMemory) Relate(ctx context.Context, fromLabel, fromName, relation, toLabel, toName string) error {
	return nil
}

func (f *fakeMemory) Tasks(ctx context.Context) (string, error) {
	return "No tasks stored yet.", nil
}

// countingStore wraps the in-memory store and counts saves.
type countingStore struct {
	inner *checkpoint.MemoryStore
	saves int
}

func (s *countingStore) Save(ctx context.Context, runID string, st *state.State) error {
	s.saves++
	return s.inner.Save(ctx, runID, st)
}

func (s *countingStore) Load(ctx context.Context, runID string) (*state.State, bool, error) {
	return s.inner.Load(ctx, runID)
}

func healthyRegistry() *tools.Registry {
	return &tools.Registry{
		GitHub: fakeGitHub{reply: "• repo-one ⭐0"},
		Slack:  fakeSlack{reply: "• #general (5 members) 🌐"},
		Gmail:  fakeGmail{reply: "Inbox is empty."},
		Docs:   fakeDocs{reply: "• Roadmap (modified: 2025-01-01)"},
	}
}

func brokenRegistry() *tools.Registry {
	err := errors.New("connection refused")
	return &tools.Registry{
		GitHub: fakeGitHub{err: err},
		Slack:  fakeSlack{err: err},
		Gmail:  fakeGmail{err: err},
		Docs:   fakeDocs{err: err},
	}
}

func newExecutor(provider llm.LLMProvider, registry *tools.Registry, store checkpoint.Store) *Executor {
	return New(provider, registry, &fakeMemory{queryReply: "• Task: {title: old task}"}, store, log.New(io.Discard, "", 0))
}

// stepPrefixes extracts the "[Agent]" markers from the conversation log.
func stepPrefixes(st *state.State) []string {
	var prefixes []string
	for _, msg := range st.ConversationLog[1:] {
		if strings.HasPrefix(msg.Content, "[") {
			prefixes = append(prefixes, msg.Content[:strings.Index(msg.Content, "]")+1])
		}
	}
	return prefixes
}

func TestRunPersonalTopology(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	exec := newExecutor(&scriptedLLM{}, healthyRegistry(), store)

	result, err := exec.Run(context.Background(), "plan my day", "personal", "run-1")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	st, found, _ := store.Load(context.Background(), "run-1")
	if !found {
		t.Fatal("no checkpoint saved for run-1")
	}

	want := []string{"[Prioritizer]", "[Planner]", "[Researcher]"}
	got := stepPrefixes(st)
	if len(got) != len(want) {
		t.Fatalf("step markers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d = %q, want %q", i, got[i], want[i])
		}
	}

	// Summarizer appends the summary itself as the final entry.
	last := st.ConversationLog[len(st.ConversationLog)-1]
	if last.Content != st.Summary {
		t.Errorf("final log entry = %q, want the summary", last.Content)
	}

	if result.Personal == nil || result.Workspace != nil {
		t.Errorf("personal run result sections: personal=%v workspace=%v", result.Personal, result.Workspace)
	}
	if len(result.Personal.ScheduleProposals) != 1 {
		t.Errorf("ScheduleProposals = %v", result.Personal.ScheduleProposals)
	}
}

func TestRunWorkspaceTopology(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	exec := newExecutor(&scriptedLLM{}, healthyRegistry(), store)

	result, err := exec.Run(context.Background(), "daily digest", "workspace", "run-2")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	st, _, _ := store.Load(context.Background(), "run-2")
	want := []string{"[Ingestor]", "[Context Matcher]", "[Prioritizer]"}
	got := stepPrefixes(st)
	if len(got) != len(want) {
		t.Fatalf("step markers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d = %q, want %q", i, got[i], want[i])
		}
	}

	if result.Workspace == nil || result.Personal != nil {
		t.Fatalf("workspace run result sections: personal=%v workspace=%v", result.Personal, result.Workspace)
	}
	if len(result.Sources) != 4 {
		t.Errorf("Sources = %v", result.Sources)
	}
	// The workspace pipeline never plans, so nothing awaits approval.
	if result.RequiresApproval || result.ProposedAction != nil {
		t.Errorf("workspace run requested approval: %+v", result)
	}
}

func TestRunUnknownModeIsStructuralError(t *testing.T) {
	exec := newExecutor(&scriptedLLM{}, healthyRegistry(), checkpoint.NewMemoryStore())

	result, err := exec.Run(context.Background(), "anything", "turbo", "run-3")
	if err == nil {
		t.Fatal("Run() with unknown mode should fail")
	}
	if result != nil {
		t.Errorf("result = %+v, want nil on structural error", result)
	}
}

func TestRunDegradesWhenEveryCollaboratorFails(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	exec := New(
		&scriptedLLM{err: errors.New("rate limited")},
		brokenRegistry(),
		&fakeMemory{queryErr: errors.New("graph down")},
		store,
		log.New(io.Discard, "", 0),
	)

	result, err := exec.Run(context.Background(), "daily digest", "workspace", "run-4")
	if err != nil {
		t.Fatalf("Run() error = %v, the degraded path must not error", err)
	}

	if result.Summary == "" {
		t.Error("degraded run must still produce a summary")
	}
	if !strings.HasPrefix(result.Summary, "Summary generation failed: ") {
		t.Errorf("Summary = %q", result.Summary)
	}
	if result.RequiresApproval {
		t.Error("nothing can await approval when the planner never ran")
	}
	// Every source failed, but each failure is recorded, not dropped.
	for key, content := range result.Workspace.RawData {
		if !strings.HasPrefix(content, "Error: ") {
			t.Errorf("RawData[%q] = %q, want an Error string", key, content)
		}
	}
}

func TestRunScenarioExamAndBug(t *testing.T) {
	exec := newExecutor(&scriptedLLM{}, healthyRegistry(), checkpoint.NewMemoryStore())

	result, err := exec.Run(
		context.Background(),
		"I have a Linear Algebra exam Friday and need to fix login bug #47",
		"personal",
		"t1",
	)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.Contains(result.Summary, "Linear Algebra exam") || !strings.Contains(result.Summary, "login bug #47") {
		t.Errorf("Summary = %q, want both the exam and the bug reflected", result.Summary)
	}
	if !result.RequiresApproval {
		t.Error("RequiresApproval = false, want true")
	}
	if result.ProposedAction == nil || result.ProposedAction.Type != "schedule" {
		t.Errorf("ProposedAction = %+v", result.ProposedAction)
	}
}

func TestRunCheckpointsAfterEveryStep(t *testing.T) {
	store := &countingStore{inner: checkpoint.NewMemoryStore()}
	exec := newExecutor(&scriptedLLM{}, healthyRegistry(), store)

	if _, err := exec.Run(context.Background(), "plan my day", "personal", "run-5"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// Four steps plus the pending-approval snapshot.
	if store.saves != 5 {
		t.Errorf("saves = %d, want 5", store.saves)
	}

	store.saves = 0
	if _, err := exec.Run(context.Background(), "daily digest", "workspace", "run-6"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if store.saves != 4 {
		t.Errorf("saves = %d, want 4", store.saves)
	}
}

func TestRunSameRunIDOverwrites(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	exec := newExecutor(&scriptedLLM{}, healthyRegistry(), store)

	if _, err := exec.Run(context.Background(), "first question", "personal", "run-7"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, err := exec.Run(context.Background(), "second question", "personal", "run-7"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	st, found, _ := store.Load(context.Background(), "run-7")
	if !found {
		t.Fatal("checkpoint missing")
	}
	if st.UserInput != "second question" {
		t.Errorf("UserInput = %q, want the rerun to overwrite", st.UserInput)
	}
	if len(st.PrioritizedTasks) != 1 || !strings.Contains(st.PrioritizedTasks[0], "second question") {
		t.Errorf("PrioritizedTasks = %v, want overwrite not accumulation", st.PrioritizedTasks)
	}
	if strings.Contains(st.PrioritizedTasks[0], "first question") {
		t.Errorf("PrioritizedTasks = %v, first run leaked into the rerun", st.PrioritizedTasks)
	}
}

func TestRunPanicDegrades(t *testing.T) {
	exec := newExecutor(&scriptedLLM{panicWith: "nil map write"}, healthyRegistry(), checkpoint.NewMemoryStore())

	result, err := exec.Run(context.Background(), "plan my day", "personal", "run-8")
	if err != nil {
		t.Fatalf("Run() error = %v, panics must degrade instead", err)
	}
	if !strings.HasPrefix(result.Summary, "Agent pipeline error: ") || !strings.Contains(result.Summary, "Falling back to simple mode.") {
		t.Errorf("Summary = %q", result.Summary)
	}
	if result.Personal == nil || len(result.Personal.PrioritizedTasks) != 0 {
		t.Errorf("degraded personal section = %+v", result.Personal)
	}
}

func TestApproveFlipsCheckpointedRun(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	exec := newExecutor(&scriptedLLM{}, healthyRegistry(), store)

	result, err := exec.Run(context.Background(), "plan my day", "personal", "run-9")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.RequiresApproval {
		t.Fatal("run should be awaiting approval")
	}

	st, err := exec.Approve(context.Background(), "run-9")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if st.ApprovalStatus != state.ApprovalApproved {
		t.Errorf("ApprovalStatus = %q", st.ApprovalStatus)
	}
	if st.ProposedAction.Status != "approved" {
		t.Errorf("ProposedAction.Status = %q", st.ProposedAction.Status)
	}
	if st.RequiresApproval {
		t.Error("RequiresApproval should clear after the decision")
	}

	// The decision is persisted, not just returned.
	loaded, _, _ := store.Load(context.Background(), "run-9")
	if loaded.ApprovalStatus != state.ApprovalApproved {
		t.Errorf("persisted ApprovalStatus = %q", loaded.ApprovalStatus)
	}
}

func TestRejectFlipsCheckpointedRun(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	exec := newExecutor(&scriptedLLM{}, healthyRegistry(), store)

	if _, err := exec.Run(context.Background(), "plan my day", "personal", "run-10"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	st, err := exec.Reject(context.Background(), "run-10")
	if err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if st.ApprovalStatus != state.ApprovalRejected || st.ProposedAction.Status != "rejected" {
		t.Errorf("state after reject: status=%q action=%+v", st.ApprovalStatus, st.ProposedAction)
	}
}

func TestApproveUnknownRun(t *testing.T) {
	exec := newExecutor(&scriptedLLM{}, healthyRegistry(), checkpoint.NewMemoryStore())

	if _, err := exec.Approve(context.Background(), "missing"); err == nil {
		t.Error("Approve() on an unknown run should fail")
	}
}

func TestApproveRunWithoutProposal(t *testing.T) {
	store := checkpoint.NewMemoryStore()
	exec := newExecutor(&scriptedLLM{}, healthyRegistry(), store)

	// Workspace runs never propose anything.
	if _, err := exec.Run(context.Background(), "digest", "workspace", "run-11"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, err := exec.Approve(context.Background(), "run-11"); err == nil {
		t.Error("Approve() without a proposed action should fail")
	}
}

func TestTruncateIsRuneSafe(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Errorf("truncate() = %q, want unchanged", got)
	}
	if got := truncate("hello world", 5); got != "hello..." {
		t.Errorf("truncate() = %q, want %q", got, "hello...")
	}
	// Multi-byte runes must not be split mid-character.
	if got := truncate("日本語テキスト", 3); got != "日本語..." {
		t.Errorf("truncate() = %q, want %q", got, "日本語...")
	}
}
