package state

import (
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"personal", ModePersonal, false},
		{"workspace", ModeWorkspace, false},
		{"", "", true},
		{"Personal", "", true},
		{"turbo", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewInitialState(t *testing.T) {
	st := New("fix the login bug", ModePersonal)

	if len(st.ConversationLog) != 1 {
		t.Fatalf("len(ConversationLog) = %d, want 1", len(st.ConversationLog))
	}
	if st.ConversationLog[0].Role != "user" || st.ConversationLog[0].Content != "fix the login bug" {
		t.Errorf("first log entry = %+v, want the triggering user message", st.ConversationLog[0])
	}
	if st.RequiresApproval {
		t.Error("RequiresApproval should start false")
	}
	if st.ApprovalStatus != ApprovalNone {
		t.Errorf("ApprovalStatus = %q, want %q", st.ApprovalStatus, ApprovalNone)
	}
	if st.ProposedAction != nil {
		t.Error("ProposedAction should start nil")
	}
	if st.Summary != "" {
		t.Error("Summary should start empty")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	st := New("original", ModeWorkspace)
	st.RawData["github_repos"] = "repo list"
	st.PrioritizedTasks = []string{"task one"}
	st.ProposedAction = &ProposedAction{Type: "schedule", Status: "pending_approval"}

	snapshot := st.Clone()

	st.AppendLog("assistant", "later entry")
	st.RawData["github_repos"] = "changed"
	st.PrioritizedTasks[0] = "changed"
	st.ProposedAction.Status = "approved"

	if len(snapshot.ConversationLog) != 1 {
		t.Errorf("snapshot log grew with the original: %d entries", len(snapshot.ConversationLog))
	}
	if snapshot.RawData["github_repos"] != "repo list" {
		t.Errorf("snapshot RawData mutated: %q", snapshot.RawData["github_repos"])
	}
	if snapshot.PrioritizedTasks[0] != "task one" {
		t.Errorf("snapshot tasks mutated: %q", snapshot.PrioritizedTasks[0])
	}
	if snapshot.ProposedAction.Status != "pending_approval" {
		t.Errorf("snapshot action mutated: %q", snapshot.ProposedAction.Status)
	}
}

func TestBuildResultPersonal(t *testing.T) {
	st := New("plan my day", ModePersonal)
	st.PrioritizedTasks = []string{"tasks"}
	st.ScheduleProposals = []string{"blocks"}
	st.ResearchFindings = []string{"findings"}
	st.Summary = "your day, sorted"
	st.RequiresApproval = true
	st.ProposedAction = &ProposedAction{Type: "schedule"}

	res := BuildResult(st)

	if res.Workspace != nil {
		t.Error("personal result must not carry a workspace section")
	}
	if res.Personal == nil {
		t.Fatal("personal result missing personal section")
	}
	if res.Personal.ScheduleProposals[0] != "blocks" {
		t.Errorf("ScheduleProposals = %v", res.Personal.ScheduleProposals)
	}
	if !res.RequiresApproval || res.ProposedAction.Type != "schedule" {
		t.Errorf("approval fields not projected: %+v", res)
	}
}

func TestBuildResultWorkspace(t *testing.T) {
	st := New("daily digest", ModeWorkspace)
	st.RawData = map[string]string{"github_repos": "data"}
	st.Context = "graph context"
	st.Summary = "team status"

	res := BuildResult(st)

	if res.Personal != nil {
		t.Error("workspace result must not carry a personal section")
	}
	if res.Workspace == nil {
		t.Fatal("workspace result missing workspace section")
	}
	if res.Workspace.RawData["github_repos"] != "data" {
		t.Errorf("RawData = %v", res.Workspace.RawData)
	}
	if res.Workspace.Context != "graph context" {
		t.Errorf("Context = %q", res.Workspace.Context)
	}
}

func TestBuildResultEmptySummaryFallback(t *testing.T) {
	st := New("anything", ModePersonal)

	res := BuildResult(st)
	if res.Summary != "No summary generated." {
		t.Errorf("Summary = %q, want fallback", res.Summary)
	}
}

func TestDegraded(t *testing.T) {
	res := Degraded(ModeWorkspace, "Agent pipeline error: boom. Falling back to simple mode.")

	if res.Summary == "" {
		t.Error("degraded result must still carry a summary")
	}
	if res.RequiresApproval || res.ProposedAction != nil {
		t.Error("degraded result must not request approval")
	}
	if res.Workspace == nil || len(res.Workspace.PrioritizedTasks) != 0 {
		t.Errorf("degraded workspace section = %+v", res.Workspace)
	}
}
