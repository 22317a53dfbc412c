package state

// Result is the caller-facing projection of a finished run. The
// mode-specific fields live in a tagged section so a personal result
// cannot carry workspace-only data and vice versa: exactly one of
// Personal/Workspace is non-nil.
type Result struct {
	Summary          string          `json:"summary"`
	RequiresApproval bool            `json:"requires_approval"`
	ProposedAction   *ProposedAction `json:"proposed_action,omitempty"`
	Sources          []string        `json:"sources"`
	Mode             Mode            `json:"mode"`

	Personal  *PersonalResult  `json:"personal,omitempty"`
	Workspace *WorkspaceResult `json:"workspace,omitempty"`
}

// PersonalResult carries the fields only the personal pipeline produces.
type PersonalResult struct {
	PrioritizedTasks  []string `json:"prioritized_tasks"`
	ScheduleProposals []string `json:"schedule_proposals"`
	ResearchFindings  []string `json:"research_findings"`
}

// WorkspaceResult carries the fields only the workspace pipeline produces.
type WorkspaceResult struct {
	PrioritizedTasks []string          `json:"prioritized_tasks"`
	RawData          map[string]string `json:"raw_data"`
	Context          string            `json:"context"`
}

// BuildResult projects a terminal state into the caller contract.
func BuildResult(s *State) *Result {
	summary := s.Summary
	if summary == "" {
		summary = "No summary generated."
	}

	res := &Result{
		Summary:          summary,
		RequiresApproval: s.RequiresApproval,
		ProposedAction:   s.ProposedAction,
		Sources:          s.Sources,
		Mode:             s.Mode,
	}

	switch s.Mode {
	case ModeWorkspace:
		res.Workspace = &WorkspaceResult{
			PrioritizedTasks: s.PrioritizedTasks,
			RawData:          s.RawData,
			Context:          s.Context,
		}
	default:
		res.Personal = &PersonalResult{
			PrioritizedTasks:  s.PrioritizedTasks,
			ScheduleProposals: s.ScheduleProposals,
			ResearchFindings:  s.ResearchFindings,
		}
	}
	return res
}

// Degraded builds the fallback result returned when the executor itself
// fails: a human-readable explanation in place of a summary, every list
// empty, nothing pending approval.
func Degraded(mode Mode, reason string) *Result {
	res := &Result{
		Summary:          reason,
		RequiresApproval: false,
		ProposedAction:   nil,
		Sources:          []string{},
		Mode:             mode,
	}
	switch mode {
	case ModeWorkspace:
		res.Workspace = &WorkspaceResult{
			PrioritizedTasks: []string{},
			RawData:          map[string]string{},
		}
	default:
		res.Personal = &PersonalResult{
			PrioritizedTasks:  []string{},
			ScheduleProposals: []string{},
			ResearchFindings:  []string{},
		}
	}
	return res
}
