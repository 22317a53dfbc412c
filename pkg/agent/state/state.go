// Package state defines the shared record threaded through an agent
// pipeline run. One State instance is created per run, mutated in place
// by exactly one step at a time, and checkpointed after every step.
package state

import (
	"fmt"
)

// Mode selects which pipeline topology a run follows.
type Mode string

const (
	ModePersonal  Mode = "personal"
	ModeWorkspace Mode = "workspace"
)

// ParseMode validates a caller-supplied mode string. An unknown mode is
// a structural error: the run must be rejected, not silently defaulted.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePersonal:
		return ModePersonal, nil
	case ModeWorkspace:
		return ModeWorkspace, nil
	default:
		return "", fmt.Errorf("unrecognized pipeline mode: %q", s)
	}
}

// ApprovalStatus tracks the human decision on a proposed action. It is
// flipped only by explicit Approve/Reject calls, never by a step.
type ApprovalStatus string

const (
	ApprovalNone     ApprovalStatus = "none"
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Message is one role-tagged entry in the run's conversation log.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ProposedAction describes the action awaiting human approval.
type ProposedAction struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// State is the pipeline's shared mutable record.
//
// Field ownership: RawData and Sources are written by the ingest step,
// PrioritizedTasks by prioritize, ScheduleProposals/RequiresApproval/
// ProposedAction by plan, ResearchFindings by research, Context by
// cross-reference (and prioritize as a transient read), Summary by
// summarize. ConversationLog is append-only; every step appends exactly
// one entry.
type State struct {
	ConversationLog   []Message         `json:"conversation_log"`
	UserInput         string            `json:"user_input"`
	Mode              Mode              `json:"mode"`
	RawData           map[string]string `json:"raw_data"`
	PrioritizedTasks  []string          `json:"prioritized_tasks"`
	ScheduleProposals []string          `json:"schedule_proposals"`
	ResearchFindings  []string          `json:"research_findings"`
	Context           string            `json:"context"`
	RequiresApproval  bool              `json:"requires_approval"`
	ProposedAction    *ProposedAction   `json:"proposed_action,omitempty"`
	ApprovalStatus    ApprovalStatus    `json:"approval_status"`
	Summary           string            `json:"summary"`
	Sources           []string          `json:"sources"`
}

// New builds the initial state for a run. The conversation log always
// opens with the triggering user message.
func New(userInput string, mode Mode) *State {
	return &State{
		ConversationLog: []Message{
			{Role: "user", Content: userInput},
		},
		UserInput:         userInput,
		Mode:              mode,
		RawData:           map[string]string{},
		PrioritizedTasks:  []string{},
		ScheduleProposals: []string{},
		ResearchFindings:  []string{},
		Context:           "",
		RequiresApproval:  false,
		ProposedAction:    nil,
		ApprovalStatus:    ApprovalNone,
		Summary:           "",
		Sources:           []string{},
	}
}

// AppendLog records a step outcome in the conversation log.
func (s *State) AppendLog(role, content string) {
	s.ConversationLog = append(s.ConversationLog, Message{Role: role, Content: content})
}

// Clone returns a snapshot that shares nothing with the receiver, so a
// stored checkpoint is not affected by later in-place mutation.
func (s *State) Clone() *State {
	cp := *s

	cp.ConversationLog = append([]Message(nil), s.ConversationLog...)
	cp.PrioritizedTasks = append([]string(nil), s.PrioritizedTasks...)
	cp.ScheduleProposals = append([]string(nil), s.ScheduleProposals...)
	cp.ResearchFindings = append([]string(nil), s.ResearchFindings...)
	cp.Sources = append([]string(nil), s.Sources...)

	if s.RawData != nil {
		cp.RawData = make(map[string]string, len(s.RawData))
		for k, v := range s.RawData {
			cp.RawData[k] = v
		}
	}
	if s.ProposedAction != nil {
		action := *s.ProposedAction
		cp.ProposedAction = &action
	}
	return &cp
}
