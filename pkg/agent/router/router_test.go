package router

import (
	"testing"

	"velocity-ai-be/pkg/agent/state"
)

func TestNextTopology(t *testing.T) {
	tests := []struct {
		name string
		mode state.Mode
		walk []Node
	}{
		{
			name: "personal pipeline",
			mode: state.ModePersonal,
			walk: []Node{Start, Prioritizer, Planner, Researcher, Summarizer, Terminal},
		},
		{
			name: "workspace pipeline",
			mode: state.ModeWorkspace,
			walk: []Node{Start, Ingestor, ContextMatcher, Prioritizer, Summarizer, Terminal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < len(tt.walk)-1; i++ {
				got, err := Next(tt.mode, tt.walk[i])
				if err != nil {
					t.Fatalf("Next(%s, %s) error = %v", tt.mode, tt.walk[i], err)
				}
				if got != tt.walk[i+1] {
					t.Errorf("Next(%s, %s) = %s, want %s", tt.mode, tt.walk[i], got, tt.walk[i+1])
				}
			}
		})
	}
}

func TestNextUnknownMode(t *testing.T) {
	if _, err := Next(state.Mode("turbo"), Start); err == nil {
		t.Error("Next() with unknown mode should fail")
	}
}

func TestNextForeignNode(t *testing.T) {
	// Workspace-only nodes are not reachable in the personal pipeline
	// and vice versa.
	if _, err := Next(state.ModePersonal, Ingestor); err == nil {
		t.Error("Next(personal, ingestor) should fail")
	}
	if _, err := Next(state.ModeWorkspace, Planner); err == nil {
		t.Error("Next(workspace, planner) should fail")
	}
}
