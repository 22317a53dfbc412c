// Package router encodes the two pipeline topologies as a pure
// transition function. No cycles, no dynamic branching beyond the mode
// split:
//
//	personal:  prioritizer → planner → researcher → summarizer
//	workspace: ingestor → context_matcher → prioritizer → summarizer
//
// The order is load-bearing: reordering changes which state fields are
// available to downstream steps.
package router

import (
	"fmt"

	"velocity-ai-be/pkg/agent/state"
	"velocity-ai-be/pkg/agent/step"
)

// Node identifies a position in the pipeline. Step nodes share their
// names with the step implementations; Start and Terminal are the
// executor's sentinels.
type Node string

const (
	Start          Node = "start"
	Ingestor       Node = step.NameIngestor
	ContextMatcher Node = step.NameContextMatcher
	Prioritizer    Node = step.NamePrioritizer
	Planner        Node = step.NamePlanner
	Researcher     Node = step.NameResearcher
	Summarizer     Node = step.NameSummarizer
	Terminal       Node = "terminal"
)

// Next returns the node that follows current for the given mode. An
// unknown mode or node is a structural error and fails the run; it is
// never silently defaulted.
func Next(mode state.Mode, current Node) (Node, error) {
	switch mode {
	case state.ModePersonal:
		return nextPersonal(current)
	case state.ModeWorkspace:
		return nextWorkspace(current)
	default:
		return "", fmt.Errorf("unrecognized pipeline mode: %q", mode)
	}
}

func nextPersonal(current Node) (Node, error) {
	switch current {
	case Start:
		return Prioritizer, nil
	case Prioritizer:
		return Planner, nil
	case Planner:
		return Researcher, nil
	case Researcher:
		return Summarizer, nil
	case Summarizer:
		return Terminal, nil
	default:
		return "", fmt.Errorf("node %q is not part of the personal pipeline", current)
	}
}

func nextWorkspace(current Node) (Node, error) {
	switch current {
	case Start:
		return Ingestor, nil
	case Ingestor:
		return ContextMatcher, nil
	case ContextMatcher:
		return Prioritizer, nil
	case Prioritizer:
		return Summarizer, nil
	case Summarizer:
		return Terminal, nil
	default:
		return "", fmt.Errorf("node %q is not part of the workspace pipeline", current)
	}
}
