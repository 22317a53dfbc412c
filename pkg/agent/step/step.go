// Package step implements the six pipeline step functions. Each step
// reads its documented inputs from the shared state, calls the LLM
// and/or tool collaborators, writes its outputs back, and appends
// exactly one conversation-log entry describing its outcome.
//
// Steps never fail: every external call is individually guarded and a
// failure degrades that one sub-result (an error string, an empty
// list) without aborting the run. Only a programming error may panic
// past a step, and the executor recovers it.
package step

import (
	"context"
	"time"

	"velocity-ai-be/pkg/agent/state"
)

// Step is one named transformation in the pipeline.
type Step interface {
	Name() string
	Run(ctx context.Context, st *state.State)
}

// Step names double as router node identifiers.
const (
	NameIngestor       = "ingestor"
	NameContextMatcher = "context_matcher"
	NamePrioritizer    = "prioritizer"
	NamePlanner        = "planner"
	NameResearcher     = "researcher"
	NameSummarizer     = "summarizer"
)

// Per-call deadlines. A timeout degrades that one call like any other
// collaborator failure; it never aborts the run.
const (
	llmCallTimeout   = 20 * time.Second
	toolCallTimeout  = 15 * time.Second
	graphCallTimeout = 10 * time.Second
)

// truncate bounds prompt fragments without splitting a UTF-8 sequence.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
