// Package executor drives a pipeline run from initial state to
// terminal state: ask the router for the next node, run that step,
// checkpoint, repeat. It also owns the human-in-the-loop gate: the
// approve/reject calls that flip a checkpointed run's approval status
// after the pipeline has already returned.
package executor

import (
	"context"
	"fmt"
	"log"

	"velocity-ai-be/pkg/agent/checkpoint"
	"velocity-ai-be/pkg/agent/router"
	"velocity-ai-be/pkg/agent/state"
	"velocity-ai-be/pkg/agent/step"
	"velocity-ai-be/pkg/graph"
	"velocity-ai-be/pkg/llm"
	"velocity-ai-be/pkg/tools"
)

// Executor runs the fixed-topology agent pipelines.
type Executor struct {
	steps  map[router.Node]step.Step
	store  checkpoint.Store
	logger *log.Logger
}

func New(
	provider llm.LLMProvider,
	registry *tools.Registry,
	memory graph.Memory,
	store checkpoint.Store,
	logger *log.Logger,
) *Executor {
	return &Executor{
		steps: map[router.Node]step.Step{
			router.Ingestor:       step.NewIngestor(registry),
			router.ContextMatcher: step.NewContextMatcher(provider, memory),
			router.Prioritizer:    step.NewPrioritizer(provider, memory),
			router.Planner:        step.NewPlanner(provider),
			router.Researcher:     step.NewResearcher(provider, registry, memory),
			router.Summarizer:     step.NewSummarizer(provider),
		},
		store:  store,
		logger: logger,
	}
}

// Run executes the pipeline for the given mode and returns the final
// result. The only error it returns is an unrecognized mode; every
// other failure (a panicking step, a broken transition) degrades
// into a result whose summary explains what happened, so the caller
// never surfaces a hard failure to the end user.
//
// Run does not block on approval: when the planner requests a gate,
// the remaining steps still execute and the pending action is surfaced
// in the result for the caller to present. Approve/Reject pick it up
// from the checkpoint later.
func (e *Executor) Run(ctx context.Context, userInput, mode, runID string) (*state.Result, error) {
	parsedMode, err := state.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	result := e.run(ctx, userInput, parsedMode, runID)
	return result, nil
}

func (e *Executor) run(ctx context.Context, userInput string, mode state.Mode, runID string) (result *state.Result) {
	// A step is never supposed to fail, so anything escaping one is a
	// programming error. Catch it once here and degrade.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Printf("[ERROR] Run %s panicked: %v", runID, r)
			result = state.Degraded(mode, fmt.Sprintf("Agent pipeline error: %v. Falling back to simple mode.", r))
		}
	}()

	st := state.New(userInput, mode)
	e.logger.Printf("[RUN %s] Starting %s pipeline: %s", runID, mode, truncate(userInput, 50))

	// ═══════════════════════════════════════════════════════════════
	// ROUTER LOOP: one step at a time, checkpoint after each
	// ═══════════════════════════════════════════════════════════════
	node := router.Start
	for i := 1; ; i++ {
		next, err := router.Next(mode, node)
		if err != nil {
			e.logger.Printf("[ERROR] Run %s: %v", runID, err)
			return state.Degraded(mode, fmt.Sprintf("Agent pipeline error: %v. Falling back to simple mode.", err))
		}
		if next == router.Terminal {
			break
		}

		current, ok := e.steps[next]
		if !ok {
			e.logger.Printf("[ERROR] Run %s: no step registered for node %q", runID, next)
			return state.Degraded(mode, fmt.Sprintf("Agent pipeline error: no step registered for node %q. Falling back to simple mode.", next))
		}

		e.logger.Printf("[STEP %d] %s...", i, current.Name())
		current.Run(ctx, st)
		e.checkpoint(ctx, runID, st)

		node = next
	}

	// The planner requested a gate; mark the run as awaiting a decision.
	// Steps never touch approval_status; only the executor and the
	// approve/reject calls do.
	if st.RequiresApproval {
		st.ApprovalStatus = state.ApprovalPending
		e.checkpoint(ctx, runID, st)
	}

	e.logger.Printf("[RUN %s] Finished: %d log entries, requires_approval=%t", runID, len(st.ConversationLog), st.RequiresApproval)
	return state.BuildResult(st)
}

// checkpoint persists the state after a step. A failing store degrades
// resumability, not the run itself.
func (e *Executor) checkpoint(ctx context.Context, runID string, st *state.State) {
	if err := e.store.Save(ctx, runID, st); err != nil {
		e.logger.Printf("[WARN] Run %s: checkpoint save failed: %v", runID, err)
	}
}

// Approve flips the checkpointed run's pending action to approved and
// returns the updated state so the caller can perform the gated side
// effect (writing the calendar). It never re-enters the pipeline.
func (e *Executor) Approve(ctx context.Context, runID string) (*state.State, error) {
	return e.decide(ctx, runID, state.ApprovalApproved, "approved")
}

// Reject flips the checkpointed run's pending action to rejected. No
// side effect follows a rejection.
func (e *Executor) Reject(ctx context.Context, runID string) (*state.State, error) {
	return e.decide(ctx, runID, state.ApprovalRejected, "rejected")
}

func (e *Executor) decide(ctx context.Context, runID string, status state.ApprovalStatus, actionStatus string) (*state.State, error) {
	st, found, err := e.store.Load(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	if !found {
		return nil, fmt.Errorf("no pipeline run found for %q", runID)
	}
	if st.ProposedAction == nil {
		return nil, fmt.Errorf("run %q has no action awaiting approval", runID)
	}

	st.ApprovalStatus = status
	st.ProposedAction.Status = actionStatus
	st.RequiresApproval = false

	if err := e.store.Save(ctx, runID, st); err != nil {
		return nil, fmt.Errorf("failed to save decision for run %s: %w", runID, err)
	}

	e.logger.Printf("[RUN %s] Proposed action %s", runID, actionStatus)
	return st, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
