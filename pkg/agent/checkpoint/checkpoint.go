// Package checkpoint persists pipeline state snapshots between steps,
// keyed by run id. The store is upsert-only: last write per run wins,
// and no cross-run coordination is required.
package checkpoint

import (
	"context"

	"velocity-ai-be/pkg/agent/state"
)

// Store is the executor's persistence collaborator. Load reports
// absence through the bool, reserving the error for real store faults.
type Store interface {
	Save(ctx context.Context, runID string, st *state.State) error
	Load(ctx context.Context, runID string) (*state.State, bool, error)
}
