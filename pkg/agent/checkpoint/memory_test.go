package checkpoint

import (
	"context"
	"testing"

	"velocity-ai-be/pkg/agent/state"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	st := state.New("plan my day", state.ModePersonal)
	st.PrioritizedTasks = []string{"study"}

	if err := store.Save(ctx, "run-1", st); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, found, err := store.Load(ctx, "run-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !found {
		t.Fatal("Load() found = false")
	}
	if loaded.UserInput != "plan my day" || loaded.PrioritizedTasks[0] != "study" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestMemoryStoreLoadAbsent(t *testing.T) {
	store := NewMemoryStore()

	_, found, err := store.Load(context.Background(), "never-saved")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if found {
		t.Error("Load() found = true for an absent run")
	}
}

func TestMemoryStoreSnapshotsState(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	st := state.New("plan my day", state.ModePersonal)
	if err := store.Save(ctx, "run-1", st); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Mutating the live state must not reach the stored snapshot.
	st.AppendLog("assistant", "[Prioritizer] later")
	st.Summary = "done"

	loaded, _, _ := store.Load(ctx, "run-1")
	if len(loaded.ConversationLog) != 1 {
		t.Errorf("snapshot log entries = %d, want 1", len(loaded.ConversationLog))
	}
	if loaded.Summary != "" {
		t.Errorf("snapshot Summary = %q, want empty", loaded.Summary)
	}
}

func TestMemoryStoreLoadReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	st := state.New("plan my day", state.ModePersonal)
	if err := store.Save(ctx, "run-1", st); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Mutating a loaded state must not reach the stored snapshot: a
	// caller that loads, mutates, and then fails to re-save must leave
	// the checkpoint as it was.
	loaded, _, _ := store.Load(ctx, "run-1")
	loaded.ApprovalStatus = state.ApprovalApproved
	loaded.AppendLog("assistant", "[Planner] mutated")

	reloaded, _, _ := store.Load(ctx, "run-1")
	if reloaded.ApprovalStatus != state.ApprovalNone {
		t.Errorf("snapshot ApprovalStatus = %q, want %q", reloaded.ApprovalStatus, state.ApprovalNone)
	}
	if len(reloaded.ConversationLog) != 1 {
		t.Errorf("snapshot log entries = %d, want 1", len(reloaded.ConversationLog))
	}

	// Two loaders must not alias the same state.
	a, _, _ := store.Load(ctx, "run-1")
	b, _, _ := store.Load(ctx, "run-1")
	if a == b {
		t.Error("Load() returned the same pointer twice")
	}
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := state.New("first", state.ModePersonal)
	second := state.New("second", state.ModePersonal)

	_ = store.Save(ctx, "run-1", first)
	_ = store.Save(ctx, "run-1", second)

	loaded, _, _ := store.Load(ctx, "run-1")
	if loaded.UserInput != "second" {
		t.Errorf("UserInput = %q, want last write", loaded.UserInput)
	}
}
