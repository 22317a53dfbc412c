package checkpoint

import (
	"context"
	"time"

	"velocity-ai-be/pkg/agent/state"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps checkpoints in-process. Snapshots expire after a
// day so abandoned runs don't pile up.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(24*time.Hour, 1*time.Hour),
	}
}

func (s *MemoryStore) Save(ctx context.Context, runID string, st *state.State) error {
	s.cache.Set(runID, st.Clone(), cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, runID string) (*state.State, bool, error) {
	if x, found := s.cache.Get(runID); found {
		// Clone on the way out too: callers mutate what they load, and
		// the stored snapshot must not change until the next Save.
		return x.(*state.State).Clone(), true, nil
	}
	return nil, false, nil
}
