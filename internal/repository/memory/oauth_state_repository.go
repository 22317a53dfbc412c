package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// OAuthState ties a pending OAuth redirect back to the user and the
// service they asked to connect.
type OAuthState struct {
	UserId    uuid.UUID
	Service   string
	CreatedAt time.Time
}

// OAuthStateRepository keeps pending OAuth states in memory. States are
// single-use and short-lived, so a process-local cache is enough.
type OAuthStateRepository struct {
	cache *cache.Cache
}

func NewOAuthStateRepository() *OAuthStateRepository {
	// States expire after 10 minutes; purge sweep every minute.
	c := cache.New(10*time.Minute, 1*time.Minute)
	return &OAuthStateRepository{
		cache: c,
	}
}

func (r *OAuthStateRepository) Save(state string, data *OAuthState) {
	r.cache.Set(state, data, cache.DefaultExpiration)
}

// Consume returns and deletes the state, so a replayed callback fails.
func (r *OAuthStateRepository) Consume(state string) (*OAuthState, bool) {
	x, found := r.cache.Get(state)
	if !found {
		return nil, false
	}
	r.cache.Delete(state)
	return x.(*OAuthState), true
}
