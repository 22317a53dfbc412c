// FILE: internal/repository/memory/graph_cache_repository.go
package memory

import (
	"github.com/patrickmn/go-cache"
)

// GraphCacheRepository backs the in-process knowledge graph with a
// go-cache instance. Entries never expire; the graph lives as long as
// the process does.
type GraphCacheRepository struct {
	cache *cache.Cache
}

func NewGraphCacheRepository() *GraphCacheRepository {
	return &GraphCacheRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *GraphCacheRepository) Get(key string) (interface{}, bool) {
	return r.cache.Get(key)
}

func (r *GraphCacheRepository) Set(key string, value interface{}) {
	r.cache.Set(key, value, cache.NoExpiration)
}

func (r *GraphCacheRepository) Delete(key string) {
	r.cache.Delete(key)
}
