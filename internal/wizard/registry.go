package wizard

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mbousquet-onestock/exchange/internal/catalog"
)

// Registry holds live wizard sessions keyed by the id stored in the
// customer's cookie. An LRU cap keeps abandoned sessions from piling up
// for the lifetime of the process; evicted customers simply start over.
type Registry struct {
	cache   *lru.Cache[string, *Session]
	catalog *catalog.Catalog
}

func NewRegistry(capacity int, c *catalog.Catalog) (*Registry, error) {
	cache, err := lru.New[string, *Session](capacity)
	if err != nil {
		return nil, err
	}
	return &Registry{cache: cache, catalog: c}, nil
}

func (r *Registry) Get(id string) (*Session, bool) {
	return r.cache.Get(id)
}

// GetOrCreate returns the session for id, creating a fresh one when
// none exists (first visit, or evicted).
func (r *Registry) GetOrCreate(id string) *Session {
	if s, ok := r.cache.Get(id); ok {
		return s
	}
	s := NewSession(r.catalog)
	r.cache.Add(id, s)
	return s
}

// Drop forgets a session, e.g. when the customer cancels.
func (r *Registry) Drop(id string) {
	r.cache.Remove(id)
}

func (r *Registry) Len() int {
	return r.cache.Len()
}
