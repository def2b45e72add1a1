package cart

import (
	lru "github.com/hashicorp/golang-lru"
)

// lruStore keeps session carts in a bounded in-memory cache. Carts are
// ephemeral, the oldest sessions simply fall out when the limit is reached.
type lruStore struct {
	cache *lru.Cache
}

func NewLRUStore(size int) (Store, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &lruStore{cache: cache}, nil
}

func (s *lruStore) Read(sessionID string) (Cart, bool) {
	v, ok := s.cache.Get(sessionID)
	if !ok {
		return Cart{}, false
	}
	crt, ok := v.(Cart)
	return crt, ok
}

func (s *lruStore) Write(sessionID string, crt Cart) {
	s.cache.Add(sessionID, crt)
}

func (s *lruStore) Clear(sessionID string) {
	s.cache.Remove(sessionID)
}
