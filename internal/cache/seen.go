// Package cache holds the bounded recently-seen set used to drop redelivered
// event messages.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Seen remembers up to maxSize keys for ttl, evicting the least recently
// marked key first.
type Seen[K comparable] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[K]*list.Element
	lru     *list.List
	now     func() time.Time
}

type seenItem[K comparable] struct {
	key       K
	expiresAt time.Time
}

// NewSeen creates a set holding at most maxSize keys, each for ttl.
func NewSeen[K comparable](maxSize int, ttl time.Duration) *Seen[K] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Seen[K]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[K]*list.Element),
		lru:     list.New(),
		now:     time.Now,
	}
}

// Contains reports whether key was marked and has not expired.
func (s *Seen[K]) Contains(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[key]
	if !ok {
		return false
	}
	if s.now().After(elem.Value.(*seenItem[K]).expiresAt) {
		s.remove(elem)
		return false
	}
	return true
}

// Mark records key, refreshing its expiry when already present.
func (s *Seen[K]) Mark(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := s.now().Add(s.ttl)
	if elem, ok := s.items[key]; ok {
		elem.Value.(*seenItem[K]).expiresAt = expiresAt
		s.lru.MoveToFront(elem)
		return
	}

	s.items[key] = s.lru.PushFront(&seenItem[K]{key: key, expiresAt: expiresAt})
	if s.lru.Len() > s.maxSize {
		s.remove(s.lru.Back())
	}
}

// Size returns the number of keys currently held, expired ones included.
func (s *Seen[K]) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Seen[K]) remove(elem *list.Element) {
	delete(s.items, elem.Value.(*seenItem[K]).key)
	s.lru.Remove(elem)
}
