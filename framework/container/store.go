package container

import (
	"sort"
	"sync"
)

// Store is the key/value contract behind the registry, the constructor
// argument table and the instance cache. The default is an unsynchronised
// map; pass another implementation through WithRegistry, WithArgumentTable
// or WithInstanceCache.
type Store[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Delete(key string)
	Keys() []string
}

// MapStore is the default Store. It is not safe for concurrent use.
type MapStore[V any] struct {
	items map[string]V
}

// NewMapStore returns an empty MapStore.
func NewMapStore[V any]() *MapStore[V] {
	return &MapStore[V]{items: make(map[string]V)}
}

func (s *MapStore[V]) Get(key string) (V, bool) {
	v, ok := s.items[key]
	return v, ok
}

func (s *MapStore[V]) Set(key string, value V) { s.items[key] = value }

func (s *MapStore[V]) Delete(key string) { delete(s.items, key) }

// Keys returns the stored keys in sorted order.
func (s *MapStore[V]) Keys() []string {
	out := make([]string, 0, len(s.items))
	for k := range s.items {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SyncStore guards another Store with a RWMutex. It makes individual store
// operations safe; it does not make a whole resolution atomic.
type SyncStore[V any] struct {
	mu    sync.RWMutex
	inner Store[V]
}

// NewSyncStore wraps inner. A nil inner gets a fresh MapStore.
func NewSyncStore[V any](inner Store[V]) *SyncStore[V] {
	if inner == nil {
		inner = NewMapStore[V]()
	}
	return &SyncStore[V]{inner: inner}
}

func (s *SyncStore[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Get(key)
}

func (s *SyncStore[V]) Set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Set(key, value)
}

func (s *SyncStore[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Delete(key)
}

func (s *SyncStore[V]) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Keys()
}
