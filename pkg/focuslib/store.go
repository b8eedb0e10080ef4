package focuslib

import "sync"

// Store is the persisted key-value surface shared by every window of the
// app. Implementations must make Set a synchronous write-through: when Set
// returns, the document is durable enough that a window closing immediately
// afterwards loses nothing. A missing key reads as nil with no error.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	// OnChange subscribes to mutations of key and returns an unsubscribe
	// func. Callbacks receive the full new document.
	OnChange(key string, fn func(value []byte)) func()
}

// MemStore is an in-process Store used by tests and as a fallback when no
// profile directory is available. Change callbacks fire synchronously.
type MemStore struct {
	mu   sync.Mutex
	kv   map[string][]byte
	next int
	subs map[string]map[int]func([]byte)
}

func NewMemStore() *MemStore {
	return &MemStore{
		kv:   make(map[string][]byte),
		subs: make(map[string]map[int]func([]byte)),
	}
}

func (s *MemStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.kv[key]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (s *MemStore) Set(key string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	s.mu.Lock()
	s.kv[key] = cp
	fns := make([]func([]byte), 0, len(s.subs[key]))
	for _, fn := range s.subs[key] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(cp)
	}
	return nil
}

func (s *MemStore) OnChange(key string, fn func([]byte)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func([]byte))
	}
	id := s.next
	s.next++
	s.subs[key][id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[key], id)
	}
}
