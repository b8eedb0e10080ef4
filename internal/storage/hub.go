package storage

import "sync"

// changeHub fans a key's new document out to its subscribers. Callbacks run
// synchronously on the mutating goroutine, matching the in-memory store.
type changeHub struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]func([]byte)
}

func (h *changeHub) on(key string, fn func([]byte)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs == nil {
		h.subs = make(map[string]map[int]func([]byte))
	}
	if h.subs[key] == nil {
		h.subs[key] = make(map[int]func([]byte))
	}
	id := h.next
	h.next++
	h.subs[key][id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[key], id)
	}
}

func (h *changeHub) notify(key string, value []byte) {
	h.mu.Lock()
	fns := make([]func([]byte), 0, len(h.subs[key]))
	for _, fn := range h.subs[key] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	for _, fn := range fns {
		fn(value)
	}
}
