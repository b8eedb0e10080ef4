package server

import (
	"log"
	"sync"

	"github.com/lofiroom/lofid/common"
)

// Pool tracks the windows currently attached for pushed updates, together
// with each window's reported visibility. Broadcasts go to every attached
// window except the mutation's origin, which already received the result in
// its response.
type Pool struct {
	mu      sync.RWMutex
	windows map[*SyncConn]*windowState
	log     *log.Logger
}

type windowState struct {
	visible bool
}

func NewPool(l *log.Logger) *Pool {
	return &Pool{
		windows: make(map[*SyncConn]*windowState),
		log:     l,
	}
}

// Attach registers a window connection for pushed updates. Windows start
// visible until they report otherwise.
func (p *Pool) Attach(conn *SyncConn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.windows[conn] = &windowState{visible: true}
}

// Detach removes a window connection. Detaching an unknown connection is a
// no-op.
func (p *Pool) Detach(conn *SyncConn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.windows, conn)
}

// SetVisible records the window's reported visibility. Attaches the window
// if it was not attached yet.
func (p *Pool) SetVisible(conn *SyncConn, visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	w, ok := p.windows[conn]
	if !ok {
		w = &windowState{}
		p.windows[conn] = w
	}
	w.visible = visible
}

// AnyVisible reports whether at least one attached window is visible. With
// no attached windows it returns false, which lets the engine suppress tick
// publication entirely.
func (p *Pool) AnyVisible() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, w := range p.windows {
		if w.visible {
			return true
		}
	}
	return false
}

// Count returns the number of attached windows.
func (p *Pool) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.windows)
}

// Broadcast pushes an update to every attached window except origin.
// Windows whose connection write fails are dropped from the pool; a dead
// window must not stall the others.
func (p *Pool) Broadcast(utype common.UpdateType, msg any, origin *SyncConn) {
	data := MakeResult(utype, msg)
	p.mu.RLock()
	conns := make([]*SyncConn, 0, len(p.windows))
	for conn := range p.windows {
		if conn != origin {
			conns = append(conns, conn)
		}
	}
	p.mu.RUnlock()

	var dead []*SyncConn
	for _, conn := range conns {
		if err := conn.Write(data); err != nil {
			p.log.Printf("error broadcasting to window: %v", err)
			dead = append(dead, conn)
		}
	}
	if len(dead) > 0 {
		p.mu.Lock()
		for _, conn := range dead {
			delete(p.windows, conn)
			_ = conn.Conn.Close()
		}
		p.mu.Unlock()
	}
}
