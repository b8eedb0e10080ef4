package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"

	cws "github.com/coder/websocket"
	"github.com/creachadair/jrpc2"

	"github.com/lofiroom/lofid/common"
)

// WebServer is the HTTP bridge for browser surfaces (the web widget, the
// overlay). It exposes the JSON-RPC methods over POST /rpc and over a
// WebSocket at /ws; WebSocket connections additionally receive pushed sync
// and tick notifications.
type WebServer struct {
	port      int
	l         *log.Logger
	rpc       *RPCServer
	notifier  *RPCNotifier
	listenAll bool
	server    *http.Server
	mu        sync.Mutex
}

func NewWebServer(l *log.Logger, rpc *RPCServer, notifier *RPCNotifier, port int) *WebServer {
	return &WebServer{
		port:      port,
		l:         l,
		rpc:       rpc,
		notifier:  notifier,
		listenAll: false,
	}
}

// Notifier returns the push-notification hub for this bridge.
func (s *WebServer) Notifier() *RPCNotifier {
	return s.notifier
}

// handleWS upgrades the request and runs a dedicated jrpc2 server over the
// WebSocket until the peer disconnects. The server is registered with the
// notifier for its lifetime so the window receives pushes.
func (s *WebServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := cws.Accept(w, r, nil)
	if err != nil {
		s.l.Println("Error accepting websocket:", err.Error())
		return
	}
	ch := &wsChannel{conn: conn, ctx: r.Context()}
	srv := jrpc2.NewServer(s.rpc.methods, nil)
	srv.Start(ch)
	s.notifier.Register(srv)
	defer s.notifier.Unregister(srv)
	if err := srv.Wait(); err != nil {
		s.l.Println("WebSocket session ended:", err.Error())
	}
}

func (s *WebServer) handler() http.Handler {
	mux := http.NewServeMux()
	// The HTTP bridge requires the shared secret; without one it stays
	// disabled while the local WebSocket remains available.
	if s.rpc.secret != "" {
		mux.Handle("/rpc", requireToken(s.rpc.secret, s.rpc.bridge))
	}
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *WebServer) addr() string {
	host := common.TCPHost
	if s.listenAll {
		host = ""
	}
	return fmt.Sprintf("%s:%d", host, s.port)
}

func (s *WebServer) Start() error {
	s.mu.Lock()
	s.server = &http.Server{
		Addr:    s.addr(),
		Handler: s.handler(),
	}
	s.mu.Unlock()

	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil // Expected during shutdown
	}
	return err
}

// Shutdown gracefully stops the web bridge.
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	s.rpc.Close()
	return s.server.Shutdown(ctx)
}
