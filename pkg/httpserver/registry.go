package httpserver

import (
	"net"
	"net/http"
	"sync"
)

// registry tracks open connections through http.Server.ConnState.
type registry struct {
	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

func newRegistry() *registry {
	return &registry{conns: make(map[net.Conn]struct{})}
}

func (r *registry) track(c net.Conn, state http.ConnState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch state {
	case http.StateNew:
		r.conns[c] = struct{}{}
	case http.StateClosed, http.StateHijacked:
		delete(r.conns, c)
	}
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// closeAll closes every tracked connection and returns how many there were.
func (r *registry) closeAll() int {
	r.mu.Lock()
	conns := make([]net.Conn, 0, len(r.conns))
	for c := range r.conns {
		conns = append(conns, c)
	}
	clear(r.conns)
	r.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
	return len(conns)
}
