// Package spectate relays the running framebuffer to a single remote
// viewer over a websocket, grounded on the teacher's pkg/display/web
// hub/client pair but simplified to one connection at a time and with
// no input channel back to the emulator (spectating is read-only).
package spectate

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Relay serves frames pushed through PushFrame to whichever single
// viewer is currently connected, skipping frames identical to the
// last one pushed (hashed with xxhash, matching the teacher's frame
// and patch caches' dedup key).
type Relay struct {
	mu       sync.Mutex
	conn     *websocket.Conn
	lastHash uint64

	send chan []byte
}

// NewRelay returns a Relay with no viewer attached yet.
func NewRelay() *Relay {
	return &Relay{send: make(chan []byte, 4)}
}

// Handler returns an http.Handler that upgrades incoming requests to
// a websocket connection and makes the connecting client the current
// viewer, replacing any previous one.
func (r *Relay) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			return
		}

		r.mu.Lock()
		if r.conn != nil {
			r.conn.Close()
		}
		r.conn = conn
		r.lastHash = 0
		r.mu.Unlock()

		go r.writePump(conn)
		r.readPump(conn)
	})
}

// writePump drains r.send into the current connection until it
// fails or is replaced.
func (r *Relay) writePump(conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-r.send:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards viewer input; a spectator connection has no
// control channel, but reads must be drained to process pongs and
// detect disconnects.
func (r *Relay) readPump(conn *websocket.Conn) {
	defer func() {
		r.mu.Lock()
		if r.conn == conn {
			r.conn = nil
		}
		r.mu.Unlock()
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// PushFrame hashes frame and, if it differs from the last frame pushed
// (whether or not that one was delivered), queues it for delivery to the current viewer (if any). Identical
// consecutive frames (the common case when the game is paused or
// showing a static screen) are skipped to save bandwidth.
func (r *Relay) PushFrame(frame []byte) {
	hash := xxhash.Sum64(frame)

	r.mu.Lock()
	unchanged := hash == r.lastHash
	r.lastHash = hash
	hasViewer := r.conn != nil
	r.mu.Unlock()

	if unchanged || !hasViewer {
		return
	}

	select {
	case r.send <- frame:
	default:
		log.Println("spectate: viewer too slow, dropping frame")
	}
}

// ListenAndServe starts an HTTP server exposing the relay at addr and
// blocks until it fails.
func ListenAndServe(addr string, r *Relay) error {
	mux := http.NewServeMux()
	mux.Handle("/spectate", r.Handler())
	return http.ListenAndServe(addr, mux)
}
