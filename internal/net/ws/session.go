// Package ws streams stored battle records to websocket watchers: a hello
// frame, event batches paced at battle speed times a client-chosen rate, and
// a closing summary. Watchers are read for pings and rate changes only; the
// playback itself is one-directional.
package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds a single frame write. A watcher that stops reading
	// for this long is dropped.
	writeWait = 10 * time.Second

	// maxInboundBytes caps watcher messages; pings and rate changes are tiny.
	maxInboundBytes = 512
)

// Session wraps one watcher connection. The playback goroutine and the read
// loop's pong path both write, so frames are serialized here.
type Session struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newSession(conn *websocket.Conn) *Session {
	return &Session{conn: conn}
}

// WriteJSON sends one frame and reports its encoded size.
func (s *Session) WriteJSON(v any) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	return len(data), s.write(websocket.TextMessage, data)
}

// CloseNormal sends a normal-closure frame; the watcher is expected to hang
// up once it sees it.
func (s *Session) CloseNormal() error {
	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	return s.write(websocket.CloseMessage, message)
}

func (s *Session) write(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(messageType, data)
}
