package signal

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yashkandiyal/real-time-code--editor/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

// Conn wraps a websocket with a buffered outbound channel. TrySend never
// blocks: a full buffer means a slow consumer and the frame is dropped.
type Conn struct {
	ws   *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newConn(ws *websocket.Conn, buffer int) *Conn {
	return &Conn{
		ws:   ws,
		send: make(chan core.Frame, buffer),
	}
}

func (c *Conn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
		return nil
	default:
		return ErrBackpressure
	}
}

func (c *Conn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.ws.Close()
	c.mu.Unlock()
}
