package http

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/m-mizutani/goerr/v2"
)

const writeTimeout = 10 * time.Second

// ErrConnClosed is returned when writing to a connection that has already
// been closed
var ErrConnClosed = goerr.New("connection already closed")

// Conn wraps a websocket connection with a closed flag so a deferred push
// can check liveness instead of writing into a dead socket.
type Conn struct {
	mu     sync.Mutex
	ws     *websocket.Conn
	closed bool
}

func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

// Alive reports whether the connection is still open.
func (c *Conn) Alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

// Send writes one text message. Closed connections return ErrConnClosed
// instead of failing the underlying write.
func (c *Conn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return goerr.Wrap(ErrConnClosed, "dropping message")
	}

	if err := c.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return goerr.Wrap(err, "failed to set write deadline")
	}
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return goerr.Wrap(err, "failed to write message")
	}
	return nil
}

// CloseWithReason sends a close control frame and marks the connection
// closed. Safe to call more than once.
func (c *Conn) CloseWithReason(code int, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	msg := websocket.FormatCloseMessage(code, reason)
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
	_ = c.ws.Close()
}

// Close marks the connection closed without a close frame.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	_ = c.ws.Close()
}

// Hub is the registry of open dashboard channels. It is created once at
// process start and handed to the channel handlers; access is synchronized
// because channels open and close on separate goroutines.
type Hub struct {
	mu    sync.RWMutex
	conns map[*Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[*Conn]struct{}),
	}
}

func (h *Hub) Register(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

func (h *Hub) Unregister(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
}

// Contains reports whether the connection is registered.
func (h *Hub) Contains(c *Conn) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[c]
	return ok
}

// Len returns the number of open channels.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
