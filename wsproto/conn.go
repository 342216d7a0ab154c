package wsproto

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is one client's connection state: handshake gate, pending-request
// counter, rate limiter and subscription set (mu-guarded subscriptions
// map, atomic closed flag, per-conn rate bucket) wired to a real
// *websocket.Conn, with opcode-keyed framing in place of JSON-RPC dispatch.
type Conn struct {
	id     uint64
	ws     *websocket.Conn
	writeMu sync.Mutex

	handshakeDone atomic.Bool
	closed        atomic.Bool
	createdAt     time.Time

	rate *rateBucket

	mu              sync.Mutex
	pendingRequests int
	maxPending      int
	subscriptions   map[SubscriptionType]uint32 // type -> subscription id, unique per client
	nextSubID       uint32
}

func newConn(id uint64, ws *websocket.Conn, ratePerSecond, maxPending int) *Conn {
	return &Conn{
		id:            id,
		ws:            ws,
		createdAt:     time.Now(),
		rate:          newRateBucket(ratePerSecond, time.Second),
		maxPending:    maxPending,
		subscriptions: make(map[SubscriptionType]uint32),
	}
}

func (c *Conn) ID() uint64 { return c.id }

func (c *Conn) IsClosed() bool { return c.closed.Load() }

// Send writes one server frame, synchronized against concurrent
// notification fan-out and request/response writes on the same socket.
func (c *Conn) Send(f ServerFrame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteMessage(websocket.BinaryMessage, f.Encode())
}

// CloseWithCode sends a WebSocket close frame carrying code and tears down
// the connection.
func (c *Conn) CloseWithCode(code CloseCode, reason string) error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	deadline := time.Now().Add(5 * time.Second)
	msg := websocket.FormatCloseMessage(int(code), reason)
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, deadline)
	return c.ws.Close()
}

func (c *Conn) beginRequest() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pendingRequests >= c.maxPending {
		return false
	}
	c.pendingRequests++
	return true
}

func (c *Conn) endRequest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pendingRequests > 0 {
		c.pendingRequests--
	}
}

// Subscribe records a subscription id for subType, rejecting a second
// subscription of the same type or exceeding the per-connection cap.
func (c *Conn) Subscribe(subType SubscriptionType, maxSubscriptions int) (uint32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.subscriptions[subType]; exists {
		return 0, false
	}
	if len(c.subscriptions) >= maxSubscriptions {
		return 0, false
	}
	c.nextSubID++
	c.subscriptions[subType] = c.nextSubID
	return c.nextSubID, true
}

func (c *Conn) Unsubscribe(subType SubscriptionType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subscriptions, subType)
}

// subscribedID returns the subscription id bound to subType, if any.
func (c *Conn) subscribedID(subType SubscriptionType) (uint32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.subscriptions[subType]
	return id, ok
}

func (c *Conn) SubscriptionCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subscriptions)
}
