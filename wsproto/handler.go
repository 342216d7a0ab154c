package wsproto

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/opnet-network/indexer/consensus"
)

// HandlerFunc answers one request opcode. wsproto only owns framing,
// handshake, rate limiting and subscriptions — it is a thin adaptor over
// the same handlers the HTTP API uses, so the actual business logic
// behind GET_BLOCK_BY_HASH et al. is injected here rather than owned by
// this package.
type HandlerFunc func(ctx context.Context, conn *Conn, frame ClientFrame) ([]byte, error)

// ErrorPayload is the payload of an error ServerFrame.
type ErrorPayload struct {
	Code    string
	Message string
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler owns every open connection and the request dispatch table.
type Handler struct {
	view        *consensus.View
	serverVer   uint32
	chainID     uint32
	handlers    map[Opcode]HandlerFunc
	ratePerSec  int

	mu    sync.RWMutex
	conns map[uint64]*Conn
	nextID atomic.Uint64
}

// NewHandler builds a Handler. handlers maps request opcodes (excluding
// PING/HANDSHAKE/SUBSCRIBE*/UNSUBSCRIBE, which wsproto handles itself) to
// their business logic.
func NewHandler(view *consensus.View, serverVersion, chainID uint32, ratePerSecond int, handlers map[Opcode]HandlerFunc) *Handler {
	return &Handler{
		view:       view,
		serverVer:  serverVersion,
		chainID:    chainID,
		handlers:   handlers,
		ratePerSec: ratePerSecond,
		conns:      make(map[uint64]*Conn),
	}
}

// ServeHTTP upgrades the request and runs the connection's read loop until
// it closes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	id := h.nextID.Add(1)
	conn := newConn(id, ws, h.ratePerSec, h.view.MaxSubscriptionsPerConn)

	h.mu.Lock()
	h.conns[id] = conn
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.conns, id)
		h.mu.Unlock()
		_ = ws.Close()
	}()

	h.readLoop(r.Context(), conn)
}

func (h *Handler) readLoop(ctx context.Context, conn *Conn) {
	for {
		_, raw, err := conn.ws.ReadMessage()
		if err != nil {
			return
		}
		frame, err := DecodeClientFrame(raw)
		if err != nil {
			_ = conn.CloseWithCode(CloseProtocolViolation, "malformed frame")
			return
		}
		if h.dispatch(ctx, conn, frame) == closeConnection {
			return
		}
	}
}

type dispatchOutcome int

const (
	keepOpen dispatchOutcome = iota
	closeConnection
)

func (h *Handler) dispatch(ctx context.Context, conn *Conn, frame ClientFrame) dispatchOutcome {
	if !conn.handshakeDone.Load() && frame.Opcode != OpHandshake {
		_ = conn.CloseWithCode(CloseProtocolViolation, "HANDSHAKE_REQUIRED")
		return closeConnection
	}

	switch frame.Opcode {
	case OpHandshake:
		return h.handleHandshake(conn, frame)
	case OpPing:
		_ = conn.Send(ServerFrame{Opcode: OpPing, RequestID: frame.RequestID, Payload: frame.Payload})
		return keepOpen
	case OpSubscribeBlocks, OpSubscribeEpochs:
		return h.handleSubscribe(conn, frame)
	case OpUnsubscribe:
		return h.handleUnsubscribe(conn, frame)
	}

	if !conn.rate.Allow() {
		h.sendError(conn, frame, "rate limit exceeded")
		return keepOpen
	}
	if !conn.beginRequest() {
		h.sendError(conn, frame, "TOO_MANY_PENDING_REQUESTS")
		return keepOpen
	}
	defer conn.endRequest()

	fn, ok := h.handlers[frame.Opcode]
	if !ok {
		_ = conn.CloseWithCode(CloseFatalAppError, "unhandled opcode")
		return closeConnection
	}
	reqCtx, cancel := context.WithTimeout(ctx, time.Duration(h.view.RequestTimeoutSeconds)*time.Second)
	defer cancel()
	payload, err := fn(reqCtx, conn, frame)
	if err != nil {
		h.sendError(conn, frame, err.Error())
		return keepOpen
	}
	_ = conn.Send(ServerFrame{Opcode: frame.Opcode, RequestID: frame.RequestID, Payload: payload})
	return keepOpen
}

func (h *Handler) handleHandshake(conn *Conn, frame ClientFrame) dispatchOutcome {
	var req HandshakeRequest
	if err := DecodePayload(frame.Payload, &req); err != nil {
		_ = conn.CloseWithCode(CloseProtocolViolation, "bad handshake payload")
		return closeConnection
	}
	if err := validateHandshake(req); err != nil {
		_ = conn.CloseWithCode(CloseProtocolViolation, err.Error())
		return closeConnection
	}
	var sessionID [16]byte
	idBytes := conn.ID()
	for i := 0; i < 8; i++ {
		sessionID[i] = byte(idBytes >> (8 * i))
	}
	resp := HandshakeResponse{
		ProtocolVersion:    req.ProtocolVersion,
		SessionID:          sessionID,
		ServerVersion:      h.serverVer,
		CurrentBlockHeight: h.view.BlockHeight(),
		ChainID:            h.chainID,
	}
	payload, _ := EncodePayload(resp)
	_ = conn.Send(ServerFrame{Opcode: OpHandshake, RequestID: frame.RequestID, Payload: payload})
	conn.handshakeDone.Store(true)
	return keepOpen
}

func (h *Handler) handleSubscribe(conn *Conn, frame ClientFrame) dispatchOutcome {
	subType := SubBlocks
	if frame.Opcode == OpSubscribeEpochs {
		subType = SubEpochs
	}
	subID, ok := conn.Subscribe(subType, h.view.MaxSubscriptionsPerConn)
	if !ok {
		h.sendError(conn, frame, "subscription rejected: duplicate type or cap reached")
		return keepOpen
	}
	payload, _ := EncodePayload(subID)
	_ = conn.Send(ServerFrame{Opcode: frame.Opcode, RequestID: frame.RequestID, Payload: payload})
	return keepOpen
}

func (h *Handler) handleUnsubscribe(conn *Conn, frame ClientFrame) dispatchOutcome {
	var subType SubscriptionType
	if err := DecodePayload(frame.Payload, &subType); err == nil {
		conn.Unsubscribe(subType)
	}
	_ = conn.Send(ServerFrame{Opcode: OpUnsubscribe, RequestID: frame.RequestID})
	return keepOpen
}

func (h *Handler) sendError(conn *Conn, frame ClientFrame, message string) {
	payload, _ := EncodePayload(ErrorPayload{Code: "ERROR", Message: message})
	_ = conn.Send(ServerFrame{Opcode: frame.Opcode, RequestID: frame.RequestID, Payload: payload})
}

// ConnectionCount returns the number of currently open connections.
func (h *Handler) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Notify iterates every connection subscribed to subType and delivers
// payload, rewriting the request id to that connection's own subscription
// id. Closed connections are skipped; every other subscriber gets a
// synchronous Send in turn, so a slow connection delays the ones after it.
func (h *Handler) Notify(subType SubscriptionType, opcode Opcode, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conn := range h.conns {
		if conn.IsClosed() {
			continue
		}
		subID, ok := conn.subscribedID(subType)
		if !ok {
			continue
		}
		_ = conn.Send(ServerFrame{Opcode: opcode, RequestID: subID, Payload: payload})
	}
}
