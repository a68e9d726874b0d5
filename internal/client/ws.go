package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// defaultPingInterval is how often an idle connection is pinged.
	defaultPingInterval = 30 * time.Second

	// defaultPongWait is how long we wait for any frame after a ping before the connection
	// is considered dead.
	defaultPongWait = 10 * time.Second

	writeWait = 10 * time.Second
)

// ErrClosed is returned for calls on a connection that has shut down.
var ErrClosed = errors.New("connection closed")

// Conn is one JSON-RPC session with a ledger server.
type Conn interface {
	// Call sends command with params and decodes the result object into out.
	// A server side error is returned as *RPCError.
	Call(ctx context.Context, command string, params map[string]any, out any) error

	// Done is closed once the connection can no longer be used.
	Done() <-chan struct{}

	Close() error
}

// Dialer opens connections to a server endpoint.
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// RPCError is an error reported by the ledger server for one request.
type RPCError struct {
	Code    string `json:"error"`
	Message string `json:"error_message"`
}

func (e *RPCError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsRPCError reports whether err is a server error with the given code.
func IsRPCError(err error, code string) bool {
	var rpcErr *RPCError
	return errors.As(err, &rpcErr) && rpcErr.Code == code
}

// WSDialer dials rippled websocket endpoints.
type WSDialer struct {
	PingInterval time.Duration
	PongWait     time.Duration
	Logger       *zap.Logger
}

// Dial connects to url and starts the read loop.
func (d *WSDialer) Dial(ctx context.Context, url string) (Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}

	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	c := &wsConn{
		ws:      ws,
		log:     log.With(zap.String("url", url)),
		pending: make(map[uint64]chan *envelope),
		done:    make(chan struct{}),
	}

	pingInterval, pongWait := d.PingInterval, d.PongWait
	if pingInterval == 0 {
		pingInterval = defaultPingInterval
	}
	if pongWait == 0 {
		pongWait = defaultPongWait
	}

	go c.readLoop(pingInterval + pongWait)
	go c.pingLoop(pingInterval, pongWait)
	return c, nil
}

// envelope is the response frame shared by success and error replies.
type envelope struct {
	ID      uint64          `json:"id"`
	Status  string          `json:"status"`
	Type    string          `json:"type"`
	Result  json.RawMessage `json:"result"`
	Error   string          `json:"error"`
	Message string          `json:"error_message"`
}

type wsConn struct {
	ws  *websocket.Conn
	log *zap.Logger

	nextID atomic.Uint64

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[uint64]chan *envelope
	err     error

	done      chan struct{}
	closeOnce sync.Once
}

func (c *wsConn) Done() <-chan struct{} {
	return c.done
}

func (c *wsConn) Call(ctx context.Context, command string, params map[string]any, out any) error {
	id := c.nextID.Add(1)

	req := make(map[string]any, len(params)+2)
	for k, v := range params {
		req[k] = v
	}
	req["id"] = id
	req["command"] = command

	reply := make(chan *envelope, 1)
	c.mu.Lock()
	if c.err != nil {
		err := c.err
		c.mu.Unlock()
		return err
	}
	c.pending[id] = reply
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	if err := c.write(req); err != nil {
		c.shutdown(err)
		return err
	}

	select {
	case env := <-reply:
		return decodeEnvelope(env, out)
	case <-c.done:
		return c.closeErr()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func decodeEnvelope(env *envelope, out any) error {
	if env.Status == "error" || env.Error != "" {
		return &RPCError{Code: env.Error, Message: env.Message}
	}

	// some servers report request errors inside the result object
	var inner RPCError
	if len(env.Result) > 0 && json.Unmarshal(env.Result, &inner) == nil && inner.Code != "" {
		return &inner
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}
	return nil
}

func (c *wsConn) write(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteJSON(v); err != nil {
		return fmt.Errorf("failed to write request: %w", err)
	}
	return nil
}

// readLoop routes every response frame to the caller waiting on its id. Frames without a
// matching caller, such as stream messages or a repeated id, are dropped and never block the loop.
func (c *wsConn) readLoop(idleTimeout time.Duration) {
	_ = c.ws.SetReadDeadline(time.Now().Add(idleTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(idleTimeout))
	})

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			c.shutdown(fmt.Errorf("%w: %v", ErrClosed, err))
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(idleTimeout))

		var env envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			c.log.Warn("WS: dropping malformed frame", zap.Error(err))
			continue
		}
		if env.Type != "" && env.Type != "response" {
			continue
		}

		c.mu.Lock()
		reply, ok := c.pending[env.ID]
		delete(c.pending, env.ID)
		c.mu.Unlock()
		if !ok {
			continue
		}
		select {
		case reply <- &env:
		default:
			c.log.Warn("WS: dropping duplicate response", zap.Uint64("id", env.ID))
		}
	}
}

func (c *wsConn) pingLoop(interval, wait time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.writeMu.Lock()
			err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(wait))
			c.writeMu.Unlock()
			if err != nil {
				c.log.Debug("WS: ping failed", zap.Error(err))
				c.shutdown(fmt.Errorf("%w: %v", ErrClosed, err))
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *wsConn) closeErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	return ErrClosed
}

func (c *wsConn) shutdown(cause error) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.err = cause
		c.mu.Unlock()
		close(c.done)
		_ = c.ws.Close()
	})
}

// Close closes the underlying websocket. It is safe to call more than once.
func (c *wsConn) Close() error {
	c.writeMu.Lock()
	_ = c.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	c.writeMu.Unlock()
	c.shutdown(ErrClosed)
	return nil
}
