// Package client is a Go SDK for the collaborative canvas sync server.
// It dials the board WebSocket endpoint, decodes server events into
// typed callbacks, and exposes the client->server operations: submit a
// stroke, undo, redo, move the cursor, chat.
package client

import (
	"context"
	"errors"
	"io"
	"net/url"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Client provides a high-level SDK for one board connection.
type Client struct {
	cfg        Config
	writeCh    chan outEnvelope
	dispatcher Dispatcher

	conn      *websocket.Conn
	mu        sync.Mutex
	connected bool
	cancel    context.CancelFunc
}

// New constructs a client with the provided config.
// Use DefaultConfig() as a starting point and modify as needed.
func New(cfg Config) *Client {
	return &Client{
		cfg:     cfg,
		writeCh: make(chan outEnvelope, 16),
	}
}

// OnIdentity registers a callback for the identity event.
func (c *Client) OnIdentity(fn func(IdentityEvent)) { c.dispatcher.SetOnIdentity(fn) }

// OnRoster registers a callback for roster updates.
func (c *Client) OnRoster(fn func(RosterEvent)) { c.dispatcher.SetOnRoster(fn) }

// OnSnapshot registers a callback for the initial canvas snapshot.
func (c *Client) OnSnapshot(fn func(SnapshotEvent)) { c.dispatcher.SetOnSnapshot(fn) }

// OnStroke registers a callback for remote strokes.
func (c *Client) OnStroke(fn func(StrokeEvent)) { c.dispatcher.SetOnStroke(fn) }

// OnUndo registers a callback for undo operation descriptors.
func (c *Client) OnUndo(fn func(UndoEvent)) { c.dispatcher.SetOnUndo(fn) }

// OnRedo registers a callback for redo operation descriptors.
func (c *Client) OnRedo(fn func(RedoEvent)) { c.dispatcher.SetOnRedo(fn) }

// OnCursor registers a callback for remote cursor positions.
func (c *Client) OnCursor(fn func(CursorEvent)) { c.dispatcher.SetOnCursor(fn) }

// OnChat registers a callback for chat messages.
func (c *Client) OnChat(fn func(ChatEvent)) { c.dispatcher.SetOnChat(fn) }

// OnError registers a callback for errors, including undo_failed and
// redo_failed responses to this client's own requests.
func (c *Client) OnError(fn func(error)) { c.dispatcher.SetOnError(fn) }

// Connect dials the server and starts the internal loops. The server
// responds with identity, snapshot, and roster events.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return NewError(ErrorConnection, "already connected")
	}
	c.mu.Unlock()

	if c.cfg.URL == "" || c.cfg.Room == "" {
		return NewError(ErrorInvalidConfig, "URL and Room are required")
	}
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return WrapError(ErrorInvalidConfig, "invalid URL", err)
	}
	u = u.JoinPath("ws", "board", c.cfg.Room)

	dialCtx := ctx
	if c.cfg.HandshakeTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, c.cfg.HandshakeTimeout)
		defer cancel()
	}

	ws, _, err := websocket.Dial(dialCtx, u.String(), nil)
	if err != nil {
		return WrapError(ErrorConnection, "dial failed", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	c.conn = ws
	c.cancel = cancel
	c.connected = true
	c.mu.Unlock()

	go c.readLoop(runCtx)
	go c.writeLoop(runCtx)
	return nil
}

// SubmitStroke sends a finished stroke to be committed and broadcast.
// The server assigns the canonical id, timestamp, and owner.
func (c *Client) SubmitStroke(ctx context.Context, stroke Stroke) error {
	return c.send(ctx, outEnvelope{Type: msgStroke, Payload: stroke})
}

// Undo asks the server to undo this client's most recent active stroke.
func (c *Client) Undo(ctx context.Context) error {
	return c.send(ctx, outEnvelope{Type: msgUndo})
}

// Redo asks the server to restore this client's most recently undone
// stroke.
func (c *Client) Redo(ctx context.Context) error {
	return c.send(ctx, outEnvelope{Type: msgRedo})
}

// SendCursor publishes the local cursor position.
func (c *Client) SendCursor(ctx context.Context, x, y float64) error {
	return c.send(ctx, outEnvelope{Type: msgCursor, Payload: Point{X: x, Y: y}})
}

// SendChat publishes a chat message to the room.
func (c *Client) SendChat(ctx context.Context, message string) error {
	return c.send(ctx, outEnvelope{Type: msgChat, Payload: map[string]string{"message": message}})
}

// Close shuts down the client and closes the WebSocket.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.connected = false
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		return conn.Close(websocket.StatusNormalClosure, "client close")
	}
	return nil
}

func (c *Client) send(ctx context.Context, env outEnvelope) error {
	c.mu.Lock()
	connected := c.connected
	c.mu.Unlock()
	if !connected {
		return NewError(ErrorNotConnected, "not connected")
	}

	select {
	case c.writeCh <- env:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) readLoop(ctx context.Context) {
	for {
		var env Envelope
		if err := wsjson.Read(ctx, c.conn, &env); err != nil {
			if !isExpectedDisconnect(ctx, err) {
				c.dispatcher.fireError(WrapError(ErrorDisconnected, "read loop exit", err))
			}
			return
		}
		c.dispatcher.Dispatch(env)
	}
}

func (c *Client) writeLoop(ctx context.Context) {
	for {
		select {
		case env := <-c.writeCh:
			if err := c.write(ctx, env); err != nil {
				c.dispatcher.fireError(WrapError(ErrorConnection, "write failed", err))
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) write(ctx context.Context, env outEnvelope) error {
	if c.cfg.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.WriteTimeout)
		defer cancel()
	}
	return wsjson.Write(ctx, c.conn, env)
}

func isExpectedDisconnect(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if ctx != nil && ctx.Err() != nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	default:
		return false
	}
}
