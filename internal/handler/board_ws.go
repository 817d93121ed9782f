package handler

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/contrib/websocket"

	"github.com/devikas9895151/Canva-page/internal/canvas"
	"github.com/devikas9895151/Canva-page/internal/config"
	"github.com/devikas9895151/Canva-page/internal/model"
	"github.com/devikas9895151/Canva-page/internal/session"
)

// BoardWSHandler 캔버스 동기화 WebSocket 핸들러
//
// Translates client messages into registry operations and fans the
// results out per the protocol rules: strokes and cursors exclude the
// originator, undo/redo operation descriptors and chat go to everyone,
// failures go to the requester only.
type BoardWSHandler struct {
	registry *canvas.Registry
	sessions *session.Manager
	cfg      *config.Config
}

// NewBoardWSHandler BoardWSHandler 생성
func NewBoardWSHandler(registry *canvas.Registry, sessions *session.Manager, cfg *config.Config) *BoardWSHandler {
	return &BoardWSHandler{
		registry: registry,
		sessions: sessions,
		cfg:      cfg,
	}
}

// HandleWebSocket WebSocket 연결 처리
func (h *BoardWSHandler) HandleWebSocket(c *websocket.Conn) {
	roomID := c.Locals("roomId").(string)

	sender := newWSSender(c, h.cfg.WebSocket.WriteTimeout)
	sess := h.Join(roomID, sender)

	log.Printf("[Board %s] user connected: %s (clients: %d)", roomID, sess.UserID, h.sessions.Count())

	defer func() {
		h.Leave(sess)
		c.Close()
		log.Printf("[Board %s] user disconnected: %s", roomID, sess.UserID)
	}()

	// 메시지 수신 루프
	for {
		_, msgBytes, err := c.ReadMessage()
		if err != nil {
			break
		}
		h.Dispatch(sess, msgBytes)
	}
}

// Join registers a connection: it gets an identity, the current canvas
// snapshot, and the room hears about the roster change.
func (h *BoardWSHandler) Join(roomID string, conn session.Sender) *session.Session {
	sess := h.sessions.Register(roomID, conn)

	h.sendTo(sess, MsgIdentity, IdentityPayload{UserID: sess.UserID, Color: sess.Color})
	h.sendTo(sess, MsgSnapshot, SnapshotPayload{Strokes: h.registry.Snapshot(roomID)})
	h.broadcastRoster(roomID)

	return sess
}

// Leave removes the connection and rebroadcasts the roster. A vanished
// connection is handled identically to a graceful disconnect; nothing
// committed needs rolling back.
func (h *BoardWSHandler) Leave(sess *session.Session) {
	h.sessions.Unregister(sess)
	h.broadcastRoster(sess.RoomID)
}

// Dispatch routes one inbound message. Malformed payloads are logged and
// dropped; the connection stays open.
func (h *BoardWSHandler) Dispatch(sess *session.Session, data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("[Board %s] invalid message from %s: %v", sess.RoomID, sess.UserID, err)
		return
	}

	switch msg.Type {
	case MsgStroke:
		h.handleStroke(sess, msg.Payload)
	case MsgUndo:
		h.handleUndo(sess)
	case MsgRedo:
		h.handleRedo(sess)
	case MsgCursor:
		h.handleCursor(sess, msg.Payload)
	case MsgChat:
		h.handleChat(sess, msg.Payload)
	default:
		log.Printf("[Board %s] unknown message type %q from %s", sess.RoomID, msg.Type, sess.UserID)
	}
}

// handleStroke commits a submitted stroke and broadcasts the canonical
// version to everyone except the originator, who already rendered it.
func (h *BoardWSHandler) handleStroke(sess *session.Session, payload json.RawMessage) {
	var stroke model.Stroke
	if err := json.Unmarshal(payload, &stroke); err != nil {
		log.Printf("[Board %s] bad stroke payload from %s: %v", sess.RoomID, sess.UserID, err)
		return
	}

	// The owner is always the submitting session, whatever the payload says.
	stroke.OwnerID = sess.UserID

	if err := stroke.Validate(h.cfg.Canvas.MaxPointsPerStroke); err != nil {
		log.Printf("[Board %s] rejected stroke from %s: %v", sess.RoomID, sess.UserID, err)
		return
	}

	canonical := h.registry.CommitStroke(sess.RoomID, stroke)
	h.broadcast(sess.RoomID, MsgStroke, StrokePayload{UserID: sess.UserID, Stroke: canonical}, sess)
}

func (h *BoardWSHandler) handleUndo(sess *session.Session) {
	strokeID, err := h.registry.Undo(sess.RoomID, sess.UserID)
	if err != nil {
		h.sendTo(sess, MsgUndoFailed, FailurePayload{Reason: err.Error()})
		return
	}
	// Everyone applies the canonical mutation, the originator included.
	h.broadcast(sess.RoomID, MsgUndo, UndoPayload{UserID: sess.UserID, StrokeID: strokeID}, nil)
}

func (h *BoardWSHandler) handleRedo(sess *session.Session) {
	stroke, err := h.registry.Redo(sess.RoomID, sess.UserID)
	if err != nil {
		h.sendTo(sess, MsgRedoFailed, FailurePayload{Reason: err.Error()})
		return
	}
	h.broadcast(sess.RoomID, MsgRedo, RedoPayload{UserID: sess.UserID, Stroke: stroke}, nil)
}

// handleCursor relays a cursor position to the rest of the room.
// Last write wins; nothing is stored.
func (h *BoardWSHandler) handleCursor(sess *session.Session, payload json.RawMessage) {
	var pos CursorInPayload
	if err := json.Unmarshal(payload, &pos); err != nil {
		return
	}
	cursor := model.Cursor{UserID: sess.UserID, X: pos.X, Y: pos.Y}
	h.broadcast(sess.RoomID, MsgCursor, cursor, sess)
}

// handleChat relays a chat message to the whole room, the sender
// included. Identity and color come from the session, not the payload.
func (h *BoardWSHandler) handleChat(sess *session.Session, payload json.RawMessage) {
	var in ChatInPayload
	if err := json.Unmarshal(payload, &in); err != nil {
		return
	}

	message := strings.TrimSpace(in.Message)
	if message == "" {
		return
	}
	if max := h.cfg.Canvas.MaxChatLength; max > 0 && len(message) > max {
		message = message[:max]
	}

	h.broadcast(sess.RoomID, MsgChat, ChatPayload{
		UserID:  sess.UserID,
		Message: message,
		Color:   sess.Color,
	}, nil)
}

func (h *BoardWSHandler) broadcastRoster(roomID string) {
	h.broadcast(roomID, MsgRoster, RosterPayload{Users: h.sessions.Roster(roomID)}, nil)
}

// broadcast sends a message to every session in the room, skipping
// exclude when non-nil.
func (h *BoardWSHandler) broadcast(roomID, msgType string, payload any, exclude *session.Session) {
	msgBytes, err := json.Marshal(outMessage{Type: msgType, Payload: payload})
	if err != nil {
		log.Printf("[Board %s] marshal failed for %s: %v", roomID, msgType, err)
		return
	}

	for _, peer := range h.sessions.InRoom(roomID) {
		if exclude != nil && peer.UserID == exclude.UserID {
			continue
		}
		if err := peer.Conn.Send(msgBytes); err != nil && !errors.Is(err, errSenderClosed) {
			log.Printf("[Board %s] send to %s failed: %v", roomID, peer.UserID, err)
		}
	}
}

func (h *BoardWSHandler) sendTo(sess *session.Session, msgType string, payload any) {
	msgBytes, err := json.Marshal(outMessage{Type: msgType, Payload: payload})
	if err != nil {
		log.Printf("[Board %s] marshal failed for %s: %v", sess.RoomID, msgType, err)
		return
	}
	if err := sess.Conn.Send(msgBytes); err != nil && !errors.Is(err, errSenderClosed) {
		log.Printf("[Board %s] send to %s failed: %v", sess.RoomID, sess.UserID, err)
	}
}
