package handler

import (
	"encoding/json"

	"github.com/devikas9895151/Canva-page/internal/model"
)

// Message kinds. Client->server: stroke, undo, redo, cursor, chat.
// Server->client: identity, roster, snapshot, stroke, undo, redo,
// undo_failed, redo_failed, cursor, chat.
const (
	MsgIdentity   = "identity"
	MsgRoster     = "roster"
	MsgSnapshot   = "snapshot"
	MsgStroke     = "stroke"
	MsgUndo       = "undo"
	MsgRedo       = "redo"
	MsgUndoFailed = "undo_failed"
	MsgRedoFailed = "redo_failed"
	MsgCursor     = "cursor"
	MsgChat       = "chat"
)

// WSMessage WebSocket 메시지 봉투
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// outMessage is the outbound envelope; payload is marshalled in place.
type outMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// IdentityPayload 접속 직후 1회 전송되는 신원 정보
type IdentityPayload struct {
	UserID string `json:"userId"`
	Color  string `json:"color"`
}

// RosterPayload 접속자 목록
type RosterPayload struct {
	Users []model.User `json:"users"`
}

// SnapshotPayload 현재 캔버스 상태 (owner -> active strokes)
type SnapshotPayload struct {
	Strokes map[string][]model.Stroke `json:"strokes"`
}

// StrokePayload committed stroke broadcast
type StrokePayload struct {
	UserID string       `json:"userId"`
	Stroke model.Stroke `json:"stroke"`
}

// UndoPayload operation descriptor: clients flip the stroke to undone.
type UndoPayload struct {
	UserID   string `json:"userId"`
	StrokeID string `json:"strokeId"`
}

// RedoPayload operation descriptor: carries the full stroke so clients
// can re-render it without keeping undone strokes around.
type RedoPayload struct {
	UserID string       `json:"userId"`
	Stroke model.Stroke `json:"stroke"`
}

// FailurePayload undo_failed / redo_failed, sent to the requester only.
type FailurePayload struct {
	Reason string `json:"reason"`
}

// CursorInPayload 클라이언트가 보내는 커서 위치
type CursorInPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ChatInPayload 클라이언트가 보내는 채팅
type ChatInPayload struct {
	Message string `json:"message"`
}

// ChatPayload relayed chat; userId and color are stamped server-side.
type ChatPayload struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
	Color   string `json:"color"`
}
