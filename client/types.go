package client

import "encoding/json"

// Message kinds shared with the server protocol.
const (
	msgIdentity   = "identity"
	msgRoster     = "roster"
	msgSnapshot   = "snapshot"
	msgStroke     = "stroke"
	msgUndo       = "undo"
	msgRedo       = "redo"
	msgUndoFailed = "undo_failed"
	msgRedoFailed = "redo_failed"
	msgCursor     = "cursor"
	msgChat       = "chat"
)

// Envelope is the wire frame in both directions.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// outEnvelope carries a not-yet-marshalled payload.
type outEnvelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Point a 2D canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke one drawing gesture.
type Stroke struct {
	ID        string  `json:"id,omitempty"`
	OwnerID   string  `json:"ownerId,omitempty"`
	Color     string  `json:"color"`
	Width     float64 `json:"width"`
	Tool      string  `json:"tool"`
	Points    []Point `json:"points"`
	Status    string  `json:"status,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

// User a roster entry.
type User struct {
	UserID string `json:"userId"`
	Color  string `json:"color"`
}
