package client

// IdentityEvent emitted once after connect with the server-assigned
// identity and color.
type IdentityEvent struct {
	UserID string `json:"userId"`
	Color  string `json:"color"`
}

// RosterEvent emitted whenever anyone joins or leaves the room.
type RosterEvent struct {
	Users []User `json:"users"`
}

// SnapshotEvent emitted once after connect with the current canvas
// state, active strokes grouped by owner.
type SnapshotEvent struct {
	Strokes map[string][]Stroke `json:"strokes"`
}

// StrokeEvent emitted when another user commits a stroke.
type StrokeEvent struct {
	UserID string `json:"userId"`
	Stroke Stroke `json:"stroke"`
}

// UndoEvent emitted when any user (this client included) undoes a
// stroke; flip the stroke to undone locally.
type UndoEvent struct {
	UserID   string `json:"userId"`
	StrokeID string `json:"strokeId"`
}

// RedoEvent emitted when any user redoes a stroke; carries the full
// stroke for re-rendering.
type RedoEvent struct {
	UserID string `json:"userId"`
	Stroke Stroke `json:"stroke"`
}

// FailureEvent emitted to this client only when its own undo/redo
// request had nothing to act on.
type FailureEvent struct {
	Reason string `json:"reason"`
}

// CursorEvent emitted when another user moves their cursor.
type CursorEvent struct {
	UserID string  `json:"userId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// ChatEvent emitted for every chat message in the room, the sender's
// own included.
type ChatEvent struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
	Color   string `json:"color"`
}
