package model

import (
	"errors"
	"time"
)

// Tool 그리기 도구
type Tool string

const (
	ToolBrush  Tool = "brush"
	ToolPencil Tool = "pencil"
	ToolEraser Tool = "eraser"
)

// Valid reports whether the tool is one of the supported kinds.
func (t Tool) Valid() bool {
	switch t {
	case ToolBrush, ToolPencil, ToolEraser:
		return true
	}
	return false
}

// StrokeStatus stroke lifecycle state
type StrokeStatus string

const (
	StatusActive StrokeStatus = "active"
	StatusUndone StrokeStatus = "undone"
)

// Point a single 2D coordinate on the canvas
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke 화이트보드 획 데이터
//
// The drawing payload (Points, Color, Width, Tool) is immutable once the
// stroke is committed; only Status changes afterwards. ID is unique within
// a room for the room's lifetime, including across undo/redo cycles.
type Stroke struct {
	ID        string       `json:"id"`
	OwnerID   string       `json:"ownerId"`
	Color     string       `json:"color"`
	Width     float64      `json:"width"`
	Tool      Tool         `json:"tool"`
	Points    []Point      `json:"points"`
	Status    StrokeStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

// User a connected participant (ephemeral identity + cosmetic color)
type User struct {
	UserID string `json:"userId"`
	Color  string `json:"color"`
}

// Cursor an ephemeral pointer position, never persisted
type Cursor struct {
	UserID string  `json:"userId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

var (
	ErrNoPoints      = errors.New("stroke has no points")
	ErrTooManyPoints = errors.New("stroke has too many points")
	ErrBadWidth      = errors.New("stroke width must be positive")
	ErrBadTool       = errors.New("unknown tool")
)

// Validate checks a client-submitted stroke before it is committed.
// Server-assigned fields (ID, CreatedAt, Status) are not checked here.
func (s *Stroke) Validate(maxPoints int) error {
	if len(s.Points) == 0 {
		return ErrNoPoints
	}
	if maxPoints > 0 && len(s.Points) > maxPoints {
		return ErrTooManyPoints
	}
	if s.Width <= 0 {
		return ErrBadWidth
	}
	if !s.Tool.Valid() {
		return ErrBadTool
	}
	return nil
}
