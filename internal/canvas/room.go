package canvas

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devikas9895151/Canva-page/internal/model"
)

var (
	// ErrNoActiveStroke no active stroke owned by the user exists to undo.
	ErrNoActiveStroke = errors.New("no active stroke to undo")
	// ErrNothingToRedo the user's redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Room 방 단위 캔버스 상태
//
// history is the append-only, server-ordered stroke log and the single
// source of truth for concurrent interleaving. redoStacks holds, per user,
// the strokes that user has undone (LIFO). Every stroke on redoStacks[u]
// has OwnerID == u. All mutations go through the exported methods, which
// take the room mutex, so CommitStroke/Undo/Redo are linearizable within
// a room.
type Room struct {
	ID string

	mu         sync.Mutex
	history    []*model.Stroke
	redoStacks map[string][]*model.Stroke
	lastActive time.Time
}

func newRoom(id string) *Room {
	return &Room{
		ID:         id,
		redoStacks: make(map[string][]*model.Stroke),
		lastActive: time.Now(),
	}
}

// CommitStroke appends a stroke to the room history. Server-assigned fields
// (ID if absent, CreatedAt, Status) are stamped here; the canonical stroke
// is returned for broadcast. Committing a new stroke invalidates the
// owner's redo stack.
func (r *Room) CommitStroke(proposed model.Stroke) model.Stroke {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := proposed
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.Status = model.StatusActive
	s.CreatedAt = time.Now()
	s.Points = append([]model.Point(nil), proposed.Points...)

	r.history = append(r.history, &s)
	delete(r.redoStacks, s.OwnerID)
	r.lastActive = s.CreatedAt

	return s
}

// Undo flips the user's most recently committed active stroke to undone and
// pushes it onto the user's redo stack. History is server-receipt ordered
// and CreatedAt is assigned under the same lock, so scanning from the tail
// yields the newest CreatedAt with the highest index as tie-break.
// Returns ErrNoActiveStroke without mutating anything if no stroke is
// eligible.
func (r *Room) Undo(userID string) (strokeID string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.history) - 1; i >= 0; i-- {
		s := r.history[i]
		if s.OwnerID != userID || s.Status != model.StatusActive {
			continue
		}
		s.Status = model.StatusUndone
		r.redoStacks[userID] = append(r.redoStacks[userID], s)
		r.lastActive = time.Now()
		return s.ID, nil
	}
	return "", ErrNoActiveStroke
}

// Redo pops the user's redo stack and flips the popped stroke back to
// active. The stroke is not re-appended: it is still in history, only its
// status changes. Returns ErrNothingToRedo without mutation if the stack
// is empty.
func (r *Room) Redo(userID string) (model.Stroke, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stack := r.redoStacks[userID]
	if len(stack) == 0 {
		return model.Stroke{}, ErrNothingToRedo
	}

	s := stack[len(stack)-1]
	r.redoStacks[userID] = stack[:len(stack)-1]
	s.Status = model.StatusActive
	r.lastActive = time.Now()

	return *s, nil
}

// Snapshot returns the active strokes grouped by owner, in history order.
// Used to bootstrap a newly joined connection without replaying mutations.
func (r *Room) Snapshot() map[string][]model.Stroke {
	r.mu.Lock()
	defer r.mu.Unlock()

	grouped := make(map[string][]model.Stroke)
	for _, s := range r.history {
		if s.Status != model.StatusActive {
			continue
		}
		grouped[s.OwnerID] = append(grouped[s.OwnerID], *s)
	}
	return grouped
}

// StrokeCount returns total and active stroke counts.
func (r *Room) StrokeCount() (total, active int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total = len(r.history)
	for _, s := range r.history {
		if s.Status == model.StatusActive {
			active++
		}
	}
	return total, active
}

// RedoDepth returns the depth of the user's redo stack.
func (r *Room) RedoDepth(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.redoStacks[userID])
}

// LastActive reports when the room state last changed.
func (r *Room) LastActive() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActive
}
