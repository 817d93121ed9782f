package canvas

import (
	"log"
	"sync"
	"time"

	"github.com/devikas9895151/Canva-page/internal/model"
)

// Registry 전체 방 상태 관리
//
// The registry owns every Room; nothing outside this package mutates room
// state directly. Rooms are created lazily on first reference. Different
// rooms are independent and operate in parallel; the registry lock only
// guards the room table itself.
type Registry struct {
	rooms map[string]*Room
	mu    sync.RWMutex
}

// NewRegistry creates an empty room registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// GetOrCreate returns the room for roomID, creating an empty one on first
// access. Idempotent thereafter.
func (reg *Registry) GetOrCreate(roomID string) *Room {
	reg.mu.RLock()
	room, ok := reg.rooms[roomID]
	reg.mu.RUnlock()
	if ok {
		return room
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if room, ok := reg.rooms[roomID]; ok {
		return room
	}
	room = newRoom(roomID)
	reg.rooms[roomID] = room
	log.Printf("[Registry] Created room: %s", roomID)
	return room
}

// CommitStroke commits a stroke into the given room and returns the
// canonical stroke for broadcast.
func (reg *Registry) CommitStroke(roomID string, proposed model.Stroke) model.Stroke {
	return reg.GetOrCreate(roomID).CommitStroke(proposed)
}

// Undo undoes the user's most recent active stroke in the room.
func (reg *Registry) Undo(roomID, userID string) (string, error) {
	return reg.GetOrCreate(roomID).Undo(userID)
}

// Redo restores the top of the user's redo stack in the room.
func (reg *Registry) Redo(roomID, userID string) (model.Stroke, error) {
	return reg.GetOrCreate(roomID).Redo(userID)
}

// Snapshot returns the room's active strokes grouped by owner.
func (reg *Registry) Snapshot(roomID string) map[string][]model.Stroke {
	return reg.GetOrCreate(roomID).Snapshot()
}

// Stats returns the number of rooms and total strokes across all rooms.
func (reg *Registry) Stats() (rooms, strokes int) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	rooms = len(reg.rooms)
	for _, r := range reg.rooms {
		total, _ := r.StrokeCount()
		strokes += total
	}
	return rooms, strokes
}

// CleanupIdleRooms evicts rooms that are unoccupied and have seen no state
// change for at least maxIdle. occupied reports whether a room currently
// has connections; the roster lives outside the registry, so the caller
// supplies it. Returns the number of rooms removed.
func (reg *Registry) CleanupIdleRooms(maxIdle time.Duration, occupied func(roomID string) bool) int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	removed := 0
	for roomID, room := range reg.rooms {
		if occupied != nil && occupied(roomID) {
			continue
		}
		if time.Since(room.LastActive()) < maxIdle {
			continue
		}
		delete(reg.rooms, roomID)
		removed++
		log.Printf("[Registry] Evicted idle room: %s", roomID)
	}
	return removed
}

// RunJanitor periodically evicts idle rooms until stop is closed.
// A maxIdle of zero disables eviction entirely.
func (reg *Registry) RunJanitor(maxIdle time.Duration, occupied func(roomID string) bool, stop <-chan struct{}) {
	if maxIdle <= 0 {
		return
	}

	interval := maxIdle / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			reg.CleanupIdleRooms(maxIdle, occupied)
		}
	}
}
