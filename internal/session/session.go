package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devikas9895151/Canva-page/internal/model"
)

// palette 커서/획 기본 색상 (cosmetic only, collisions are fine)
var palette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#fabebe",
}

// Sender is the outbound half of a connection. The websocket adapter
// implements it in production; tests substitute mocks.
type Sender interface {
	Send(data []byte) error
}

// Session 클라이언트 세션
//
// Identity and color are ephemeral: assigned on connect, gone on
// disconnect. A session belongs to exactly one room for its lifetime.
type Session struct {
	UserID      string
	Color       string
	RoomID      string
	Conn        Sender
	ConnectedAt time.Time
}

// User returns the roster entry for this session.
func (s *Session) User() model.User {
	return model.User{UserID: s.UserID, Color: s.Color}
}

// Manager 접속 세션 관리 (process-wide, thread-safe)
//
// Tracks every live connection and which room it joined. Roster ordering
// is insertion order within a room; there is no stability guarantee
// across disconnect/reconnect.
type Manager struct {
	sessions map[string]*Session   // userID -> session
	byRoom   map[string][]*Session // roomID -> sessions in join order
	mu       sync.RWMutex
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		byRoom:   make(map[string][]*Session),
	}
}

// Register assigns a fresh identity and a palette color to a connection
// and adds it to the room roster. The returned session carries the
// server-assigned UserID.
func (m *Manager) Register(roomID string, conn Sender) *Session {
	sess := &Session{
		UserID:      uuid.NewString(),
		Color:       palette[rand.Intn(len(palette))],
		RoomID:      roomID,
		Conn:        conn,
		ConnectedAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[sess.UserID] = sess
	m.byRoom[roomID] = append(m.byRoom[roomID], sess)
	m.mu.Unlock()

	return sess
}

// Unregister removes a session. Safe to call for an already removed or
// unknown session.
func (m *Manager) Unregister(sess *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sess.UserID]; !ok {
		return
	}
	delete(m.sessions, sess.UserID)

	peers := m.byRoom[sess.RoomID]
	for i, p := range peers {
		if p.UserID == sess.UserID {
			m.byRoom[sess.RoomID] = append(peers[:i], peers[i+1:]...)
			break
		}
	}
	if len(m.byRoom[sess.RoomID]) == 0 {
		delete(m.byRoom, sess.RoomID)
	}
}

// Roster returns the users connected to a room, in join order.
func (m *Manager) Roster(roomID string) []model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	peers := m.byRoom[roomID]
	users := make([]model.User, 0, len(peers))
	for _, p := range peers {
		users = append(users, p.User())
	}
	return users
}

// InRoom returns the sessions connected to a room, in join order.
func (m *Manager) InRoom(roomID string) []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]*Session(nil), m.byRoom[roomID]...)
}

// RoomOccupied reports whether any session is connected to the room.
func (m *Manager) RoomOccupied(roomID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byRoom[roomID]) > 0
}

// Count returns the number of live sessions across all rooms.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
