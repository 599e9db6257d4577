package managers

import (
	"sync"
	"sync/atomic"

	"trivia/domain"
)

// RoomManager holds every live room, keyed by a process-wide monotonic
// RoomID. Readers take the RLock; any mutation (create/delete/state
// change/membership change) takes the write lock, per spec §5.
type RoomManager struct {
	mu      sync.RWMutex
	rooms   map[uint64]*domain.Room
	counter atomic.Uint64
}

func NewRoomManager() *RoomManager {
	return &RoomManager{rooms: make(map[uint64]*domain.Room)}
}

// CreateRoom allocates the next RoomID and inserts a room with admin as
// its sole member. Counter overflow is practically impossible and is
// treated as a silent no-op returning id 0, per spec §4.6.
func (m *RoomManager) CreateRoom(admin domain.Username, data domain.RoomData) (roomID uint64, ok bool) {
	id := m.counter.Add(1)
	if id == 0 {
		return 0, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[id] = &domain.Room{
		ID:              id,
		Name:            data.Name,
		Capacity:        data.Capacity,
		QuestionCount:   data.QuestionCount,
		TimePerQuestion: data.TimePerQuestion,
		State:           domain.RoomWaiting,
		Users:           []domain.Username{admin},
	}
	return id, true
}

func (m *RoomManager) DeleteRoom(id uint64) (*domain.Room, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if ok {
		delete(m.rooms, id)
	}
	return r, ok
}

func (m *RoomManager) SetState(id uint64, state domain.RoomLifecycleState) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return false
	}
	r.State = state
	return true
}

// Room returns the room's pointer for read-only access under the caller's
// own brief critical section; callers must not retain it past the call
// that fetched it without re-locking, since concurrent writers may mutate
// Users/State in place.
func (m *RoomManager) Room(id uint64) (*domain.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// Rooms returns a snapshot slice of every live room, safe to range over
// without holding the manager's lock.
func (m *RoomManager) Rooms() []*domain.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out
}

// AddUserToRoom adds u to room id under the write lock; returns false if
// the room doesn't exist or Room.AddUser rejects it (duplicate).
func (m *RoomManager) AddUserToRoom(id uint64, u domain.Username) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return false
	}
	return r.AddUser(u)
}

// RemoveUserFromRoom removes u from room id. If the room becomes empty it
// is deleted. Returns (wasAdmin, roomDeleted, roomExisted).
func (m *RoomManager) RemoveUserFromRoom(id uint64, u domain.Username) (wasAdmin, roomDeleted, roomExisted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return false, false, false
	}
	wasAdmin = r.IsAdmin(u)
	r.RemoveUser(u)
	if r.IsEmpty() {
		delete(m.rooms, id)
		return wasAdmin, true, true
	}
	return wasAdmin, false, true
}
