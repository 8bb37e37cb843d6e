package services

import "sync"

// RoomLocks hands out one mutex per room id so that a room's events are
// applied strictly in arrival order while separate rooms never contend.
// Both services of a bot instance must share the same RoomLocks.
type RoomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRoomLocks() *RoomLocks {
	return &RoomLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for roomID and returns its unlock function.
func (l *RoomLocks) Lock(roomID string) func() {
	l.mu.Lock()
	m, ok := l.locks[roomID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[roomID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
