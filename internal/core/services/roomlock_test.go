package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomLocksSerializePerRoom(t *testing.T) {
	locks := NewRoomLocks()

	// One counter per room, each incremented only under its room's lock.
	// Run with -race to catch a broken lock handout.
	counters := []int{0, 0}
	rooms := []string{"!a:example.org", "!b:example.org"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for n, roomID := range rooms {
			wg.Add(1)
			go func(n int, roomID string) {
				defer wg.Done()
				unlock := locks.Lock(roomID)
				defer unlock()
				counters[n]++
			}(n, roomID)
		}
	}
	wg.Wait()

	assert.Equal(t, []int{50, 50}, counters)
}

func TestRoomLocksReuseMutexPerRoom(t *testing.T) {
	locks := NewRoomLocks()

	unlock := locks.Lock("!a:example.org")
	unlock()
	unlock = locks.Lock("!a:example.org")
	unlock()

	assert.Len(t, locks.locks, 1)
}
