package memory

import (
	"context"
	"sync"

	"github.com/jojoob/pollbot/internal/core/domain"
	"github.com/jojoob/pollbot/internal/core/ports"
)

// pollRepository keeps every poll in process memory, per room in creation
// order. Polls are deliberately not durable; they die with the process.
type pollRepository struct {
	mu    sync.RWMutex
	rooms map[string][]*domain.Poll
}

func NewPollRepository() ports.PollRepository {
	return &pollRepository{
		rooms: make(map[string][]*domain.Poll),
	}
}

func (r *pollRepository) CreatePoll(ctx context.Context, roomID string, poll *domain.Poll) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	poll.RoomIndex = len(r.rooms[roomID])
	r.rooms[roomID] = append(r.rooms[roomID], poll)
	return nil
}

func (r *pollRepository) GetPoll(ctx context.Context, roomID string, index int) (*domain.Poll, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	polls := r.rooms[roomID]
	if index < 0 || index >= len(polls) {
		return nil, domain.ErrPollNotFound
	}
	return polls[index], nil
}

func (r *pollRepository) ListPolls(ctx context.Context, roomID string) ([]*domain.Poll, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	polls := make([]*domain.Poll, len(r.rooms[roomID]))
	copy(polls, r.rooms[roomID])
	return polls, nil
}
