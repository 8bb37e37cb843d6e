package ports

import (
	"context"

	"github.com/jojoob/pollbot/internal/core/domain"
)

// PollRepository holds every poll created during the process lifetime,
// grouped per room in creation order. CreatePoll assigns the poll's room
// index (its 0-based position) before appending; the index never changes
// afterwards.
type PollRepository interface {
	CreatePoll(ctx context.Context, roomID string, poll *domain.Poll) error
	GetPoll(ctx context.Context, roomID string, index int) (*domain.Poll, error)
	ListPolls(ctx context.Context, roomID string) ([]*domain.Poll, error)
}

type CreatePollInput struct {
	RoomID string
	Author string
	Setup  string
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.Poll, error)
	AttachAnchor(ctx context.Context, roomID string, roomIndex int, anchorEventID string) error
	Results(ctx context.Context, roomID string, rawID string) (string, error)
}
