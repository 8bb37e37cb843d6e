package services

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/jojoob/pollbot/internal/core/domain"
	"github.com/jojoob/pollbot/internal/core/ports"
)

type pollService struct {
	repo   ports.PollRepository
	locks  *RoomLocks
	logger *zap.Logger
}

func NewPollService(repo ports.PollRepository, locks *RoomLocks, logger *zap.Logger) ports.PollService {
	return &pollService{
		repo:   repo,
		locks:  locks,
		logger: logger,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	question, rawChoices, err := domain.ParseSetup(input.Setup)
	if err != nil {
		return nil, err
	}

	poll, err := domain.NewPoll(question, rawChoices, input.Author)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(input.RoomID)
	defer unlock()

	if err := s.repo.CreatePoll(ctx, input.RoomID, poll); err != nil {
		return nil, fmt.Errorf("failed to store poll: %w", err)
	}

	s.logger.Info("poll created",
		zap.String("room_id", input.RoomID),
		zap.String("author", input.Author),
		zap.Int("index", poll.RoomIndex),
		zap.Int("choices", len(poll.Choices)))

	return poll, nil
}

func (s *pollService) AttachAnchor(ctx context.Context, roomID string, roomIndex int, anchorEventID string) error {
	unlock := s.locks.Lock(roomID)
	defer unlock()

	poll, err := s.repo.GetPoll(ctx, roomID, roomIndex)
	if err != nil {
		return fmt.Errorf("failed to load poll: %w", err)
	}
	poll.AnchorEventID = anchorEventID

	s.logger.Debug("anchor attached",
		zap.String("room_id", roomID),
		zap.Int("index", roomIndex),
		zap.String("anchor_event_id", anchorEventID))

	return nil
}

// Results renders the results of the poll selected by rawID, a 1-based
// display id. A blank rawID selects the room's newest poll.
func (s *pollService) Results(ctx context.Context, roomID string, rawID string) (string, error) {
	unlock := s.locks.Lock(roomID)
	defer unlock()

	polls, err := s.repo.ListPolls(ctx, roomID)
	if err != nil {
		return "", fmt.Errorf("failed to list polls: %w", err)
	}
	if len(polls) == 0 {
		return "", domain.ErrNoActivePolls
	}

	index := len(polls) - 1
	if rawID != "" {
		id, err := strconv.Atoi(rawID)
		if err != nil {
			return "", domain.ErrMalformedPollID
		}
		if id < 1 || id > len(polls) {
			return "", domain.ErrPollIDOutOfRange
		}
		index = id - 1
	}

	return polls[index].RenderResults(), nil
}
