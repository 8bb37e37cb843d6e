package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jojoob/pollbot/internal/core/ports"
)

type voteService struct {
	repo      ports.PollRepository
	locks     *RoomLocks
	botUserID string
	logger    *zap.Logger
}

func NewVoteService(repo ports.PollRepository, locks *RoomLocks, botUserID string, logger *zap.Logger) ports.VoteService {
	return &voteService{
		repo:      repo,
		locks:     locks,
		botUserID: botUserID,
		logger:    logger,
	}
}

func (s *voteService) HandleReaction(ctx context.Context, input ports.ReactionInput) error {
	// The bot seeds every choice's reaction on the anchor itself; those
	// must not count as votes.
	if input.Sender == s.botUserID {
		return nil
	}

	unlock := s.locks.Lock(input.RoomID)
	defer unlock()

	polls, err := s.repo.ListPolls(ctx, input.RoomID)
	if err != nil {
		return fmt.Errorf("failed to list polls: %w", err)
	}

	for _, poll := range polls {
		if poll.AnchorEventID != input.AnchorEventID {
			continue
		}
		if poll.Record(input.Key, input.Sender, input.EventID) {
			s.logger.Debug("vote recorded",
				zap.String("room_id", input.RoomID),
				zap.String("key", input.Key),
				zap.String("voter", input.Sender),
				zap.String("event_id", input.EventID))
		}
		break
	}

	return nil
}

func (s *voteService) HandleRedaction(ctx context.Context, roomID string, redactedEventID string) error {
	unlock := s.locks.Lock(roomID)
	defer unlock()

	polls, err := s.repo.ListPolls(ctx, roomID)
	if err != nil {
		return fmt.Errorf("failed to list polls: %w", err)
	}

	// A redacted event id belongs to at most one poll, but nothing here
	// relies on that; every poll in the room gets a chance to drop it.
	for _, poll := range polls {
		if vote := poll.Withdraw(redactedEventID); vote != nil {
			s.logger.Debug("vote withdrawn",
				zap.String("room_id", roomID),
				zap.String("key", vote.Choice.Symbol),
				zap.String("voter", vote.VoterID))
		}
	}

	return nil
}
