package ports

import "context"

// ReactionInput carries the fields of an inbound reaction event the
// engine consumes. AnchorEventID is the event the reaction relates to,
// EventID the reaction's own id.
type ReactionInput struct {
	RoomID        string
	Sender        string
	AnchorEventID string
	Key           string
	EventID       string
}

// VoteService routes reaction and redaction events to the polls they
// target. Events that match no poll (or no choice) are expected and are
// dropped without error.
type VoteService interface {
	HandleReaction(ctx context.Context, input ReactionInput) error
	HandleRedaction(ctx context.Context, roomID string, redactedEventID string) error
}
