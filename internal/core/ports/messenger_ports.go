package ports

import "context"

// Messenger is the outbound side of the chat transport. Reply sends a
// markdown message into a room and returns the event id the transport
// assigned to it; React attaches a reaction key to an existing event.
type Messenger interface {
	Reply(ctx context.Context, roomID string, inReplyTo string, text string) (string, error)
	React(ctx context.Context, roomID string, eventID string, key string) error
}
