package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jojoob/pollbot/internal/core/domain"
	"github.com/jojoob/pollbot/internal/core/ports"
)

const (
	eventTypeMessage   = "m.room.message"
	eventTypeReaction  = "m.reaction"
	eventTypeRedaction = "m.room.redaction"
)

const helpText = `You need to enter at least 2 choices.
Syntax: '!poll "Question" "choice" "choice" ...'
or: '!poll Question
choice
choice'

If the first character of a choice is an emoji it will be used for voting instead a default one.`

const poolExhaustedText = "Too many choices without a custom emoji: only nine default symbols exist. Prefix the extra choices with their own emoji."

// transportEvent is the wire form the transport bridge delivers to the
// webhook. RelatesTo and Key are set on reactions, Redacts on redactions.
type transportEvent struct {
	Type      string `json:"type"`
	EventID   string `json:"event_id"`
	Sender    string `json:"sender"`
	Body      string `json:"body,omitempty"`
	RelatesTo string `json:"relates_to,omitempty"`
	Key       string `json:"key,omitempty"`
	Redacts   string `json:"redacts,omitempty"`
}

type EventHandler struct {
	polls     ports.PollService
	votes     ports.VoteService
	messenger ports.Messenger
	logger    *zap.Logger
}

func NewEventHandler(polls ports.PollService, votes ports.VoteService, messenger ports.Messenger, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		polls:     polls,
		votes:     votes,
		messenger: messenger,
		logger:    logger,
	}
}

func (h *EventHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	var evt transportEvent
	if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	switch evt.Type {
	case eventTypeMessage:
		h.handleMessage(ctx, roomID, evt)
	case eventTypeReaction:
		if err := h.votes.HandleReaction(ctx, ports.ReactionInput{
			RoomID:        roomID,
			Sender:        evt.Sender,
			AnchorEventID: evt.RelatesTo,
			Key:           evt.Key,
			EventID:       evt.EventID,
		}); err != nil {
			h.logger.Error("failed to handle reaction", zap.String("room_id", roomID), zap.Error(err))
		}
	case eventTypeRedaction:
		if err := h.votes.HandleRedaction(ctx, roomID, evt.Redacts); err != nil {
			h.logger.Error("failed to handle redaction", zap.String("room_id", roomID), zap.Error(err))
		}
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *EventHandler) handleMessage(ctx context.Context, roomID string, evt transportEvent) {
	body := strings.TrimSpace(evt.Body)

	if setup, ok := commandArgument(body, "!poll"); ok {
		h.createPoll(ctx, roomID, evt, setup, false)
		return
	}
	if setup, ok := commandArgument(body, "!lightpoll"); ok {
		h.createPoll(ctx, roomID, evt, setup, true)
		return
	}
	if rawID, ok := commandArgument(body, "!pollresults"); ok {
		h.pollResults(ctx, roomID, evt, rawID)
	}
}

// commandArgument matches body against a command name and returns the
// raw argument text. The name must be followed by a space, a line break
// or the end of the message, so "!poll" does not match "!pollresults".
func commandArgument(body, name string) (string, bool) {
	if !strings.HasPrefix(body, name) {
		return "", false
	}
	rest := body[len(name):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\r' && rest[0] != '\n' {
		return "", false
	}
	return strings.TrimLeft(rest, " \r\n"), true
}

func (h *EventHandler) createPoll(ctx context.Context, roomID string, evt transportEvent, setup string, light bool) {
	poll, err := h.polls.Create(ctx, ports.CreatePollInput{
		RoomID: roomID,
		Author: evt.Sender,
		Setup:  setup,
	})
	if err != nil {
		h.replyError(ctx, roomID, evt.EventID, err)
		return
	}

	// A light poll anchors on the command message itself; a regular one
	// on the announcement reply.
	anchor := evt.EventID
	if !light {
		anchor, err = h.messenger.Reply(ctx, roomID, evt.EventID, poll.Render())
		if err != nil {
			h.logger.Error("failed to send announcement", zap.String("room_id", roomID), zap.Error(err))
			return
		}
	}

	if err := h.polls.AttachAnchor(ctx, roomID, poll.RoomIndex, anchor); err != nil {
		h.logger.Error("failed to attach anchor", zap.String("room_id", roomID), zap.Error(err))
		return
	}

	for _, choice := range poll.Choices {
		if err := h.messenger.React(ctx, roomID, anchor, choice.Symbol); err != nil {
			h.logger.Warn("failed to seed choice reaction",
				zap.String("room_id", roomID),
				zap.String("key", choice.Symbol),
				zap.Error(err))
		}
	}
}

func (h *EventHandler) pollResults(ctx context.Context, roomID string, evt transportEvent, rawID string) {
	results, err := h.polls.Results(ctx, roomID, rawID)
	if err != nil {
		h.replyError(ctx, roomID, evt.EventID, err)
		return
	}

	if _, err := h.messenger.Reply(ctx, roomID, evt.EventID, results); err != nil {
		h.logger.Error("failed to send results", zap.String("room_id", roomID), zap.Error(err))
	}
}

// replyError turns the expected command errors into user-facing replies.
// Anything else is an internal failure and only gets logged.
func (h *EventHandler) replyError(ctx context.Context, roomID string, inReplyTo string, err error) {
	var text string
	switch {
	case errors.Is(err, domain.ErrInsufficientChoices):
		text = helpText
	case errors.Is(err, domain.ErrDefaultPoolExhausted):
		text = poolExhaustedText
	case errors.Is(err, domain.ErrDuplicateSymbol):
		text = "Two choices share the same emoji. Every choice needs its own symbol."
	case errors.Is(err, domain.ErrMalformedPollID):
		text = "Malformed ID not known."
	case errors.Is(err, domain.ErrPollIDOutOfRange):
		text = "Poll ID not known."
	case errors.Is(err, domain.ErrNoActivePolls):
		text = "No active polls in this room."
	default:
		h.logger.Error("command failed", zap.String("room_id", roomID), zap.Error(err))
		return
	}

	if _, err := h.messenger.Reply(ctx, roomID, inReplyTo, text); err != nil {
		h.logger.Error("failed to send reply", zap.String("room_id", roomID), zap.Error(err))
	}
}
