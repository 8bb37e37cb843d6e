package domain

import "errors"

var (
	ErrInsufficientChoices  = errors.New("not enough arguments supplied (three at least for the question and two choices)")
	ErrDefaultPoolExhausted = errors.New("more choices without a custom emoji than available default symbols")
	ErrDuplicateSymbol      = errors.New("two choices share the same custom emoji")
	ErrMalformedPollID      = errors.New("malformed poll id")
	ErrPollIDOutOfRange     = errors.New("poll id not known")
	ErrNoActivePolls        = errors.New("no active polls in this room")
	ErrPollNotFound         = errors.New("poll not found")
)
