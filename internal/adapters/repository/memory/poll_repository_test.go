package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jojoob/pollbot/internal/core/domain"
)

func newStoredPoll(t *testing.T, question string) *domain.Poll {
	t.Helper()
	poll, err := domain.NewPoll(question, []string{"a", "b"}, "@alice:example.org")
	require.NoError(t, err)
	return poll
}

func TestCreatePollAssignsRoomIndex(t *testing.T) {
	repo := NewPollRepository()
	ctx := context.Background()

	first := newStoredPoll(t, "First?")
	second := newStoredPoll(t, "Second?")
	require.NoError(t, repo.CreatePoll(ctx, "!room:example.org", first))
	require.NoError(t, repo.CreatePoll(ctx, "!room:example.org", second))

	assert.Equal(t, 0, first.RoomIndex)
	assert.Equal(t, 1, second.RoomIndex)
}

func TestRoomsAreIsolated(t *testing.T) {
	repo := NewPollRepository()
	ctx := context.Background()

	require.NoError(t, repo.CreatePoll(ctx, "!a:example.org", newStoredPoll(t, "A?")))
	require.NoError(t, repo.CreatePoll(ctx, "!b:example.org", newStoredPoll(t, "B?")))

	polls, err := repo.ListPolls(ctx, "!a:example.org")
	require.NoError(t, err)
	require.Len(t, polls, 1)
	assert.Equal(t, "A?", polls[0].Question)
	assert.Equal(t, 0, polls[0].RoomIndex)
}

func TestGetPollBounds(t *testing.T) {
	repo := NewPollRepository()
	ctx := context.Background()

	stored := newStoredPoll(t, "First?")
	require.NoError(t, repo.CreatePoll(ctx, "!room:example.org", stored))

	poll, err := repo.GetPoll(ctx, "!room:example.org", 0)
	require.NoError(t, err)
	assert.Same(t, stored, poll)

	_, err = repo.GetPoll(ctx, "!room:example.org", 1)
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
	_, err = repo.GetPoll(ctx, "!room:example.org", -1)
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
	_, err = repo.GetPoll(ctx, "!empty:example.org", 0)
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestListPollsReturnsCopy(t *testing.T) {
	repo := NewPollRepository()
	ctx := context.Background()

	require.NoError(t, repo.CreatePoll(ctx, "!room:example.org", newStoredPoll(t, "First?")))

	polls, err := repo.ListPolls(ctx, "!room:example.org")
	require.NoError(t, err)
	polls[0] = nil

	again, err := repo.ListPolls(ctx, "!room:example.org")
	require.NoError(t, err)
	require.NotNil(t, again[0])
	assert.Equal(t, "First?", again[0].Question)
}
