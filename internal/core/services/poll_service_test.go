package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jojoob/pollbot/internal/adapters/repository/memory"
	"github.com/jojoob/pollbot/internal/core/domain"
	"github.com/jojoob/pollbot/internal/core/ports"
)

func newPollServiceForTest() ports.PollService {
	return NewPollService(memory.NewPollRepository(), NewRoomLocks(), zap.NewNop())
}

func createTestPoll(t *testing.T, svc ports.PollService, roomID string) *domain.Poll {
	t.Helper()
	poll, err := svc.Create(context.Background(), ports.CreatePollInput{
		RoomID: roomID,
		Author: "@alice:example.org",
		Setup:  `"Favorite color?" "red" "green"`,
	})
	require.NoError(t, err)
	return poll
}

func TestCreateAssignsSequentialIndexes(t *testing.T) {
	svc := newPollServiceForTest()

	first := createTestPoll(t, svc, "!room:example.org")
	second := createTestPoll(t, svc, "!room:example.org")
	other := createTestPoll(t, svc, "!other:example.org")

	assert.Equal(t, 0, first.RoomIndex)
	assert.Equal(t, 1, second.RoomIndex)
	assert.Equal(t, 0, other.RoomIndex)
	assert.Equal(t, "Favorite color?", first.Question)
	assert.Len(t, first.Choices, 2)
}

func TestCreateRejectsBadSetup(t *testing.T) {
	svc := newPollServiceForTest()

	_, err := svc.Create(context.Background(), ports.CreatePollInput{
		RoomID: "!room:example.org",
		Setup:  `"Favorite color?" "red"`,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientChoices)

	_, err = svc.Create(context.Background(), ports.CreatePollInput{
		RoomID: "!room:example.org",
		Setup:  `"Too many?" "a" "b" "c" "d" "e" "f" "g" "h" "i" "j"`,
	})
	assert.ErrorIs(t, err, domain.ErrDefaultPoolExhausted)
}

func TestAttachAnchor(t *testing.T) {
	svc := newPollServiceForTest()
	poll := createTestPoll(t, svc, "!room:example.org")

	require.NoError(t, svc.AttachAnchor(context.Background(), "!room:example.org", poll.RoomIndex, "$anchor"))
	assert.Equal(t, "$anchor", poll.AnchorEventID)

	err := svc.AttachAnchor(context.Background(), "!room:example.org", 7, "$anchor")
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestResultsSelectsLatestByDefault(t *testing.T) {
	svc := newPollServiceForTest()
	createTestPoll(t, svc, "!room:example.org")

	second, err := svc.Create(context.Background(), ports.CreatePollInput{
		RoomID: "!room:example.org",
		Author: "@alice:example.org",
		Setup:  `"Second question?" "x" "y"`,
	})
	require.NoError(t, err)

	results, err := svc.Results(context.Background(), "!room:example.org", "")
	require.NoError(t, err)
	assert.Contains(t, results, second.Question)

	results, err = svc.Results(context.Background(), "!room:example.org", "1")
	require.NoError(t, err)
	assert.Contains(t, results, "Favorite color?")
}

func TestResultsErrors(t *testing.T) {
	svc := newPollServiceForTest()

	_, err := svc.Results(context.Background(), "!empty:example.org", "")
	assert.ErrorIs(t, err, domain.ErrNoActivePolls)

	createTestPoll(t, svc, "!room:example.org")

	_, err = svc.Results(context.Background(), "!room:example.org", "abc")
	assert.ErrorIs(t, err, domain.ErrMalformedPollID)

	for _, rawID := range []string{"0", "2", "99", "-1"} {
		_, err = svc.Results(context.Background(), "!room:example.org", rawID)
		assert.ErrorIs(t, err, domain.ErrPollIDOutOfRange, "raw id %q", rawID)
	}
}
