package matching

import (
	"testing"
	"time"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingMatch() *domain.Match {
	return &domain.Match{
		ID:      "m1",
		UserID1: "alice",
		UserID2: "bob",
		Status:  domain.MatchStatusPending,
	}
}

func TestApplyActionMutualLike(t *testing.T) {
	m := pendingMatch()
	now := time.Now()

	became, err := ApplyAction(m, "alice", domain.ActionLike, now)
	require.NoError(t, err)
	assert.False(t, became)
	assert.Equal(t, domain.MatchStatusPending, m.Status)
	assert.Nil(t, m.MatchedAt)

	became, err = ApplyAction(m, "bob", domain.ActionSuperLike, now)
	require.NoError(t, err)
	assert.True(t, became)
	assert.Equal(t, domain.MatchStatusMatched, m.Status)
	require.NotNil(t, m.MatchedAt)
	assert.Equal(t, now, *m.MatchedAt)
}

func TestApplyActionDislikeNeverMatches(t *testing.T) {
	m := pendingMatch()
	now := time.Now()

	_, err := ApplyAction(m, "alice", domain.ActionLike, now)
	require.NoError(t, err)
	became, err := ApplyAction(m, "bob", domain.ActionDislike, now)
	require.NoError(t, err)

	assert.False(t, became)
	assert.Equal(t, domain.MatchStatusPending, m.Status)
}

func TestApplyActionIdempotentOnRepeat(t *testing.T) {
	m := pendingMatch()
	first := time.Now()
	_, err := ApplyAction(m, "alice", domain.ActionLike, first)
	require.NoError(t, err)
	_, err = ApplyAction(m, "bob", domain.ActionLike, first)
	require.NoError(t, err)

	// A re-sent like must not re-transition or move matchedAt.
	later := first.Add(time.Hour)
	became, err := ApplyAction(m, "alice", domain.ActionLike, later)
	require.NoError(t, err)
	assert.False(t, became)
	assert.Equal(t, domain.MatchStatusMatched, m.Status)
	assert.Equal(t, first, *m.MatchedAt)
	assert.Equal(t, later, m.LastInteraction)
}

func TestApplyActionRejectsOutsider(t *testing.T) {
	m := pendingMatch()
	_, err := ApplyAction(m, "mallory", domain.ActionLike, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotParticipant)
}

func TestUnmatch(t *testing.T) {
	now := time.Now()

	t.Run("from pending", func(t *testing.T) {
		m := pendingMatch()
		require.NoError(t, Unmatch(m, "alice", now))
		assert.Equal(t, domain.MatchStatusUnmatched, m.Status)
	})

	t.Run("from matched", func(t *testing.T) {
		m := pendingMatch()
		m.Status = domain.MatchStatusMatched
		require.NoError(t, Unmatch(m, "bob", now))
		assert.Equal(t, domain.MatchStatusUnmatched, m.Status)
	})

	t.Run("idempotent", func(t *testing.T) {
		m := pendingMatch()
		m.Status = domain.MatchStatusUnmatched
		require.NoError(t, Unmatch(m, "alice", now))
		assert.Equal(t, domain.MatchStatusUnmatched, m.Status)
	})

	t.Run("cannot leave blocked", func(t *testing.T) {
		m := pendingMatch()
		m.Status = domain.MatchStatusBlocked
		assert.ErrorIs(t, Unmatch(m, "alice", now), domain.ErrMatchNotActive)
		assert.Equal(t, domain.MatchStatusBlocked, m.Status)
	})

	t.Run("outsider rejected", func(t *testing.T) {
		m := pendingMatch()
		assert.ErrorIs(t, Unmatch(m, "mallory", now), domain.ErrNotParticipant)
	})
}

func TestBlock(t *testing.T) {
	now := time.Now()

	for _, from := range []domain.MatchStatus{
		domain.MatchStatusPending,
		domain.MatchStatusMatched,
		domain.MatchStatusUnmatched,
		domain.MatchStatusBlocked,
	} {
		t.Run("from "+string(from), func(t *testing.T) {
			m := pendingMatch()
			m.Status = from
			require.NoError(t, Block(m, "alice", now))
			assert.Equal(t, domain.MatchStatusBlocked, m.Status)
		})
	}

	t.Run("outsider rejected", func(t *testing.T) {
		m := pendingMatch()
		assert.ErrorIs(t, Block(m, "mallory", now), domain.ErrNotParticipant)
	})
}
