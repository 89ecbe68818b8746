package matching

import (
	"time"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
)

// ApplyAction records an action in the slot belonging to actorID and derives
// the resulting status. It returns true when the call transitioned the match
// into matched. Status is never written except through the transition rule:
// both slots positive while pending => matched, matchedAt stamped once.
// Re-sending the same action is idempotent for status and matchedAt.
func ApplyAction(m *domain.Match, actorID string, action domain.SwipeAction, now time.Time) (bool, error) {
	switch actorID {
	case m.UserID1:
		m.User1Action = action
	case m.UserID2:
		m.User2Action = action
	default:
		return false, domain.ErrNotParticipant
	}

	becameMatched := false
	if MutualLike(m) && m.Status == domain.MatchStatusPending {
		m.Status = domain.MatchStatusMatched
		m.MatchedAt = &now
		becameMatched = true
	}

	m.LastInteraction = now
	m.UpdatedAt = now
	return becameMatched, nil
}

// MutualLike reports whether both action slots hold like or super_like.
func MutualLike(m *domain.Match) bool {
	return m.User1Action.IsPositive() && m.User2Action.IsPositive()
}

// Unmatch moves the match to unmatched. It is idempotent and reachable from
// any non-terminal state; a blocked match cannot be unblocked this way.
func Unmatch(m *domain.Match, actorID string, now time.Time) error {
	if !m.HasUser(actorID) {
		return domain.ErrNotParticipant
	}
	if m.Status == domain.MatchStatusUnmatched {
		return nil
	}
	if m.Status == domain.MatchStatusBlocked {
		return domain.ErrMatchNotActive
	}
	m.Status = domain.MatchStatusUnmatched
	m.UpdatedAt = now
	return nil
}

// Block moves the match to blocked. Idempotent; allowed from every state,
// including unmatched, so a participant can always block the other.
func Block(m *domain.Match, actorID string, now time.Time) error {
	if !m.HasUser(actorID) {
		return domain.ErrNotParticipant
	}
	if m.Status == domain.MatchStatusBlocked {
		return nil
	}
	m.Status = domain.MatchStatusBlocked
	m.UpdatedAt = now
	return nil
}
