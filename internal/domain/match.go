package domain

import "time"

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusMatched   MatchStatus = "matched"
	MatchStatusUnmatched MatchStatus = "unmatched"
	MatchStatusBlocked   MatchStatus = "blocked"
)

type SwipeAction string

const (
	ActionNone      SwipeAction = ""
	ActionLike      SwipeAction = "like"
	ActionDislike   SwipeAction = "dislike"
	ActionSuperLike SwipeAction = "super_like"
)

// IsPositive reports whether the action counts toward a mutual like.
func (a SwipeAction) IsPositive() bool {
	return a == ActionLike || a == ActionSuperLike
}

// Match is the unordered pair relationship between two users. The pair is
// canonicalized so UserID1 < UserID2; status is derived from the two action
// slots by the state machine in internal/matching and never set directly.
type Match struct {
	ID              string      `json:"id" db:"id"`
	UserID1         string      `json:"user_id1" db:"user_id1"`
	UserID2         string      `json:"user_id2" db:"user_id2"`
	Status          MatchStatus `json:"status" db:"status"`
	Compatibility   int         `json:"compatibility" db:"compatibility"`
	User1Action     SwipeAction `json:"user1_action" db:"user1_action"`
	User2Action     SwipeAction `json:"user2_action" db:"user2_action"`
	MatchedAt       *time.Time  `json:"matched_at" db:"matched_at"`
	LastInteraction time.Time   `json:"last_interaction" db:"last_interaction"`
	Version         int         `json:"-" db:"version"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}

// CanonicalPair normalizes an unordered user pair to a fixed order so that
// (A,B) and (B,A) address the same match row.
func CanonicalPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

func (m *Match) HasUser(userID string) bool {
	return m.UserID1 == userID || m.UserID2 == userID
}

// OtherUser returns the participant that is not userID.
func (m *Match) OtherUser(userID string) (string, bool) {
	if m.UserID1 == userID {
		return m.UserID2, true
	}
	if m.UserID2 == userID {
		return m.UserID1, true
	}
	return "", false
}

func (m *Match) IsMatched() bool {
	return m.Status == MatchStatusMatched
}

// IsTerminal reports whether the match reached a state nothing transitions
// out of automatically.
func (m *Match) IsTerminal() bool {
	return m.Status == MatchStatusUnmatched || m.Status == MatchStatusBlocked
}
