package domain

import "time"

type GroupStatus string

const (
	GroupStatusActive    GroupStatus = "active"
	GroupStatusCompleted GroupStatus = "completed"
	GroupStatusCancelled GroupStatus = "cancelled"
)

// StudyGroup is a capacity-bounded group scoped to a campus and optionally to
// a career and semester range. CurrentMembers moves in lockstep with the
// membership set, never independently.
type StudyGroup struct {
	ID             string      `json:"id" db:"id"`
	CreatorID      string      `json:"creator_id" db:"creator_id"`
	Name           string      `json:"name" db:"name"`
	Description    string      `json:"description" db:"description"`
	Subject        string      `json:"subject" db:"subject"`
	Career         *string     `json:"career" db:"career"`
	Semester       *int        `json:"semester" db:"semester"`
	Campus         string      `json:"campus" db:"campus"`
	MaxMembers     int         `json:"max_members" db:"max_members"`
	CurrentMembers int         `json:"current_members" db:"current_members"`
	IsPrivate      bool        `json:"is_private" db:"is_private"`
	Status         GroupStatus `json:"status" db:"status"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

// GroupMember is a row of the group membership set.
type GroupMember struct {
	GroupID  string    `json:"group_id" db:"group_id"`
	UserID   string    `json:"user_id" db:"user_id"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
}
