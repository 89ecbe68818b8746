package domain

import "time"

type EventType string

const (
	EventTypeSocial   EventType = "social"
	EventTypeAcademic EventType = "academic"
	EventTypeSports   EventType = "sports"
	EventTypeCultural EventType = "cultural"
)

type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// Event is a capacity-bounded gathering. CurrentParticipants is kept
// consistent with the participant membership set inside a single transaction
// at the repository layer.
type Event struct {
	ID                  string      `json:"id" db:"id"`
	CreatorID           string      `json:"creator_id" db:"creator_id"`
	Title               string      `json:"title" db:"title"`
	Description         string      `json:"description" db:"description"`
	EventType           EventType   `json:"event_type" db:"event_type"`
	Location            string      `json:"location" db:"location"`
	Campus              string      `json:"campus" db:"campus"`
	StartDate           time.Time   `json:"start_date" db:"start_date"`
	EndDate             time.Time   `json:"end_date" db:"end_date"`
	MaxParticipants     *int        `json:"max_participants" db:"max_participants"`
	CurrentParticipants int         `json:"current_participants" db:"current_participants"`
	IsPublic            bool        `json:"is_public" db:"is_public"`
	AllowedCareers      []string    `json:"allowed_careers" db:"allowed_careers"`
	MinSemester         int         `json:"min_semester" db:"min_semester"`
	Tags                []string    `json:"tags" db:"tags"`
	ImageURL            *string     `json:"image_url" db:"image_url"`
	Status              EventStatus `json:"status" db:"status"`
	CreatedAt           time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at" db:"updated_at"`
}
