package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type MessageType string

const (
	MessageTypeText            MessageType = "text"
	MessageTypeImage           MessageType = "image"
	MessageTypeEmoji           MessageType = "emoji"
	MessageTypeStudyInvitation MessageType = "study_invitation"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Metadata is free-form message metadata stored as JSONB.
type Metadata map[string]any

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(src any) error {
	if src == nil {
		*m = Metadata{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata type %T", src)
	}
	return json.Unmarshal(data, m)
}

// Message belongs to exactly one match. Receiver is always the participant
// who is not the sender; only the receiver may mark it read.
type Message struct {
	ID          string      `json:"id" db:"id"`
	MatchID     string      `json:"match_id" db:"match_id"`
	SenderID    string      `json:"sender_id" db:"sender_id"`
	ReceiverID  string      `json:"receiver_id" db:"receiver_id"`
	Content     string      `json:"content" db:"content"`
	MessageType MessageType `json:"message_type" db:"message_type"`
	Metadata    Metadata    `json:"metadata" db:"metadata"`
	IsDelivered bool        `json:"is_delivered" db:"is_delivered"`
	IsRead      bool        `json:"is_read" db:"is_read"`
	DeliveredAt *time.Time  `json:"delivered_at" db:"delivered_at"`
	ReadAt      *time.Time  `json:"read_at" db:"read_at"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

func (m *Message) IsStudyInvitation() bool {
	return m.MessageType == MessageTypeStudyInvitation
}

// InvitationStatus reads the nested status carried by study invitations.
func (m *Message) InvitationStatus() InvitationStatus {
	s, _ := m.Metadata["status"].(string)
	return InvitationStatus(s)
}
