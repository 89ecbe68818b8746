package repository

import (
	"context"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, campus string, eventType domain.EventType, limit, offset int) ([]*domain.Event, error)
	ListByParticipant(ctx context.Context, userID string) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	UpdateStatus(ctx context.Context, id string, status domain.EventStatus) error
	// AddParticipant inserts the membership row and bumps the counter in one
	// transaction; fails domain.ErrEventFull when at capacity and
	// domain.ErrAlreadyMember on a duplicate join.
	AddParticipant(ctx context.Context, eventID, userID string) error
	RemoveParticipant(ctx context.Context, eventID, userID string) error
	Participants(ctx context.Context, eventID string) ([]string, error)
}
