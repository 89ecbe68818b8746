package repository

import (
	"context"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
)

type StudyGroupRepository interface {
	Create(ctx context.Context, group *domain.StudyGroup) error
	GetByID(ctx context.Context, id string) (*domain.StudyGroup, error)
	List(ctx context.Context, campus, subject, career string, limit, offset int) ([]*domain.StudyGroup, error)
	ListByMember(ctx context.Context, userID string) ([]*domain.StudyGroup, error)
	Update(ctx context.Context, group *domain.StudyGroup) error
	Delete(ctx context.Context, id string) error
	// AddMember inserts the membership row and bumps the counter in one
	// transaction; fails domain.ErrGroupFull at capacity and
	// domain.ErrAlreadyMember on a duplicate join.
	AddMember(ctx context.Context, groupID, userID string) error
	RemoveMember(ctx context.Context, groupID, userID string) error
	Members(ctx context.Context, groupID string) ([]*domain.GroupMember, error)
	PopularSubjects(ctx context.Context, limit int) ([]string, error)
}
