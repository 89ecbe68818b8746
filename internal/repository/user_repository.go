package repository

import (
	"context"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
)

type UserRepository interface {
	// Create persists the user and their academic profile in one transaction.
	Create(ctx context.Context, user *domain.User, profile *domain.AcademicProfile) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	MarkEmailVerified(ctx context.Context, id string) error
	UpdateLastActive(ctx context.Context, id string) error
	// ListCandidates returns active users on the given campus, profiles and
	// photos attached, excluding the requesting user.
	ListCandidates(ctx context.Context, campus, excludeUserID string, limit int) ([]*domain.User, error)
	Search(ctx context.Context, campus, career string, limit, offset int) ([]*domain.User, error)
	AddPhoto(ctx context.Context, photo *domain.Photo) error
	DeletePhoto(ctx context.Context, userID, photoID string) error
}
