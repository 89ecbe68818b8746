package repository

import (
	"context"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.AcademicProfile, error)
	// Update persists the mutable fields only: semester, academic interests,
	// graduation year. Owner, career and campus are immutable.
	Update(ctx context.Context, profile *domain.AcademicProfile) error
}
