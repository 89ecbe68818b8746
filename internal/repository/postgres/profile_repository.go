package postgres

import (
	"context"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/adrianmtzc/campusmatch-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.AcademicProfile, error) {
	row := r.db.QueryRowxContext(ctx, `
		SELECT user_id, student_id, career, campus, semester, university,
		       academic_interests, graduation_year, created_at, updated_at
		FROM academic_profiles WHERE user_id = $1
	`, userID)
	return scanProfile(row)
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.AcademicProfile) error {
	// Career and campus are identity fields and deliberately absent here.
	query := `
		UPDATE academic_profiles SET
			semester = $1, academic_interests = $2, graduation_year = $3,
			updated_at = NOW()
		WHERE user_id = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		profile.Semester, pq.Array(profile.AcademicInterests),
		profile.GraduationYear, profile.UserID,
	)
	if err != nil {
		return err
	}
	return requireRows(result, domain.ErrProfileNotFound)
}
