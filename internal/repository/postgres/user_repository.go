package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/adrianmtzc/campusmatch-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const userColumns = `
	id, email, password_hash, first_name, last_name, date_of_birth, bio,
	interests, is_email_verified, is_profile_complete, is_active,
	verification_token, last_active, created_at, updated_at
`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User, profile *domain.AcademicProfile) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	userQuery := `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name, date_of_birth,
			bio, interests, is_email_verified, is_profile_complete, is_active,
			verification_token
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING last_active, created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, userQuery,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.DateOfBirth, user.Bio, pq.Array(user.Interests),
		user.IsEmailVerified, user.IsProfileComplete, user.IsActive,
		user.VerificationToken,
	).Scan(&user.LastActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return err
	}

	profileQuery := `
		INSERT INTO academic_profiles (
			user_id, student_id, career, campus, semester, university,
			academic_interests, graduation_year
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, profileQuery,
		profile.UserID, profile.StudentID, profile.Career, profile.Campus,
		profile.Semester, profile.University,
		pq.Array(profile.AcademicInterests), profile.GraduationYear,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepository) GetByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE verification_token = $1`, token)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowxContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if err := r.attach(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// attach loads photos and the academic profile for a user row.
func (r *userRepository) attach(ctx context.Context, user *domain.User) error {
	photos, err := r.photos(ctx, user.ID)
	if err != nil {
		return err
	}
	user.Photos = photos

	profile, err := r.profile(ctx, user.ID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return err
	}
	user.AcademicProfile = profile
	return nil
}

func (r *userRepository) photos(ctx context.Context, userID string) ([]domain.Photo, error) {
	var photos []domain.Photo
	query := `
		SELECT id, user_id, url, storage_key, is_main, created_at
		FROM user_photos
		WHERE user_id = $1
		ORDER BY is_main DESC, created_at ASC
	`
	err := r.db.SelectContext(ctx, &photos, query, userID)
	return photos, err
}

func (r *userRepository) profile(ctx context.Context, userID string) (*domain.AcademicProfile, error) {
	row := r.db.QueryRowxContext(ctx, `
		SELECT user_id, student_id, career, campus, semester, university,
		       academic_interests, graduation_year, created_at, updated_at
		FROM academic_profiles WHERE user_id = $1
	`, userID)
	return scanProfile(row)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users SET
			first_name = $1, last_name = $2, date_of_birth = $3, bio = $4,
			interests = $5, is_profile_complete = $6, is_active = $7,
			verification_token = $8, updated_at = NOW()
		WHERE id = $9
	`
	result, err := r.db.ExecContext(ctx, query,
		user.FirstName, user.LastName, user.DateOfBirth, user.Bio,
		pq.Array(user.Interests), user.IsProfileComplete, user.IsActive,
		user.VerificationToken, user.ID,
	)
	if err != nil {
		return err
	}
	return requireRows(result, domain.ErrUserNotFound)
}

func (r *userRepository) MarkEmailVerified(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET is_email_verified = TRUE, verification_token = NULL, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireRows(result, domain.ErrUserNotFound)
}

func (r *userRepository) UpdateLastActive(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_active = NOW() WHERE id = $1`, id)
	return err
}

func (r *userRepository) ListCandidates(ctx context.Context, campus, excludeUserID string, limit int) ([]*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.id <> $1
		  AND u.is_active = TRUE
		  AND u.is_email_verified = TRUE
		  AND u.is_profile_complete = TRUE
		  AND EXISTS (
			SELECT 1 FROM academic_profiles p
			WHERE p.user_id = u.id AND p.campus = $2
		  )
		ORDER BY u.last_active DESC
		LIMIT $3
	`
	return r.list(ctx, query, excludeUserID, campus, limit)
}

func (r *userRepository) Search(ctx context.Context, campus, career string, limit, offset int) ([]*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.is_active = TRUE
		  AND EXISTS (
			SELECT 1 FROM academic_profiles p
			WHERE p.user_id = u.id
			  AND ($1 = '' OR p.campus = $1)
			  AND ($2 = '' OR p.career = $2)
		  )
		ORDER BY u.last_active DESC
		LIMIT $3 OFFSET $4
	`
	return r.list(ctx, query, campus, career, limit, offset)
}

func (r *userRepository) list(ctx context.Context, query string, args ...any) ([]*domain.User, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, user := range users {
		if err := r.attach(ctx, user); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (r *userRepository) AddPhoto(ctx context.Context, photo *domain.Photo) error {
	query := `
		INSERT INTO user_photos (id, user_id, url, storage_key, is_main)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		photo.ID, photo.UserID, photo.URL, photo.Key, photo.IsMain,
	).Scan(&photo.CreatedAt)
}

func (r *userRepository) DeletePhoto(ctx context.Context, userID, photoID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM user_photos WHERE id = $1 AND user_id = $2`, photoID, userID)
	if err != nil {
		return err
	}
	return requireRows(result, domain.ErrUserNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FirstName,
		&user.LastName, &user.DateOfBirth, &user.Bio,
		pq.Array(&user.Interests), &user.IsEmailVerified,
		&user.IsProfileComplete, &user.IsActive, &user.VerificationToken,
		&user.LastActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func scanProfile(row rowScanner) (*domain.AcademicProfile, error) {
	var p domain.AcademicProfile
	err := row.Scan(
		&p.UserID, &p.StudentID, &p.Career, &p.Campus, &p.Semester,
		&p.University, pq.Array(&p.AcademicInterests), &p.GraduationYear,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func requireRows(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
