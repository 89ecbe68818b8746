package user

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/adrianmtzc/campusmatch-backend/internal/infrastructure/storage"
	"github.com/adrianmtzc/campusmatch-backend/internal/repository"
	"github.com/google/uuid"
)

type UserUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	photos      storage.PhotoStorage
	logger      *slog.Logger
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	photos storage.PhotoStorage,
	logger *slog.Logger,
) *UserUseCase {
	return &UserUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		photos:      photos,
		logger:      logger,
	}
}

// UpdateProfileRequest represents a profile update request. Career and campus
// are identity fields and not updatable.
type UpdateProfileRequest struct {
	FirstName         *string   `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName          *string   `json:"last_name" binding:"omitempty,min=2,max=100"`
	Bio               *string   `json:"bio" binding:"omitempty,max=500"`
	Interests         *[]string `json:"interests" binding:"omitempty,max=10"`
	Semester          *int      `json:"semester" binding:"omitempty,min=1,max=14"`
	AcademicInterests *[]string `json:"academic_interests" binding:"omitempty,max=10"`
	GraduationYear    *int      `json:"graduation_year" binding:"omitempty,min=2000,max=2100"`
}

// GetProfile returns a user with photos and academic profile attached.
func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies the mutable fields and recomputes profile
// completeness (name, bio, academic profile and at least one photo).
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Interests != nil {
		user.Interests = *req.Interests
	}
	user.IsProfileComplete = uc.isComplete(user)

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if user.AcademicProfile != nil &&
		(req.Semester != nil || req.AcademicInterests != nil || req.GraduationYear != nil) {
		profile := user.AcademicProfile
		if req.Semester != nil {
			profile.Semester = *req.Semester
		}
		if req.AcademicInterests != nil {
			profile.AcademicInterests = *req.AcademicInterests
		}
		if req.GraduationYear != nil {
			profile.GraduationYear = req.GraduationYear
		}
		if err := uc.profileRepo.Update(ctx, profile); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (uc *UserUseCase) isComplete(u *domain.User) bool {
	return u.FirstName != "" && u.LastName != "" && u.Bio != "" &&
		u.AcademicProfile != nil && len(u.Photos) > 0
}

// UploadPhoto stores the photo and records the returned descriptor. The
// first photo becomes the main one.
func (uc *UserUseCase) UploadPhoto(ctx context.Context, userID, filename, contentType string, body io.Reader) (*domain.Photo, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("photos/%s/%d%s", userID, time.Now().UnixNano(), path.Ext(filename))
	upload, err := uc.photos.Put(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}

	photo := &domain.Photo{
		ID:     uuid.NewString(),
		UserID: userID,
		URL:    upload.URL,
		Key:    upload.Key,
		IsMain: len(user.Photos) == 0,
	}
	if err := uc.userRepo.AddPhoto(ctx, photo); err != nil {
		return nil, err
	}

	// Gaining a first photo may complete the profile.
	user.Photos = append(user.Photos, *photo)
	if !user.IsProfileComplete && uc.isComplete(user) {
		user.IsProfileComplete = true
		if err := uc.userRepo.Update(ctx, user); err != nil {
			uc.logger.Warn("failed to flag profile complete",
				slog.String("user_id", userID), slog.String("error", err.Error()))
		}
	}

	return photo, nil
}

// DeletePhoto removes the stored object best-effort after the row is gone.
func (uc *UserUseCase) DeletePhoto(ctx context.Context, userID, photoID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	var key string
	for _, photo := range user.Photos {
		if photo.ID == photoID {
			key = photo.Key
			break
		}
	}

	if err := uc.userRepo.DeletePhoto(ctx, userID, photoID); err != nil {
		return err
	}

	if key != "" {
		if err := uc.photos.Delete(ctx, key); err != nil {
			uc.logger.Warn("failed to delete stored photo",
				slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return nil
}

// Search lists active users filtered by campus and/or career.
func (uc *UserUseCase) Search(ctx context.Context, campus, career string, limit, offset int) ([]*domain.User, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return uc.userRepo.Search(ctx, campus, career, limit, offset)
}
