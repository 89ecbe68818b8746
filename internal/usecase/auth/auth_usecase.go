package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/adrianmtzc/campusmatch-backend/internal/infrastructure/email"
	"github.com/adrianmtzc/campusmatch-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase struct {
	userRepo    repository.UserRepository
	emailSender email.Sender
	jwtSecret   string
	jwtExpiry   time.Duration
	logger      *slog.Logger
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	emailSender email.Sender,
	jwtSecret string,
	jwtExpiryHour int,
	logger *slog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		emailSender: emailSender,
		jwtSecret:   jwtSecret,
		jwtExpiry:   time.Duration(jwtExpiryHour) * time.Hour,
		logger:      logger,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email       string   `json:"email" binding:"required,university_email"`
	Password    string   `json:"password" binding:"required,min=8,max=72"`
	FirstName   string   `json:"first_name" binding:"required,min=2,max=100"`
	LastName    string   `json:"last_name" binding:"required,min=2,max=100"`
	DateOfBirth string   `json:"date_of_birth" binding:"required"` // YYYY-MM-DD
	Campus      string   `json:"campus" binding:"required,min=2,max=100"`
	Semester    int      `json:"semester" binding:"required,min=1,max=14"`
	Interests   []string `json:"interests" binding:"omitempty,max=10"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// Register creates a user from an institutional email. The career is derived
// from the email's career code, so it stays immutable by construction.
func (uc *AuthUseCase) Register(ctx context.Context, req *RegisterRequest) (*domain.User, error) {
	uniEmail, err := domain.NewUniversityEmail(req.Email)
	if err != nil {
		return nil, err
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: date_of_birth must be YYYY-MM-DD", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	token := uuid.NewString()
	user := &domain.User{
		ID:                uuid.NewString(),
		Email:             uniEmail.String(),
		PasswordHash:      string(hash),
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		DateOfBirth:       &dob,
		Interests:         req.Interests,
		IsActive:          true,
		VerificationToken: &token,
	}
	profile := &domain.AcademicProfile{
		UserID:     user.ID,
		StudentID:  uniEmail.StudentID(),
		Career:     uniEmail.CareerName(),
		Campus:     req.Campus,
		Semester:   req.Semester,
		University: "Universidad Politécnica de Chiapas",
	}

	if err := uc.userRepo.Create(ctx, user, profile); err != nil {
		return nil, err
	}
	user.AcademicProfile = profile

	// Best-effort: registration succeeds even if the relay is down; the
	// token can be re-sent later.
	go func() {
		if err := uc.emailSender.SendVerification(user.Email, user.FirstName, token); err != nil {
			uc.logger.Error("failed to send verification email",
				slog.String("user_id", user.ID), slog.String("error", err.Error()))
		}
	}()

	return user, nil
}

// VerifyEmail confirms the account behind a verification token.
func (uc *AuthUseCase) VerifyEmail(ctx context.Context, token string) error {
	user, err := uc.userRepo.GetByVerificationToken(ctx, token)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return domain.ErrInvalidToken
		}
		return err
	}

	if err := uc.userRepo.MarkEmailVerified(ctx, user.ID); err != nil {
		return err
	}

	go func() {
		if err := uc.emailSender.SendWelcome(user.Email, user.FirstName); err != nil {
			uc.logger.Error("failed to send welcome email",
				slog.String("user_id", user.ID), slog.String("error", err.Error()))
		}
	}()
	return nil
}

// ResendVerification issues a fresh token for an unverified account.
func (uc *AuthUseCase) ResendVerification(ctx context.Context, emailAddr string) error {
	user, err := uc.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user.IsEmailVerified {
		return nil
	}

	token := uuid.NewString()
	user.VerificationToken = &token
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}
	return uc.emailSender.SendVerification(user.Email, user.FirstName, token)
}

// Login checks credentials and issues a signed JWT.
func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsEmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	expiresAt := time.Now().Add(uc.jwtExpiry)
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	if err := uc.userRepo.UpdateLastActive(ctx, user.ID); err != nil {
		uc.logger.Warn("failed to update last_active",
			slog.String("user_id", user.ID), slog.String("error", err.Error()))
	}

	return &AuthResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Me returns the authenticated user's account.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}
