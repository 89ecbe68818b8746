package auth

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User, profile *domain.AcademicProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byEmail[user.Email]; exists {
		return domain.ErrEmailTaken
	}
	user.AcademicProfile = profile
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByVerificationToken(_ context.Context, token string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) MarkEmailVerified(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsEmailVerified = true
	u.VerificationToken = nil
	return nil
}

func (f *fakeUserRepo) UpdateLastActive(context.Context, string) error    { return nil }
func (f *fakeUserRepo) AddPhoto(context.Context, *domain.Photo) error     { return nil }
func (f *fakeUserRepo) DeletePhoto(context.Context, string, string) error { return nil }

func (f *fakeUserRepo) ListCandidates(context.Context, string, string, int) ([]*domain.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Search(context.Context, string, string, int, int) ([]*domain.User, error) {
	return nil, nil
}

// fakeSender records sends; verification signals so tests can wait on the
// async send after Register.
type fakeSender struct {
	verification chan string
	welcome      chan string
}

func newFakeSender() *fakeSender {
	return &fakeSender{
		verification: make(chan string, 4),
		welcome:      make(chan string, 4),
	}
}

func (f *fakeSender) SendVerification(to, _, token string) error {
	f.verification <- token
	return nil
}

func (f *fakeSender) SendWelcome(to, _ string) error {
	f.welcome <- to
	return nil
}

const testSecret = "test-secret-that-is-at-least-32-chars!!"

func newTestAuth() (*AuthUseCase, *fakeUserRepo, *fakeSender) {
	repo := newFakeUserRepo()
	sender := newFakeSender()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewAuthUseCase(repo, sender, testSecret, 24, logger), repo, sender
}

func registerRequest() *RegisterRequest {
	return &RegisterRequest{
		Email:       "223204@ids.upchiapas.edu.mx",
		Password:    "correct-horse",
		FirstName:   "Adrián",
		LastName:    "Martínez",
		DateOfBirth: "2003-06-15",
		Campus:      "Tuxtla",
		Semester:    5,
	}
}

func TestRegisterDerivesCareerFromEmail(t *testing.T) {
	uc, _, sender := newTestAuth()

	user, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	require.NotNil(t, user.AcademicProfile)
	assert.Equal(t, "223204", user.AcademicProfile.StudentID)
	assert.Equal(t, "Ingeniería en Desarrollo de Software", user.AcademicProfile.Career)
	assert.False(t, user.IsEmailVerified)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	// Verification email goes out asynchronously.
	token := <-sender.verification
	assert.NotEmpty(t, token)
}

func TestRegisterRejectsExternalEmail(t *testing.T) {
	uc, _, _ := newTestAuth()

	req := registerRequest()
	req.Email = "someone@gmail.com"
	_, err := uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	uc, _, sender := newTestAuth()

	_, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	<-sender.verification

	_, err = uc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegisterRejectsBadDate(t *testing.T) {
	uc, _, _ := newTestAuth()

	req := registerRequest()
	req.DateOfBirth = "15/06/2003"
	_, err := uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVerifyEmailFlow(t *testing.T) {
	uc, repo, sender := newTestAuth()

	user, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	token := <-sender.verification

	require.NoError(t, uc.VerifyEmail(context.Background(), token))

	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsEmailVerified)

	assert.Equal(t, user.Email, <-sender.welcome)

	// The consumed token no longer resolves.
	assert.ErrorIs(t, uc.VerifyEmail(context.Background(), token), domain.ErrInvalidToken)
}

func TestLoginRequiresVerifiedEmail(t *testing.T) {
	uc, _, sender := newTestAuth()

	_, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	token := <-sender.verification

	_, err = uc.Login(context.Background(), &LoginRequest{
		Email:    "223204@ids.upchiapas.edu.mx",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, domain.ErrEmailNotVerified)

	require.NoError(t, uc.VerifyEmail(context.Background(), token))

	resp, err := uc.Login(context.Background(), &LoginRequest{
		Email:    "223204@ids.upchiapas.edu.mx",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	uc, _, sender := newTestAuth()

	user, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NoError(t, uc.VerifyEmail(context.Background(), <-sender.verification))
	_ = user

	_, err = uc.Login(context.Background(), &LoginRequest{
		Email:    "223204@ids.upchiapas.edu.mx",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Unknown email gets the same error as a wrong password.
	_, err = uc.Login(context.Background(), &LoginRequest{
		Email:    "999999@ids.upchiapas.edu.mx",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginTokenCarriesUserID(t *testing.T) {
	uc, _, sender := newTestAuth()

	user, err := uc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NoError(t, uc.VerifyEmail(context.Background(), <-sender.verification))

	resp, err := uc.Login(context.Background(), &LoginRequest{
		Email:    "223204@ids.upchiapas.edu.mx",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(resp.Token, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, user.ID, claims.Subject)
}
