package domain

import "errors"

// Not found
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("academic profile not found")
	ErrMatchNotFound   = errors.New("match not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrGroupNotFound   = errors.New("study group not found")
)

// Unauthorized
var (
	ErrNotParticipant     = errors.New("user is not a participant of this match")
	ErrNotReceiver        = errors.New("user is not the receiver of this message")
	ErrNotCreator         = errors.New("user is not the creator")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Invalid state
var (
	ErrMatchNotActive   = errors.New("match is not active")
	ErrEventFull        = errors.New("event is full")
	ErrEventNotActive   = errors.New("event is not active")
	ErrGroupFull        = errors.New("study group is full")
	ErrGroupNotActive   = errors.New("study group is not active")
	ErrAlreadyMember    = errors.New("user is already a member")
	ErrNotMember        = errors.New("user is not a member")
	ErrNotEligible      = errors.New("user is not eligible for matching")
	ErrEmailNotVerified = errors.New("email is not verified")
	ErrNotInvitation    = errors.New("message is not a study invitation")
)

// Validation
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidEmail        = errors.New("invalid university email")
	ErrInvalidDateRange    = errors.New("end date must be after start date")
	ErrCannotMatchSelf     = errors.New("cannot perform a match action on yourself")
	ErrEmptyMessageContent = errors.New("message content is required")
)

// Conflict
var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrMatchAlreadyExists = errors.New("match already exists for this pair")
	ErrConcurrentUpdate   = errors.New("match was modified concurrently")
)
