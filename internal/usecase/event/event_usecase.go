package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/adrianmtzc/campusmatch-backend/internal/infrastructure/notification"
	"github.com/adrianmtzc/campusmatch-backend/internal/matching"
	"github.com/adrianmtzc/campusmatch-backend/internal/repository"
	"github.com/google/uuid"
)

type EventUseCase struct {
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	notifier  notification.Notifier
	logger    *slog.Logger
}

func NewEventUseCase(
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	notifier notification.Notifier,
	logger *slog.Logger,
) *EventUseCase {
	return &EventUseCase{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

// CreateRequest represents a new event.
type CreateRequest struct {
	Title           string   `json:"title" binding:"required,min=3,max=200"`
	Description     string   `json:"description" binding:"omitempty,max=2000"`
	EventType       string   `json:"event_type" binding:"required,oneof=social academic sports cultural"`
	Location        string   `json:"location" binding:"required,max=200"`
	Campus          string   `json:"campus" binding:"omitempty,max=100"`
	StartDate       string   `json:"start_date" binding:"required"` // RFC3339
	EndDate         string   `json:"end_date" binding:"required"`   // RFC3339
	MaxParticipants *int     `json:"max_participants" binding:"omitempty,min=2,max=1000"`
	IsPublic        *bool    `json:"is_public"`
	AllowedCareers  []string `json:"allowed_careers" binding:"omitempty,max=20"`
	MinSemester     int      `json:"min_semester" binding:"omitempty,min=1,max=14"`
	Tags            []string `json:"tags" binding:"omitempty,max=10"`
}

// UpdateRequest carries the fields a creator may change after creation.
type UpdateRequest struct {
	Title           *string `json:"title" binding:"omitempty,min=3,max=200"`
	Description     *string `json:"description" binding:"omitempty,max=2000"`
	Location        *string `json:"location" binding:"omitempty,max=200"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	MaxParticipants *int    `json:"max_participants" binding:"omitempty,min=2,max=1000"`
	ImageURL        *string `json:"image_url" binding:"omitempty,url"`
}

// Create validates the date range and persists the event. The creator is
// automatically its first participant.
func (uc *EventUseCase) Create(ctx context.Context, creatorID string, req *CreateRequest) (*domain.Event, error) {
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	now := time.Now()
	event := &domain.Event{
		ID:              uuid.NewString(),
		CreatorID:       creatorID,
		Title:           req.Title,
		Description:     req.Description,
		EventType:       domain.EventType(req.EventType),
		Location:        req.Location,
		Campus:          req.Campus,
		StartDate:       start,
		EndDate:         end,
		MaxParticipants: req.MaxParticipants,
		IsPublic:        isPublic,
		AllowedCareers:  req.AllowedCareers,
		MinSemester:     req.MinSemester,
		Tags:            req.Tags,
		Status:          domain.EventStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	// Entry rules never exclude the creator from their own event.
	if err := uc.eventRepo.AddParticipant(ctx, event.ID, creatorID); err != nil {
		uc.logger.Warn("failed to enroll event creator",
			slog.String("event_id", event.ID), slog.String("error", err.Error()))
	} else {
		event.CurrentParticipants = 1
	}
	return event, nil
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	if !end.After(start) || start.Before(time.Now()) {
		return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
	}
	return start, end, nil
}

// List returns active events filtered by campus and type.
func (uc *EventUseCase) List(ctx context.Context, campus, eventType string, limit, offset int) ([]*domain.Event, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return uc.eventRepo.List(ctx, campus, domain.EventType(eventType), limit, offset)
}

func (uc *EventUseCase) Get(ctx context.Context, eventID string) (*domain.Event, error) {
	return uc.eventRepo.GetByID(ctx, eventID)
}

// ListJoined returns the events the user participates in.
func (uc *EventUseCase) ListJoined(ctx context.Context, userID string) ([]*domain.Event, error) {
	return uc.eventRepo.ListByParticipant(ctx, userID)
}

// Join enrolls the user after checking the event is active and its entry
// rules admit the user's academic profile. Capacity is enforced atomically in
// the repository, so two racing joins on the last seat cannot both win.
func (uc *EventUseCase) Join(ctx context.Context, userID, eventID string) error {
	event, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.Status != domain.EventStatusActive {
		return domain.ErrEventNotActive
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !matching.CanJoinEvent(event, user.AcademicProfile) {
		return domain.ErrNotEligible
	}

	if err := uc.eventRepo.AddParticipant(ctx, eventID, userID); err != nil {
		return err
	}

	if event.CreatorID != userID {
		go uc.notifier.NotifyEventJoin(context.WithoutCancel(ctx), event.CreatorID, userID, eventID)
	}
	return nil
}

// Leave removes the user's participation.
func (uc *EventUseCase) Leave(ctx context.Context, userID, eventID string) error {
	if _, err := uc.eventRepo.GetByID(ctx, eventID); err != nil {
		return err
	}
	return uc.eventRepo.RemoveParticipant(ctx, eventID, userID)
}

// Update applies creator-only edits. Date changes are re-validated as a pair.
func (uc *EventUseCase) Update(ctx context.Context, userID, eventID string, req *UpdateRequest) (*domain.Event, error) {
	event, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.CreatorID != userID {
		return nil, domain.ErrNotCreator
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartDate != nil || req.EndDate != nil {
		startStr := event.StartDate.Format(time.RFC3339)
		endStr := event.EndDate.Format(time.RFC3339)
		if req.StartDate != nil {
			startStr = *req.StartDate
		}
		if req.EndDate != nil {
			endStr = *req.EndDate
		}
		start, end, err := parseDateRange(startStr, endStr)
		if err != nil {
			return nil, err
		}
		event.StartDate, event.EndDate = start, end
	}
	if req.MaxParticipants != nil {
		if *req.MaxParticipants < event.CurrentParticipants {
			return nil, domain.ErrInvalidInput
		}
		event.MaxParticipants = req.MaxParticipants
	}
	if req.ImageURL != nil {
		event.ImageURL = req.ImageURL
	}
	event.UpdatedAt = time.Now()

	if err := uc.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Cancel marks the event cancelled and notifies every participant
// asynchronously.
func (uc *EventUseCase) Cancel(ctx context.Context, userID, eventID string) error {
	event, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.CreatorID != userID {
		return domain.ErrNotCreator
	}
	if event.Status == domain.EventStatusCancelled {
		return nil
	}

	if err := uc.eventRepo.UpdateStatus(ctx, eventID, domain.EventStatusCancelled); err != nil {
		return err
	}

	participants, err := uc.eventRepo.Participants(ctx, eventID)
	if err != nil {
		uc.logger.Warn("failed to list participants for cancellation notice",
			slog.String("event_id", eventID), slog.String("error", err.Error()))
		return nil
	}
	go func(ctx context.Context) {
		for _, participantID := range participants {
			if participantID == userID {
				continue
			}
			uc.notifier.NotifyEventCancelled(ctx, participantID, eventID, event.Title)
		}
	}(context.WithoutCancel(ctx))
	return nil
}
