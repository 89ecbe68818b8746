package studygroup

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

const defaultMaxMembers = 10

type StudyGroupUseCase struct {
	groupRepo repository.StudyGroupRepository
	userRepo  repository.UserRepository
	notifier  notification.Notifier
	logger    *slog.Logger
}

func NewStudyGroupUseCase(
	groupRepo repository.StudyGroupRepository,
	userRepo repository.UserRepository,
	notifier notification.Notifier,
	logger *slog.Logger,
) *StudyGroupUseCase {
	return &StudyGroupUseCase{
		groupRepo: groupRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

// CreateRequest represents a new study group. Campus defaults to the
// creator's; career and semester are optional scoping.
type CreateRequest struct {
	Name        string  `json:"name" binding:"required,min=3,max=100"`
	Description string  `json:"description" binding:"omitempty,max=1000"`
	Subject     string  `json:"subject" binding:"required,min=2,max=100"`
	Career      *string `json:"career" binding:"omitempty,max=100"`
	Semester    *int    `json:"semester" binding:"omitempty,min=1,max=14"`
	MaxMembers  int     `json:"max_members" binding:"omitempty,min=2,max=50"`
	IsPrivate   bool    `json:"is_private"`
}

// UpdateRequest carries the creator-editable fields.
type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Subject     *string `json:"subject" binding:"omitempty,min=2,max=100"`
	MaxMembers  *int    `json:"max_members" binding:"omitempty,min=2,max=50"`
	IsPrivate   *bool   `json:"is_private"`
}

// Create persists the group with the creator as its first member; the
// repository seeds the membership inside the insert transaction.
func (uc *StudyGroupUseCase) Create(ctx context.Context, creatorID string, req *CreateRequest) (*domain.StudyGroup, error) {
	creator, err := uc.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if creator.AcademicProfile == nil {
		return nil, domain.ErrProfileNotFound
	}

	maxMembers := req.MaxMembers
	if maxMembers == 0 {
		maxMembers = defaultMaxMembers
	}

	now := time.Now()
	group := &domain.StudyGroup{
		ID:          uuid.NewString(),
		CreatorID:   creatorID,
		Name:        req.Name,
		Description: req.Description,
		Subject:     req.Subject,
		Career:      req.Career,
		Semester:    req.Semester,
		Campus:      creator.AcademicProfile.Campus,
		MaxMembers:  maxMembers,
		IsPrivate:   req.IsPrivate,
		Status:      domain.GroupStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// List returns active groups filtered by campus, subject and career.
func (uc *StudyGroupUseCase) List(ctx context.Context, campus, subject, career string, limit, offset int) ([]*domain.StudyGroup, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return uc.groupRepo.List(ctx, campus, subject, career, limit, offset)
}

// GroupDetail is a group with its membership attached.
type GroupDetail struct {
	Group   *domain.StudyGroup    `json:"group"`
	Members []*domain.GroupMember `json:"members"`
}

func (uc *StudyGroupUseCase) Get(ctx context.Context, groupID string) (*GroupDetail, error) {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	members, err := uc.groupRepo.Members(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &GroupDetail{Group: group, Members: members}, nil
}

// ListJoined returns the groups the user is a member of.
func (uc *StudyGroupUseCase) ListJoined(ctx context.Context, userID string) ([]*domain.StudyGroup, error) {
	return uc.groupRepo.ListByMember(ctx, userID)
}

// Join adds the user after checking the group is active and its entry rules
// admit the user's academic profile. Capacity is enforced atomically in the
// repository.
func (uc *StudyGroupUseCase) Join(ctx context.Context, userID, groupID string) error {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.Status != domain.GroupStatusActive {
		return domain.ErrGroupNotActive
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !matching.CanJoinGroup(group, user.AcademicProfile) {
		return domain.ErrNotEligible
	}

	if err := uc.groupRepo.AddMember(ctx, groupID, userID); err != nil {
		return err
	}

	go uc.notifier.NotifyGroupJoin(context.WithoutCancel(ctx), group.CreatorID, userID, groupID)
	return nil
}

// Leave removes the user's membership. The creator cannot leave their own
// group; they delete it instead.
func (uc *StudyGroupUseCase) Leave(ctx context.Context, userID, groupID string) error {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.CreatorID == userID {
		return domain.ErrNotEligible
	}
	return uc.groupRepo.RemoveMember(ctx, groupID, userID)
}

// Update applies creator-only edits.
func (uc *StudyGroupUseCase) Update(ctx context.Context, userID, groupID string, req *UpdateRequest) (*domain.StudyGroup, error) {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.CreatorID != userID {
		return nil, domain.ErrNotCreator
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Description != nil {
		group.Description = *req.Description
	}
	if req.Subject != nil {
		group.Subject = *req.Subject
	}
	if req.MaxMembers != nil {
		if *req.MaxMembers < group.CurrentMembers {
			return nil, domain.ErrInvalidInput
		}
		group.MaxMembers = *req.MaxMembers
	}
	if req.IsPrivate != nil {
		group.IsPrivate = *req.IsPrivate
	}
	group.UpdatedAt = time.Now()

	if err := uc.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// Delete removes the group entirely. Creator only.
func (uc *StudyGroupUseCase) Delete(ctx context.Context, userID, groupID string) error {
	group, err := uc.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.CreatorID != userID {
		return domain.ErrNotCreator
	}
	return uc.groupRepo.Delete(ctx, groupID)
}

// PopularSubjects lists the most common subjects across active groups.
func (uc *StudyGroupUseCase) PopularSubjects(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 || limit > 20 {
		limit = 10
	}
	return uc.groupRepo.PopularSubjects(ctx, limit)
}
