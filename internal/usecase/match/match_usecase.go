package match

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/adrianmtzc/campusmatch-backend/internal/infrastructure/notification"
	"github.com/adrianmtzc/campusmatch-backend/internal/matching"
	"github.com/adrianmtzc/campusmatch-backend/internal/repository"
	"github.com/google/uuid"
)

// maxRetries bounds the optimistic-concurrency retry loop in ProcessAction.
// Two users acting on the same pair at once lose at most twice before one
// retry lands on a fresh row version.
const maxRetries = 3

type MatchUseCase struct {
	matchRepo repository.MatchRepository
	userRepo  repository.UserRepository
	notifier  notification.Notifier
	logger    *slog.Logger
}

func NewMatchUseCase(
	matchRepo repository.MatchRepository,
	userRepo repository.UserRepository,
	notifier notification.Notifier,
	logger *slog.Logger,
) *MatchUseCase {
	return &MatchUseCase{
		matchRepo: matchRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

// ActionRequest represents a swipe on another user.
type ActionRequest struct {
	TargetUserID string `json:"target_user_id" binding:"required,uuid"`
	Action       string `json:"action" binding:"required,oneof=like dislike super_like"`
}

// ActionResult reports the outcome of a swipe.
type ActionResult struct {
	Match    *domain.Match `json:"match"`
	IsMutual bool          `json:"is_mutual"`
}

// GetPotentialMatches returns candidates on the requester's campus ranked by
// compatibility, excluding everyone the requester already interacted with.
func (uc *MatchUseCase) GetPotentialMatches(ctx context.Context, userID string, limit int) ([]matching.ScoredCandidate, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !matching.EligibleForMatching(user) {
		return nil, domain.ErrNotEligible
	}

	if limit <= 0 || limit > 50 {
		limit = 10
	}

	interacted, err := uc.matchRepo.InteractedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	exclude := make(map[string]bool, len(interacted))
	for _, id := range interacted {
		exclude[id] = true
	}

	// Over-fetch so exclusions don't starve the page.
	pool, err := uc.userRepo.ListCandidates(ctx, user.AcademicProfile.Campus, userID, limit+len(exclude)+10)
	if err != nil {
		return nil, err
	}

	return matching.Rank(user.AcademicProfile, pool, exclude, limit), nil
}

// ProcessAction records a swipe toward targetID, creating the match row on
// first contact. Lost races on the pair row (another action landing first)
// are retried a bounded number of times against the fresh row.
func (uc *MatchUseCase) ProcessAction(ctx context.Context, userID, targetID string, action domain.SwipeAction) (*ActionResult, error) {
	if userID == targetID {
		return nil, domain.ErrCannotMatchSelf
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !matching.EligibleForMatching(user) {
		return nil, domain.ErrNotEligible
	}
	target, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !matching.EligibleForMatching(target) {
		return nil, domain.ErrNotEligible
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		match, err := uc.matchRepo.GetByUsers(ctx, userID, targetID)
		switch {
		case errors.Is(err, domain.ErrMatchNotFound):
			match, err = uc.createMatch(ctx, user, target)
			if errors.Is(err, domain.ErrMatchAlreadyExists) {
				// Lost the insert race; re-read and apply to the winner's row.
				lastErr = err
				continue
			}
			if err != nil {
				return nil, err
			}
		case err != nil:
			return nil, err
		}

		if match.IsTerminal() {
			return nil, domain.ErrMatchNotActive
		}

		now := time.Now()
		becameMatched, err := matching.ApplyAction(match, userID, action, now)
		if err != nil {
			return nil, err
		}

		if err := uc.matchRepo.Update(ctx, match); err != nil {
			if errors.Is(err, domain.ErrConcurrentUpdate) {
				lastErr = err
				continue
			}
			return nil, err
		}

		if becameMatched {
			go uc.notifier.NotifyMatch(context.WithoutCancel(ctx), match)
		}
		return &ActionResult{Match: match, IsMutual: match.IsMatched()}, nil
	}

	uc.logger.Warn("match action retries exhausted",
		slog.String("user_id", userID),
		slog.String("target_id", targetID),
		slog.String("error", lastErr.Error()))
	return nil, lastErr
}

// createMatch inserts the canonical pair row with the compatibility score
// frozen at creation time.
func (uc *MatchUseCase) createMatch(ctx context.Context, user, target *domain.User) (*domain.Match, error) {
	id1, id2 := domain.CanonicalPair(user.ID, target.ID)
	now := time.Now()
	match := &domain.Match{
		ID:              uuid.NewString(),
		UserID1:         id1,
		UserID2:         id2,
		Status:          domain.MatchStatusPending,
		Compatibility:   matching.Score(user.AcademicProfile, target.AcademicProfile),
		LastInteraction: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

// MatchWithUser is a matched pair seen from one participant's side.
type MatchWithUser struct {
	Match *domain.Match `json:"match"`
	User  *domain.User  `json:"user"`
}

// GetMatches returns the user's active matches with the other participant's
// profile attached.
func (uc *MatchUseCase) GetMatches(ctx context.Context, userID string) ([]MatchWithUser, error) {
	matches, err := uc.matchRepo.GetMatchedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]MatchWithUser, 0, len(matches))
	for _, m := range matches {
		otherID, ok := m.OtherUser(userID)
		if !ok {
			continue
		}
		other, err := uc.userRepo.GetByID(ctx, otherID)
		if err != nil {
			uc.logger.Warn("failed to load match participant",
				slog.String("match_id", m.ID), slog.String("user_id", otherID),
				slog.String("error", err.Error()))
			continue
		}
		result = append(result, MatchWithUser{Match: m, User: other})
	}
	return result, nil
}

// GetMatch returns a single match the caller participates in.
func (uc *MatchUseCase) GetMatch(ctx context.Context, userID, matchID string) (*domain.Match, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(userID) {
		return nil, domain.ErrNotParticipant
	}
	return match, nil
}

// Unmatch ends the relationship. Safe to repeat.
func (uc *MatchUseCase) Unmatch(ctx context.Context, userID, matchID string) error {
	return uc.transition(ctx, userID, matchID, matching.Unmatch)
}

// Block ends the relationship and prevents any future one. Safe to repeat.
func (uc *MatchUseCase) Block(ctx context.Context, userID, matchID string) error {
	return uc.transition(ctx, userID, matchID, matching.Block)
}

func (uc *MatchUseCase) transition(ctx context.Context, userID, matchID string, apply func(*domain.Match, string, time.Time) error) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		match, err := uc.matchRepo.GetByID(ctx, matchID)
		if err != nil {
			return err
		}

		before := match.Status
		if err := apply(match, userID, time.Now()); err != nil {
			return err
		}
		if match.Status == before {
			return nil
		}

		if err := uc.matchRepo.Update(ctx, match); err != nil {
			if errors.Is(err, domain.ErrConcurrentUpdate) {
				lastErr = err
				continue
			}
			return err
		}
		return nil
	}
	return lastErr
}
