package repository

import (
	"context"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
)

type MatchRepository interface {
	// Create inserts a new match row; the canonical-pair unique constraint
	// maps to domain.ErrMatchAlreadyExists when two first actions race.
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id string) (*domain.Match, error)
	GetByUsers(ctx context.Context, userID1, userID2 string) (*domain.Match, error)
	GetMatchedByUser(ctx context.Context, userID string) ([]*domain.Match, error)
	// Update writes the full mutable state guarded by the optimistic version
	// column; returns domain.ErrConcurrentUpdate when the row moved.
	Update(ctx context.Context, match *domain.Match) error
	// InteractedUserIDs returns every user the given user already has a match
	// row with, regardless of status. Used as the ranker exclusion set.
	InteractedUserIDs(ctx context.Context, userID string) ([]string, error)
}
