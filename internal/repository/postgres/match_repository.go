package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/adrianmtzc/campusmatch-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	// The (user_id1, user_id2) unique constraint assumes canonical order.
	match.UserID1, match.UserID2 = domain.CanonicalPair(match.UserID1, match.UserID2)

	query := `
		INSERT INTO matches (
			id, user_id1, user_id2, status, compatibility,
			user1_action, user2_action, matched_at, last_interaction, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		match.ID, match.UserID1, match.UserID2, match.Status,
		match.Compatibility, match.User1Action, match.User2Action,
		match.MatchedAt, match.LastInteraction,
	).Scan(&match.CreatedAt, &match.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMatchAlreadyExists
		}
		return err
	}
	match.Version = 1
	return nil
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	var match domain.Match
	err := r.db.GetContext(ctx, &match, `SELECT * FROM matches WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetByUsers(ctx context.Context, userID1, userID2 string) (*domain.Match, error) {
	userID1, userID2 = domain.CanonicalPair(userID1, userID2)

	var match domain.Match
	query := `SELECT * FROM matches WHERE user_id1 = $1 AND user_id2 = $2`
	err := r.db.GetContext(ctx, &match, query, userID1, userID2)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetMatchedByUser(ctx context.Context, userID string) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT * FROM matches
		WHERE (user_id1 = $1 OR user_id2 = $1) AND status = 'matched'
		ORDER BY matched_at DESC
	`
	err := r.db.SelectContext(ctx, &matches, query, userID)
	return matches, err
}

// Update writes the action slots and derived status under an optimistic
// version check, so two concurrent opposite actions can never overwrite each
// other; the loser reloads and retries.
func (r *matchRepository) Update(ctx context.Context, match *domain.Match) error {
	query := `
		UPDATE matches SET
			status = $1, user1_action = $2, user2_action = $3,
			matched_at = $4, last_interaction = $5,
			version = version + 1, updated_at = NOW()
		WHERE id = $6 AND version = $7
	`
	result, err := r.db.ExecContext(ctx, query,
		match.Status, match.User1Action, match.User2Action,
		match.MatchedAt, match.LastInteraction,
		match.ID, match.Version,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Either the row is gone or someone raced us; let the caller decide.
		if _, err := r.GetByID(ctx, match.ID); err != nil {
			return err
		}
		return domain.ErrConcurrentUpdate
	}
	match.Version++
	return nil
}

func (r *matchRepository) InteractedUserIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	query := `
		SELECT CASE WHEN user_id1 = $1 THEN user_id2 ELSE user_id1 END
		FROM matches
		WHERE user_id1 = $1 OR user_id2 = $1
	`
	err := r.db.SelectContext(ctx, &ids, query, userID)
	return ids, err
}
