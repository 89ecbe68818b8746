package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/adrianmtzc/campusmatch-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type studyGroupRepository struct {
	db *sqlx.DB
}

func NewStudyGroupRepository(db *sqlx.DB) repository.StudyGroupRepository {
	return &studyGroupRepository{db: db}
}

func (r *studyGroupRepository) Create(ctx context.Context, group *domain.StudyGroup) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO study_groups (
			id, creator_id, name, description, subject, career, semester,
			campus, max_members, current_members, is_private, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, $10, $11)
		RETURNING created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, query,
		group.ID, group.CreatorID, group.Name, group.Description,
		group.Subject, group.Career, group.Semester, group.Campus,
		group.MaxMembers, group.IsPrivate, group.Status,
	).Scan(&group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return err
	}
	group.CurrentMembers = 1

	// The creator is the first member.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO study_group_members (group_id, user_id) VALUES ($1, $2)`,
		group.ID, group.CreatorID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *studyGroupRepository) GetByID(ctx context.Context, id string) (*domain.StudyGroup, error) {
	var group domain.StudyGroup
	err := r.db.GetContext(ctx, &group, `SELECT * FROM study_groups WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *studyGroupRepository) List(ctx context.Context, campus, subject, career string, limit, offset int) ([]*domain.StudyGroup, error) {
	var groups []*domain.StudyGroup
	query := `
		SELECT * FROM study_groups
		WHERE status = 'active'
		  AND ($1 = '' OR campus = $1)
		  AND ($2 = '' OR subject ILIKE '%' || $2 || '%')
		  AND ($3 = '' OR career = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`
	err := r.db.SelectContext(ctx, &groups, query, campus, subject, career, limit, offset)
	return groups, err
}

func (r *studyGroupRepository) ListByMember(ctx context.Context, userID string) ([]*domain.StudyGroup, error) {
	var groups []*domain.StudyGroup
	query := `
		SELECT g.* FROM study_groups g
		JOIN study_group_members m ON m.group_id = g.id
		WHERE m.user_id = $1
		ORDER BY g.created_at DESC
	`
	err := r.db.SelectContext(ctx, &groups, query, userID)
	return groups, err
}

func (r *studyGroupRepository) Update(ctx context.Context, group *domain.StudyGroup) error {
	query := `
		UPDATE study_groups SET
			name = $1, description = $2, subject = $3, career = $4,
			semester = $5, max_members = $6, is_private = $7, status = $8,
			updated_at = NOW()
		WHERE id = $9
	`
	result, err := r.db.ExecContext(ctx, query,
		group.Name, group.Description, group.Subject, group.Career,
		group.Semester, group.MaxMembers, group.IsPrivate, group.Status,
		group.ID,
	)
	if err != nil {
		return err
	}
	return requireRows(result, domain.ErrGroupNotFound)
}

func (r *studyGroupRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM study_groups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRows(result, domain.ErrGroupNotFound)
}

// AddMember mirrors eventRepository.AddParticipant: row lock, capacity check,
// membership insert and counter bump in one transaction.
func (r *studyGroupRepository) AddMember(ctx context.Context, groupID, userID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var maxMembers, current int
	err = tx.QueryRowContext(ctx, `
		SELECT max_members, current_members
		FROM study_groups WHERE id = $1
		FOR UPDATE
	`, groupID).Scan(&maxMembers, &current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrGroupNotFound
		}
		return err
	}
	if current >= maxMembers {
		return domain.ErrGroupFull
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO study_group_members (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`, groupID, userID)
	if err != nil {
		return err
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if inserted == 0 {
		return domain.ErrAlreadyMember
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE study_groups
		SET current_members = current_members + 1, updated_at = NOW()
		WHERE id = $1
	`, groupID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *studyGroupRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM study_group_members WHERE group_id = $1 AND user_id = $2`,
		groupID, userID)
	if err != nil {
		return err
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if removed == 0 {
		return domain.ErrNotMember
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE study_groups
		SET current_members = GREATEST(current_members - 1, 1), updated_at = NOW()
		WHERE id = $1
	`, groupID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *studyGroupRepository) Members(ctx context.Context, groupID string) ([]*domain.GroupMember, error) {
	var members []*domain.GroupMember
	query := `
		SELECT group_id, user_id, joined_at
		FROM study_group_members
		WHERE group_id = $1
		ORDER BY joined_at ASC
	`
	err := r.db.SelectContext(ctx, &members, query, groupID)
	return members, err
}

func (r *studyGroupRepository) PopularSubjects(ctx context.Context, limit int) ([]string, error) {
	var subjects []string
	query := `
		SELECT subject FROM study_groups
		WHERE status = 'active'
		GROUP BY subject
		ORDER BY COUNT(*) DESC
		LIMIT $1
	`
	err := r.db.SelectContext(ctx, &subjects, query, limit)
	return subjects, err
}
