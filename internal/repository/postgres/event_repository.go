package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/adrianmtzc/campusmatch-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const eventColumns = `
	id, creator_id, title, description, event_type, location, campus,
	start_date, end_date, max_participants, current_participants, is_public,
	allowed_careers, min_semester, tags, image_url, status, created_at, updated_at
`

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (
			id, creator_id, title, description, event_type, location, campus,
			start_date, end_date, max_participants, is_public,
			allowed_careers, min_semester, tags, image_url, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		event.ID, event.CreatorID, event.Title, event.Description,
		event.EventType, event.Location, event.Campus, event.StartDate,
		event.EndDate, event.MaxParticipants, event.IsPublic,
		pq.Array(event.AllowedCareers), event.MinSemester,
		pq.Array(event.Tags), event.ImageURL, event.Status,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.db.QueryRowxContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) List(ctx context.Context, campus string, eventType domain.EventType, limit, offset int) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE status = 'active'
		  AND ($1 = '' OR campus = $1)
		  AND ($2 = '' OR event_type = $2)
		ORDER BY start_date ASC
		LIMIT $3 OFFSET $4
	`
	return r.listEvents(ctx, query, campus, string(eventType), limit, offset)
}

func (r *eventRepository) ListByParticipant(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		WHERE e.creator_id = $1
		   OR EXISTS (
			SELECT 1 FROM event_participants ep
			WHERE ep.event_id = e.id AND ep.user_id = $1
		   )
		ORDER BY e.start_date ASC
	`
	return r.listEvents(ctx, query, userID)
}

func (r *eventRepository) listEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events SET
			title = $1, description = $2, event_type = $3, location = $4,
			start_date = $5, end_date = $6, max_participants = $7,
			is_public = $8, allowed_careers = $9, min_semester = $10,
			tags = $11, image_url = $12, updated_at = NOW()
		WHERE id = $13
	`
	result, err := r.db.ExecContext(ctx, query,
		event.Title, event.Description, event.EventType, event.Location,
		event.StartDate, event.EndDate, event.MaxParticipants, event.IsPublic,
		pq.Array(event.AllowedCareers), event.MinSemester,
		pq.Array(event.Tags), event.ImageURL, event.ID,
	)
	if err != nil {
		return err
	}
	return requireRows(result, domain.ErrEventNotFound)
}

func (r *eventRepository) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE events SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return err
	}
	return requireRows(result, domain.ErrEventNotFound)
}

// AddParticipant locks the event row, checks capacity, then inserts the
// membership row and bumps the counter inside the same transaction so the
// counter can never drift from the membership set.
func (r *eventRepository) AddParticipant(ctx context.Context, eventID, userID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var maxParticipants *int
	var current int
	err = tx.QueryRowContext(ctx, `
		SELECT max_participants, current_participants
		FROM events WHERE id = $1
		FOR UPDATE
	`, eventID).Scan(&maxParticipants, &current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrEventNotFound
		}
		return err
	}
	if maxParticipants != nil && current >= *maxParticipants {
		return domain.ErrEventFull
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO event_participants (id, event_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`, uuid.NewString(), eventID, userID)
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
		UPDATE events
		SET current_participants = current_participants + 1, updated_at = NOW()
		WHERE id = $1
	`, eventID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *eventRepository) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2`,
		eventID, userID)
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
		UPDATE events
		SET current_participants = GREATEST(current_participants - 1, 0),
		    updated_at = NOW()
		WHERE id = $1
	`, eventID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *eventRepository) Participants(ctx context.Context, eventID string) ([]string, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids,
		`SELECT user_id FROM event_participants WHERE event_id = $1 ORDER BY joined_at ASC`,
		eventID)
	return ids, err
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID, &e.CreatorID, &e.Title, &e.Description, &e.EventType,
		&e.Location, &e.Campus, &e.StartDate, &e.EndDate,
		&e.MaxParticipants, &e.CurrentParticipants, &e.IsPublic,
		pq.Array(&e.AllowedCareers), &e.MinSemester, pq.Array(&e.Tags),
		&e.ImageURL, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
