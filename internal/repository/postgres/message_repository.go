package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/adrianmtzc/campusmatch-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (
			id, match_id, sender_id, receiver_id, content, message_type,
			metadata, is_delivered, is_read
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		message.ID, message.MatchID, message.SenderID, message.ReceiverID,
		message.Content, message.MessageType, message.Metadata,
		message.IsDelivered, message.IsRead,
	).Scan(&message.CreatedAt, &message.UpdatedAt)
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	var message domain.Message
	err := r.db.GetContext(ctx, &message, `SELECT * FROM messages WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) ListByMatch(ctx context.Context, matchID string, limit, offset int) ([]*domain.Message, error) {
	var messages []*domain.Message
	query := `
		SELECT * FROM messages
		WHERE match_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &messages, query, matchID, limit, offset)
	if err != nil {
		return nil, err
	}
	// Most recent page, but rendered oldest to newest.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *messageRepository) ListSince(ctx context.Context, matchID string, since time.Time) ([]*domain.Message, error) {
	var messages []*domain.Message
	query := `
		SELECT * FROM messages
		WHERE match_id = $1 AND created_at > $2
		ORDER BY created_at ASC
	`
	err := r.db.SelectContext(ctx, &messages, query, matchID, since)
	return messages, err
}

func (r *messageRepository) MarkDelivered(ctx context.Context, id string) error {
	query := `
		UPDATE messages
		SET is_delivered = TRUE, delivered_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_delivered = FALSE
	`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// MarkRead only touches rows owned by the receiver that are still unread, so
// re-marking and foreign ids are both harmless no-ops.
func (r *messageRepository) MarkRead(ctx context.Context, ids []string, receiverID string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `
		UPDATE messages
		SET is_read = TRUE, read_at = NOW(), updated_at = NOW()
		WHERE id = ANY($1) AND receiver_id = $2 AND is_read = FALSE
	`
	result, err := r.db.ExecContext(ctx, query, pq.Array(ids), receiverID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *messageRepository) UpdateMetadata(ctx context.Context, id string, metadata domain.Metadata) error {
	query := `UPDATE messages SET metadata = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, metadata, id)
	if err != nil {
		return err
	}
	return requireRows(result, domain.ErrMessageNotFound)
}

func (r *messageRepository) LastByMatch(ctx context.Context, matchID string) (*domain.Message, error) {
	var message domain.Message
	query := `
		SELECT * FROM messages
		WHERE match_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &message, query, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) CountUnreadByMatch(ctx context.Context, receiverID string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT match_id, COUNT(*)
		FROM messages
		WHERE receiver_id = $1 AND is_read = FALSE
		GROUP BY match_id
	`, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var matchID string
		var count int
		if err := rows.Scan(&matchID, &count); err != nil {
			return nil, err
		}
		counts[matchID] = count
	}
	return counts, rows.Err()
}
