package repository

import (
	"context"
	"time"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	GetByID(ctx context.Context, id string) (*domain.Message, error)
	// ListByMatch returns the most recent limit messages ordered oldest to
	// newest, for initial conversation render.
	ListByMatch(ctx context.Context, matchID string, limit, offset int) ([]*domain.Message, error)
	// ListSince returns messages strictly newer than since, ascending by
	// creation time.
	ListSince(ctx context.Context, matchID string, since time.Time) ([]*domain.Message, error)
	MarkDelivered(ctx context.Context, id string) error
	// MarkRead flips is_read only on rows where receiverID is the receiver
	// and the flag is still unset; foreign ids are silently skipped. Returns
	// the number of rows actually updated.
	MarkRead(ctx context.Context, ids []string, receiverID string) (int64, error)
	UpdateMetadata(ctx context.Context, id string, metadata domain.Metadata) error
	LastByMatch(ctx context.Context, matchID string) (*domain.Message, error)
	CountUnreadByMatch(ctx context.Context, receiverID string) (map[string]int, error)
}
