// Package notification is the outbound notification sink. Every call is
// fire-and-forget: failures are logged and never propagated to the operation
// that triggered them.
package notification

import (
	"context"
	"log/slog"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
)

type Notifier interface {
	NotifyMatch(ctx context.Context, match *domain.Match)
	NotifyMessage(ctx context.Context, receiverID, senderID string, message *domain.Message)
	NotifyGroupJoin(ctx context.Context, creatorID, userID, groupID string)
	NotifyEventJoin(ctx context.Context, creatorID, userID, eventID string)
	NotifyEventCancelled(ctx context.Context, participantID, eventID, title string)
}

// LogNotifier logs every notification instead of pushing it. A push provider
// (FCM, OneSignal) would slot in behind the same interface.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyMatch(ctx context.Context, match *domain.Match) {
	n.logger.Info("new match",
		slog.String("match_id", match.ID),
		slog.String("user1", match.UserID1),
		slog.String("user2", match.UserID2),
		slog.Int("compatibility", match.Compatibility),
	)
}

func (n *LogNotifier) NotifyMessage(ctx context.Context, receiverID, senderID string, message *domain.Message) {
	n.logger.Info("new message",
		slog.String("receiver", receiverID),
		slog.String("sender", senderID),
		slog.String("message_id", message.ID),
		slog.String("type", string(message.MessageType)),
	)
}

func (n *LogNotifier) NotifyGroupJoin(ctx context.Context, creatorID, userID, groupID string) {
	n.logger.Info("study group join",
		slog.String("creator", creatorID),
		slog.String("new_member", userID),
		slog.String("group_id", groupID),
	)
}

func (n *LogNotifier) NotifyEventJoin(ctx context.Context, creatorID, userID, eventID string) {
	n.logger.Info("event join",
		slog.String("creator", creatorID),
		slog.String("new_participant", userID),
		slog.String("event_id", eventID),
	)
}

func (n *LogNotifier) NotifyEventCancelled(ctx context.Context, participantID, eventID, title string) {
	n.logger.Info("event cancelled",
		slog.String("participant", participantID),
		slog.String("event_id", eventID),
		slog.String("title", title),
	)
}
