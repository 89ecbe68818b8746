package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/adrianmtzc/campusmatch-backend/internal/infrastructure/notification"
	"github.com/adrianmtzc/campusmatch-backend/internal/repository"
	"github.com/google/uuid"
)

// pageSize is the page form of GetMessages: the most recent 50, oldest first.
const pageSize = 50

type ChatUseCase struct {
	messageRepo repository.MessageRepository
	matchRepo   repository.MatchRepository
	notifier    notification.Notifier
	logger      *slog.Logger
}

func NewChatUseCase(
	messageRepo repository.MessageRepository,
	matchRepo repository.MatchRepository,
	notifier notification.Notifier,
	logger *slog.Logger,
) *ChatUseCase {
	return &ChatUseCase{
		messageRepo: messageRepo,
		matchRepo:   matchRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// SendRequest represents an outgoing message.
type SendRequest struct {
	Content     string          `json:"content" binding:"required,max=2000"`
	MessageType string          `json:"message_type" binding:"omitempty,oneof=text image emoji"`
	Metadata    domain.Metadata `json:"metadata"`
}

// SendResult carries the persisted message plus a non-fatal warning when a
// post-persist step (delivery stamping) failed.
type SendResult struct {
	Message *domain.Message `json:"message"`
	Warning string          `json:"warning,omitempty"`
}

// Send persists a message in an active match. The receiver is derived, never
// client-supplied. Delivery stamping is best-effort: its failure downgrades
// to a warning because the message itself is already durable.
func (uc *ChatUseCase) Send(ctx context.Context, senderID, matchID string, req *SendRequest) (*SendResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, domain.ErrEmptyMessageContent
	}

	msgType := domain.MessageType(req.MessageType)
	if msgType == "" {
		msgType = domain.MessageTypeText
	}

	message, err := uc.persist(ctx, senderID, matchID, req.Content, msgType, req.Metadata)
	if err != nil {
		return nil, err
	}

	result := &SendResult{Message: message}
	if err := uc.messageRepo.MarkDelivered(ctx, message.ID); err != nil {
		uc.logger.Warn("failed to mark message delivered",
			slog.String("message_id", message.ID), slog.String("error", err.Error()))
		result.Warning = "message saved but delivery status could not be updated"
	} else {
		message.IsDelivered = true
	}

	go uc.notifier.NotifyMessage(context.WithoutCancel(ctx), message.ReceiverID, senderID, message)
	return result, nil
}

// persist validates the match and sender and inserts the row.
func (uc *ChatUseCase) persist(ctx context.Context, senderID, matchID, content string, msgType domain.MessageType, metadata domain.Metadata) (*domain.Message, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	receiverID, ok := match.OtherUser(senderID)
	if !ok {
		return nil, domain.ErrNotParticipant
	}
	if !match.IsMatched() {
		return nil, domain.ErrMatchNotActive
	}

	now := time.Now()
	message := &domain.Message{
		ID:          uuid.NewString(),
		MatchID:     matchID,
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Content:     content,
		MessageType: msgType,
		Metadata:    metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// GetMessages returns either the page of most recent messages (since zero) or
// everything strictly newer than since, both oldest first. Fetching marks the
// caller's returned unread messages read; that side effect failing is logged,
// not returned, since the caller did receive the content.
func (uc *ChatUseCase) GetMessages(ctx context.Context, userID, matchID string, since time.Time, offset int) ([]*domain.Message, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(userID) {
		return nil, domain.ErrNotParticipant
	}

	var messages []*domain.Message
	if since.IsZero() {
		messages, err = uc.messageRepo.ListByMatch(ctx, matchID, pageSize, offset)
	} else {
		messages, err = uc.messageRepo.ListSince(ctx, matchID, since)
	}
	if err != nil {
		return nil, err
	}

	uc.markFetchedRead(ctx, userID, messages)
	return messages, nil
}

// markFetchedRead flips the unread messages addressed to the reader among the
// just-fetched batch. At-least-once: a repeat on already-read rows is a no-op
// in the repository.
func (uc *ChatUseCase) markFetchedRead(ctx context.Context, readerID string, messages []*domain.Message) {
	var unread []string
	for _, m := range messages {
		if m.ReceiverID == readerID && !m.IsRead {
			unread = append(unread, m.ID)
		}
	}
	if len(unread) == 0 {
		return
	}
	if _, err := uc.messageRepo.MarkRead(ctx, unread, readerID); err != nil {
		uc.logger.Warn("failed to mark fetched messages read",
			slog.String("reader_id", readerID),
			slog.Int("count", len(unread)),
			slog.String("error", err.Error()))
		return
	}
	now := time.Now()
	for _, m := range messages {
		if m.ReceiverID == readerID && !m.IsRead {
			m.IsRead = true
			m.ReadAt = &now
		}
	}
}

// MarkRead marks the given messages read on behalf of their receiver and
// returns how many rows actually changed. IDs addressed to someone else are
// skipped silently.
func (uc *ChatUseCase) MarkRead(ctx context.Context, userID string, messageIDs []string) (int64, error) {
	if len(messageIDs) == 0 {
		return 0, nil
	}
	return uc.messageRepo.MarkRead(ctx, messageIDs, userID)
}

// Conversation summarizes one matched pair for the conversation list.
type Conversation struct {
	Match       *domain.Match   `json:"match"`
	LastMessage *domain.Message `json:"last_message"`
	UnreadCount int             `json:"unread_count"`
}

// GetConversations lists the user's active matches with last message and
// unread count per match.
func (uc *ChatUseCase) GetConversations(ctx context.Context, userID string) ([]Conversation, error) {
	matches, err := uc.matchRepo.GetMatchedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	unread, err := uc.messageRepo.CountUnreadByMatch(ctx, userID)
	if err != nil {
		return nil, err
	}

	conversations := make([]Conversation, 0, len(matches))
	for _, m := range matches {
		last, err := uc.messageRepo.LastByMatch(ctx, m.ID)
		if err != nil && !errors.Is(err, domain.ErrMessageNotFound) {
			return nil, err
		}
		conversations = append(conversations, Conversation{
			Match:       m,
			LastMessage: last,
			UnreadCount: unread[m.ID],
		})
	}
	return conversations, nil
}

// UnreadCount returns the user's total unread messages across matches.
func (uc *ChatUseCase) UnreadCount(ctx context.Context, userID string) (int, error) {
	unread, err := uc.messageRepo.CountUnreadByMatch(ctx, userID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, n := range unread {
		total += n
	}
	return total, nil
}

// StudyInvitationRequest represents a study-session proposal inside a chat.
type StudyInvitationRequest struct {
	Subject       string `json:"subject" binding:"required,min=2,max=200"`
	Description   string `json:"description" binding:"omitempty,max=1000"`
	ScheduledTime string `json:"scheduled_time" binding:"required"`
	Location      string `json:"location" binding:"omitempty,max=200"`
}

// SendStudyInvitation sends a study_invitation message whose metadata carries
// the proposal and a pending status.
func (uc *ChatUseCase) SendStudyInvitation(ctx context.Context, senderID, matchID string, req *StudyInvitationRequest) (*domain.Message, error) {
	scheduled, err := time.Parse(time.RFC3339, req.ScheduledTime)
	if err != nil {
		return nil, fmt.Errorf("%w: scheduled_time must be RFC3339", domain.ErrInvalidInput)
	}

	metadata := domain.Metadata{
		"subject":        req.Subject,
		"description":    req.Description,
		"scheduled_time": scheduled.Format(time.RFC3339),
		"location":       req.Location,
		"status":         string(domain.InvitationPending),
	}
	content := fmt.Sprintf("Invitación de estudio: %s", req.Subject)

	message, err := uc.persist(ctx, senderID, matchID, content, domain.MessageTypeStudyInvitation, metadata)
	if err != nil {
		return nil, err
	}

	go uc.notifier.NotifyMessage(context.WithoutCancel(ctx), message.ReceiverID, senderID, message)
	return message, nil
}

// RespondStudyInvitation lets the invitation's receiver accept or decline.
// Two steps, each durable on its own: the status update lands first, then a
// response message; a failure between them leaves the status authoritative.
func (uc *ChatUseCase) RespondStudyInvitation(ctx context.Context, userID, messageID string, accept bool) (*domain.Message, error) {
	invitation, err := uc.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if !invitation.IsStudyInvitation() {
		return nil, domain.ErrNotInvitation
	}
	if invitation.ReceiverID != userID {
		return nil, domain.ErrNotReceiver
	}

	status := domain.InvitationDeclined
	reply := "Invitación de estudio rechazada"
	if accept {
		status = domain.InvitationAccepted
		reply = "Invitación de estudio aceptada"
	}

	metadata := domain.Metadata{}
	for k, v := range invitation.Metadata {
		metadata[k] = v
	}
	metadata["status"] = string(status)
	metadata["responded_at"] = time.Now().Format(time.RFC3339)
	if err := uc.messageRepo.UpdateMetadata(ctx, invitation.ID, metadata); err != nil {
		return nil, err
	}

	response, err := uc.persist(ctx, userID, invitation.MatchID, reply, domain.MessageTypeText, domain.Metadata{
		"invitation_id": invitation.ID,
		"response":      string(status),
	})
	if err != nil {
		return nil, fmt.Errorf("invitation %s but response message failed: %w", status, err)
	}

	go uc.notifier.NotifyMessage(context.WithoutCancel(ctx), response.ReceiverID, userID, response)
	return response, nil
}
