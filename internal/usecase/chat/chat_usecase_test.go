package chat

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMessageRepo is an in-memory MessageRepository. MarkRead mirrors the SQL
// semantics: only unread rows addressed to the receiver count.
type fakeMessageRepo struct {
	mu       sync.Mutex
	messages map[string]*domain.Message
	// set to simulate failures
	markDeliveredErr error
	markReadErr      error
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[string]*domain.Message)}
}

func (f *fakeMessageRepo) Create(_ context.Context, m *domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *m
	f.messages[m.ID] = &copied
	return nil
}

func (f *fakeMessageRepo) GetByID(_ context.Context, id string) (*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.messages[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMessageRepo) byMatch(matchID string) []*domain.Message {
	var out []*domain.Message
	for _, m := range f.messages {
		if m.MatchID == matchID {
			copied := *m
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (f *fakeMessageRepo) ListByMatch(_ context.Context, matchID string, limit, offset int) ([]*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.byMatch(matchID)
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (f *fakeMessageRepo) ListSince(_ context.Context, matchID string, since time.Time) ([]*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Message
	for _, m := range f.byMatch(matchID) {
		if m.CreatedAt.After(since) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) MarkDelivered(_ context.Context, id string) error {
	if f.markDeliveredErr != nil {
		return f.markDeliveredErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.messages[id]; ok && !m.IsDelivered {
		now := time.Now()
		m.IsDelivered = true
		m.DeliveredAt = &now
	}
	return nil
}

func (f *fakeMessageRepo) MarkRead(_ context.Context, ids []string, receiverID string) (int64, error) {
	if f.markReadErr != nil {
		return 0, f.markReadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var updated int64
	now := time.Now()
	for _, id := range ids {
		m, ok := f.messages[id]
		if !ok || m.ReceiverID != receiverID || m.IsRead {
			continue
		}
		m.IsRead = true
		m.ReadAt = &now
		updated++
	}
	return updated, nil
}

func (f *fakeMessageRepo) UpdateMetadata(_ context.Context, id string, metadata domain.Metadata) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.messages[id]
	if !ok {
		return domain.ErrMessageNotFound
	}
	m.Metadata = metadata
	return nil
}

func (f *fakeMessageRepo) LastByMatch(_ context.Context, matchID string) (*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.byMatch(matchID)
	if len(all) == 0 {
		return nil, domain.ErrMessageNotFound
	}
	return all[len(all)-1], nil
}

func (f *fakeMessageRepo) CountUnreadByMatch(_ context.Context, receiverID string) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int)
	for _, m := range f.messages {
		if m.ReceiverID == receiverID && !m.IsRead {
			counts[m.MatchID]++
		}
	}
	return counts, nil
}

// fakeMatchRepo serves the read-side the chat flow needs.
type fakeMatchRepo struct {
	matches map[string]*domain.Match
}

func (f *fakeMatchRepo) Create(context.Context, *domain.Match) error { return nil }

func (f *fakeMatchRepo) GetByID(_ context.Context, id string) (*domain.Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	return m, nil
}

func (f *fakeMatchRepo) GetByUsers(context.Context, string, string) (*domain.Match, error) {
	return nil, domain.ErrMatchNotFound
}

func (f *fakeMatchRepo) GetMatchedByUser(_ context.Context, userID string) ([]*domain.Match, error) {
	var out []*domain.Match
	for _, m := range f.matches {
		if m.HasUser(userID) && m.IsMatched() {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) Update(context.Context, *domain.Match) error { return nil }

func (f *fakeMatchRepo) InteractedUserIDs(context.Context, string) ([]string, error) {
	return nil, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []*domain.Message
}

func (f *fakeNotifier) NotifyMatch(context.Context, *domain.Match) {}
func (f *fakeNotifier) NotifyMessage(_ context.Context, _, _ string, m *domain.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, m)
}
func (f *fakeNotifier) NotifyGroupJoin(context.Context, string, string, string)      {}
func (f *fakeNotifier) NotifyEventJoin(context.Context, string, string, string)      {}
func (f *fakeNotifier) NotifyEventCancelled(context.Context, string, string, string) {}

func matchedMatch(id, a, b string) *domain.Match {
	now := time.Now()
	return &domain.Match{
		ID:        id,
		UserID1:   a,
		UserID2:   b,
		Status:    domain.MatchStatusMatched,
		MatchedAt: &now,
	}
}

func newTestChat(matches ...*domain.Match) (*ChatUseCase, *fakeMessageRepo) {
	matchRepo := &fakeMatchRepo{matches: make(map[string]*domain.Match)}
	for _, m := range matches {
		matchRepo.matches[m.ID] = m
	}
	messageRepo := newFakeMessageRepo()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewChatUseCase(messageRepo, matchRepo, &fakeNotifier{}, logger), messageRepo
}

func TestSendDerivesReceiver(t *testing.T) {
	uc, _ := newTestChat(matchedMatch("m1", "alice", "bob"))

	result, err := uc.Send(context.Background(), "alice", "m1", &SendRequest{Content: "hola"})
	require.NoError(t, err)

	assert.Equal(t, "bob", result.Message.ReceiverID)
	assert.Equal(t, domain.MessageTypeText, result.Message.MessageType)
	assert.True(t, result.Message.IsDelivered)
	assert.Empty(t, result.Warning)
}

func TestSendRejectsNonParticipant(t *testing.T) {
	uc, _ := newTestChat(matchedMatch("m1", "alice", "bob"))

	_, err := uc.Send(context.Background(), "mallory", "m1", &SendRequest{Content: "hola"})
	assert.ErrorIs(t, err, domain.ErrNotParticipant)
}

func TestSendRejectsInactiveMatch(t *testing.T) {
	m := matchedMatch("m1", "alice", "bob")
	m.Status = domain.MatchStatusUnmatched
	uc, _ := newTestChat(m)

	_, err := uc.Send(context.Background(), "alice", "m1", &SendRequest{Content: "hola"})
	assert.ErrorIs(t, err, domain.ErrMatchNotActive)
}

func TestSendRejectsBlankContent(t *testing.T) {
	uc, _ := newTestChat(matchedMatch("m1", "alice", "bob"))

	_, err := uc.Send(context.Background(), "alice", "m1", &SendRequest{Content: "   "})
	assert.ErrorIs(t, err, domain.ErrEmptyMessageContent)
}

func TestSendDeliveryFailureIsSoft(t *testing.T) {
	uc, messageRepo := newTestChat(matchedMatch("m1", "alice", "bob"))
	messageRepo.markDeliveredErr = errors.New("delivery table locked")

	result, err := uc.Send(context.Background(), "alice", "m1", &SendRequest{Content: "hola"})
	require.NoError(t, err)

	// Message persisted despite the delivery-stamp failure.
	assert.NotEmpty(t, result.Warning)
	assert.False(t, result.Message.IsDelivered)
	stored, err := messageRepo.GetByID(context.Background(), result.Message.ID)
	require.NoError(t, err)
	assert.Equal(t, "hola", stored.Content)
}

func TestGetMessagesMarksCallerUnreadRead(t *testing.T) {
	uc, messageRepo := newTestChat(matchedMatch("m1", "alice", "bob"))

	sent, err := uc.Send(context.Background(), "alice", "m1", &SendRequest{Content: "hola bob"})
	require.NoError(t, err)

	messages, err := uc.GetMessages(context.Background(), "bob", "m1", time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.True(t, messages[0].IsRead)

	stored, err := messageRepo.GetByID(context.Background(), sent.Message.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)

	// The sender fetching does not touch read state of their own message.
	messages, err = uc.GetMessages(context.Background(), "alice", "m1", time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
}

func TestGetMessagesSince(t *testing.T) {
	uc, _ := newTestChat(matchedMatch("m1", "alice", "bob"))

	first, err := uc.Send(context.Background(), "alice", "m1", &SendRequest{Content: "uno"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = uc.Send(context.Background(), "bob", "m1", &SendRequest{Content: "dos"})
	require.NoError(t, err)

	messages, err := uc.GetMessages(context.Background(), "alice", "m1", first.Message.CreatedAt, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "dos", messages[0].Content)
}

func TestMarkReadSkipsForeignMessages(t *testing.T) {
	uc, _ := newTestChat(matchedMatch("m1", "alice", "bob"))

	sent, err := uc.Send(context.Background(), "alice", "m1", &SendRequest{Content: "hola"})
	require.NoError(t, err)

	// The sender cannot mark their own outgoing message read.
	updated, err := uc.MarkRead(context.Background(), "alice", []string{sent.Message.ID})
	require.NoError(t, err)
	assert.Zero(t, updated)

	updated, err = uc.MarkRead(context.Background(), "bob", []string{sent.Message.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, updated)

	// At-least-once: a repeat is a no-op, not an error.
	updated, err = uc.MarkRead(context.Background(), "bob", []string{sent.Message.ID})
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestConversationsAndUnreadCount(t *testing.T) {
	uc, _ := newTestChat(
		matchedMatch("m1", "alice", "bob"),
		matchedMatch("m2", "alice", "carol"),
	)

	_, err := uc.Send(context.Background(), "bob", "m1", &SendRequest{Content: "uno"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = uc.Send(context.Background(), "bob", "m1", &SendRequest{Content: "dos"})
	require.NoError(t, err)

	conversations, err := uc.GetConversations(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	byMatch := make(map[string]Conversation)
	for _, c := range conversations {
		byMatch[c.Match.ID] = c
	}
	assert.Equal(t, 2, byMatch["m1"].UnreadCount)
	assert.Equal(t, "dos", byMatch["m1"].LastMessage.Content)
	assert.Zero(t, byMatch["m2"].UnreadCount)
	assert.Nil(t, byMatch["m2"].LastMessage)

	total, err := uc.UnreadCount(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestStudyInvitationFlow(t *testing.T) {
	uc, messageRepo := newTestChat(matchedMatch("m1", "alice", "bob"))

	scheduled := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	invitation, err := uc.SendStudyInvitation(context.Background(), "alice", "m1", &StudyInvitationRequest{
		Subject:       "Cálculo Integral",
		Description:   "Repaso antes del parcial",
		ScheduledTime: scheduled,
		Location:      "Biblioteca",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.MessageTypeStudyInvitation, invitation.MessageType)
	assert.Equal(t, domain.InvitationPending, invitation.InvitationStatus())
	assert.Equal(t, "bob", invitation.ReceiverID)

	response, err := uc.RespondStudyInvitation(context.Background(), "bob", invitation.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "alice", response.ReceiverID)

	stored, err := messageRepo.GetByID(context.Background(), invitation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationAccepted, stored.InvitationStatus())
	// The proposal fields survive the status update.
	assert.Equal(t, "Cálculo Integral", stored.Metadata["subject"])
}

func TestRespondStudyInvitationGuards(t *testing.T) {
	uc, _ := newTestChat(matchedMatch("m1", "alice", "bob"))

	plain, err := uc.Send(context.Background(), "alice", "m1", &SendRequest{Content: "hola"})
	require.NoError(t, err)

	_, err = uc.RespondStudyInvitation(context.Background(), "bob", plain.Message.ID, true)
	assert.ErrorIs(t, err, domain.ErrNotInvitation)

	invitation, err := uc.SendStudyInvitation(context.Background(), "alice", "m1", &StudyInvitationRequest{
		Subject:       "Redes",
		ScheduledTime: time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)

	// Only the receiver may respond; the sender cannot accept their own.
	_, err = uc.RespondStudyInvitation(context.Background(), "alice", invitation.ID, true)
	assert.ErrorIs(t, err, domain.ErrNotReceiver)
}
