package chat

import (
	"context"
	"time"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
)

const (
	// maxPollTimeout is the ceiling on a single long-poll; the HTTP server's
	// write timeout must stay above it.
	maxPollTimeout = 60 * time.Second
	pollInterval   = 2 * time.Second
)

// PollResult is the outcome of one long-poll cycle. TimedOut distinguishes
// an empty result from an error: a quiet conversation is not a failure.
type PollResult struct {
	Messages []*domain.Message `json:"messages"`
	TimedOut bool              `json:"timed_out"`
}

// PollMessages blocks until a message newer than since appears in the match,
// the timeout elapses, or ctx is cancelled. New messages are marked read for
// the caller the same way a plain fetch does.
func (uc *ChatUseCase) PollMessages(ctx context.Context, userID, matchID string, since time.Time, timeout time.Duration) (*PollResult, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(userID) {
		return nil, domain.ErrNotParticipant
	}

	if timeout <= 0 || timeout > maxPollTimeout {
		timeout = maxPollTimeout
	}

	check := func() ([]*domain.Message, error) {
		messages, err := uc.messageRepo.ListSince(ctx, matchID, since)
		if err != nil {
			return nil, err
		}
		if len(messages) > 0 {
			uc.markFetchedRead(ctx, userID, messages)
		}
		return messages, nil
	}

	// First check before sleeping, so an already-arrived message returns
	// immediately.
	if messages, err := check(); err != nil {
		return nil, err
	} else if len(messages) > 0 {
		return &PollResult{Messages: messages}, nil
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return &PollResult{Messages: []*domain.Message{}, TimedOut: true}, nil
		case <-ticker.C:
			messages, err := check()
			if err != nil {
				return nil, err
			}
			if len(messages) > 0 {
				return &PollResult{Messages: messages}, nil
			}
		}
	}
}
