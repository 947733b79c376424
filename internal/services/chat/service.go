// Package chat serves match conversations: listing a user's matches with
// their message history, appending messages, and clearing unread markers.
package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	"github.com/nrattyp233/create-a-date1/internal/store"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("not a participant of this match")
)

// MatchView is a match as one participant sees it: the other participant
// embedded, the unread flag for the viewer's side only, and the full
// message history.
type MatchView struct {
	ID          int64
	User        model.User
	LastMessage string
	Timestamp   time.Time
	Unread      bool
	ChatHistory []model.Message
}

type Service struct {
	store store.Store
	now   func() time.Time
}

func NewService(st store.Store) *Service {
	return &Service{
		store: st,
		now:   time.Now,
	}
}

// ListMatches returns the viewer's matches newest-activity first. A match
// whose other participant no longer exists is skipped rather than failing
// the whole listing.
func (s *Service) ListMatches(ctx context.Context, userID int64) ([]MatchView, error) {
	if userID < 0 {
		return nil, ErrValidation
	}
	if s.store == nil {
		return nil, fmt.Errorf("chat store is not configured")
	}

	matches, err := s.store.ListMatchesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		other, err := s.store.GetUser(ctx, m.Other(userID))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}

		history, err := s.store.ListMessages(ctx, m.ID)
		if err != nil {
			return nil, err
		}

		ts := m.MatchedAt
		if !m.LastMessageAt.IsZero() {
			ts = m.LastMessageAt
		}

		views = append(views, MatchView{
			ID:          m.ID,
			User:        other,
			LastMessage: m.LastMessage,
			Timestamp:   ts,
			Unread:      m.UnreadFor(userID),
			ChatHistory: history,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		if !views[i].Timestamp.Equal(views[j].Timestamp) {
			return views[i].Timestamp.After(views[j].Timestamp)
		}
		return views[i].ID > views[j].ID
	})

	return views, nil
}

// SendMessage appends text to the match on behalf of senderID and flips the
// unread marker for the other side.
func (s *Service) SendMessage(ctx context.Context, matchID, senderID int64, text string) (model.Message, error) {
	if matchID <= 0 || senderID < 0 {
		return model.Message{}, ErrValidation
	}
	if strings.TrimSpace(text) == "" {
		return model.Message{}, ErrValidation
	}
	if s.store == nil {
		return model.Message{}, fmt.Errorf("chat store is not configured")
	}

	now := s.now().UTC()

	var msg model.Message
	if err := s.store.Mutate(ctx, func(txCtx context.Context, tx store.Tx) error {
		m, err := tx.GetMatch(txCtx, matchID)
		if err != nil {
			return err
		}
		if !m.HasParticipant(senderID) {
			return ErrUnauthorized
		}

		msg, err = tx.AppendMessage(txCtx, matchID, senderID, text, now)
		return err
	}); err != nil {
		return model.Message{}, err
	}

	return msg, nil
}

// MarkRead clears the unread marker for readerID only; the other
// participant's marker is untouched.
func (s *Service) MarkRead(ctx context.Context, matchID, readerID int64) error {
	if matchID <= 0 || readerID < 0 {
		return ErrValidation
	}
	if s.store == nil {
		return fmt.Errorf("chat store is not configured")
	}

	return s.store.Mutate(ctx, func(txCtx context.Context, tx store.Tx) error {
		m, err := tx.GetMatch(txCtx, matchID)
		if err != nil {
			return err
		}
		if !m.HasParticipant(readerID) {
			return ErrUnauthorized
		}
		return tx.MarkRead(txCtx, matchID, readerID)
	})
}
