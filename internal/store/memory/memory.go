// Package memory is the local storage driver: all entities live in one
// in-process document. Reads never block each other; mutations run in a
// serialized read-modify-write window.
package memory

import (
	"context"
	"sync"

	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	"github.com/nrattyp233/create-a-date1/internal/store"
	"github.com/nrattyp233/create-a-date1/internal/store/document"
)

type Store struct {
	mu  sync.RWMutex
	doc *document.Document
}

func New() *Store {
	return &Store{doc: document.New()}
}

func (s *Store) GetUser(ctx context.Context, id int64) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return document.NewTx(s.doc).GetUser(ctx, id)
}

func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return document.NewTx(s.doc).ListUsers(ctx)
}

func (s *Store) ListSwipesBySwiper(ctx context.Context, swiperID int64) ([]model.Swipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return document.NewTx(s.doc).ListSwipesBySwiper(ctx, swiperID)
}

func (s *Store) RightSwipeExists(ctx context.Context, swiperID, swipedID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return document.NewTx(s.doc).RightSwipeExists(ctx, swiperID, swipedID)
}

func (s *Store) GetMatch(ctx context.Context, id int64) (model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return document.NewTx(s.doc).GetMatch(ctx, id)
}

func (s *Store) ListMatchesForUser(ctx context.Context, userID int64) ([]model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return document.NewTx(s.doc).ListMatchesForUser(ctx, userID)
}

func (s *Store) ListMessages(ctx context.Context, matchID int64) ([]model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return document.NewTx(s.doc).ListMessages(ctx, matchID)
}

func (s *Store) GetDateIdea(ctx context.Context, id int64) (model.DateIdea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return document.NewTx(s.doc).GetDateIdea(ctx, id)
}

func (s *Store) ListDateIdeas(ctx context.Context) ([]model.DateIdea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return document.NewTx(s.doc).ListDateIdeas(ctx)
}

// Mutate applies fn to a working copy and installs it only on success, so a
// failed mutation leaves the store unchanged.
func (s *Store) Mutate(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.doc.Clone()
	if err := fn(ctx, document.NewTx(working)); err != nil {
		return err
	}
	s.doc = working
	return nil
}

func (s *Store) Close() {}
