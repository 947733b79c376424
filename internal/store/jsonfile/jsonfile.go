// Package jsonfile is the file-backed storage driver: one JSON document with
// named collections, re-read on every access and rewritten atomically on every
// mutation. The process is the single writer; mutations are serialized.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	"github.com/nrattyp233/create-a-date1/internal/store"
	"github.com/nrattyp233/create-a-date1/internal/store/document"
)

type Store struct {
	mu   sync.RWMutex
	path string
}

func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("jsonfile store path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create jsonfile store dir: %w", err)
		}
	}
	return &Store{path: path}, nil
}

func (s *Store) load() (*document.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return document.New(), nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	doc := document.New()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("unmarshal store document: %w", err)
	}
	return doc, nil
}

// save writes to a temp file and renames over the document so readers never
// observe a partial write.
func (s *Store) save(doc *document.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store document: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write store temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

func (s *Store) read(fn func(tx *document.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	return fn(document.NewTx(doc))
}

func (s *Store) GetUser(ctx context.Context, id int64) (model.User, error) {
	var out model.User
	err := s.read(func(tx *document.Tx) error {
		var err error
		out, err = tx.GetUser(ctx, id)
		return err
	})
	return out, err
}

func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := s.read(func(tx *document.Tx) error {
		var err error
		out, err = tx.ListUsers(ctx)
		return err
	})
	return out, err
}

func (s *Store) ListSwipesBySwiper(ctx context.Context, swiperID int64) ([]model.Swipe, error) {
	var out []model.Swipe
	err := s.read(func(tx *document.Tx) error {
		var err error
		out, err = tx.ListSwipesBySwiper(ctx, swiperID)
		return err
	})
	return out, err
}

func (s *Store) RightSwipeExists(ctx context.Context, swiperID, swipedID int64) (bool, error) {
	var out bool
	err := s.read(func(tx *document.Tx) error {
		var err error
		out, err = tx.RightSwipeExists(ctx, swiperID, swipedID)
		return err
	})
	return out, err
}

func (s *Store) GetMatch(ctx context.Context, id int64) (model.Match, error) {
	var out model.Match
	err := s.read(func(tx *document.Tx) error {
		var err error
		out, err = tx.GetMatch(ctx, id)
		return err
	})
	return out, err
}

func (s *Store) ListMatchesForUser(ctx context.Context, userID int64) ([]model.Match, error) {
	var out []model.Match
	err := s.read(func(tx *document.Tx) error {
		var err error
		out, err = tx.ListMatchesForUser(ctx, userID)
		return err
	})
	return out, err
}

func (s *Store) ListMessages(ctx context.Context, matchID int64) ([]model.Message, error) {
	var out []model.Message
	err := s.read(func(tx *document.Tx) error {
		var err error
		out, err = tx.ListMessages(ctx, matchID)
		return err
	})
	return out, err
}

func (s *Store) GetDateIdea(ctx context.Context, id int64) (model.DateIdea, error) {
	var out model.DateIdea
	err := s.read(func(tx *document.Tx) error {
		var err error
		out, err = tx.GetDateIdea(ctx, id)
		return err
	})
	return out, err
}

func (s *Store) ListDateIdeas(ctx context.Context) ([]model.DateIdea, error) {
	var out []model.DateIdea
	err := s.read(func(tx *document.Tx) error {
		var err error
		out, err = tx.ListDateIdeas(ctx)
		return err
	})
	return out, err
}

func (s *Store) Mutate(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(ctx, document.NewTx(doc)); err != nil {
		return err
	}
	return s.save(doc)
}

func (s *Store) Close() {}
