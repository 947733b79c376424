package jsonfile

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/nrattyp233/create-a-date1/internal/domain/enums"
	"github.com/nrattyp233/create-a-date1/internal/domain/model"
	"github.com/nrattyp233/create-a-date1/internal/store"
)

func TestStateSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "app.json")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	st, err := New(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	ctx := context.Background()
	err = st.Mutate(ctx, func(ctx context.Context, tx store.Tx) error {
		for id := int64(0); id < 2; id++ {
			if _, err := tx.CreateUser(ctx, model.User{ID: id, Name: "user", Age: 25}); err != nil {
				return err
			}
		}
		if _, err := tx.AppendSwipe(ctx, 0, 1, enums.SwipeRight, now); err != nil {
			return err
		}
		m, _, err := tx.CreateMatch(ctx, 0, 1, now)
		if err != nil {
			return err
		}
		_, err = tx.AppendMessage(ctx, m.ID, 0, "hello", now)
		return err
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	st.Close()

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	users, err := reopened.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users after reopen, got %d", len(users))
	}

	matches, err := reopened.ListMatchesForUser(ctx, 0)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(matches) != 1 || matches[0].LastMessage != "hello" {
		t.Fatalf("match state lost across reopen: %+v", matches)
	}

	msgs, err := reopened.ListMessages(ctx, matches[0].ID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(msgs) != 1 || !msgs[0].CreatedAt.Equal(now) {
		t.Fatalf("message state lost across reopen: %+v", msgs)
	}
}

func TestFailedMutationLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.json")

	st, err := New(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	err = st.Mutate(ctx, func(ctx context.Context, tx store.Tx) error {
		_, err := tx.CreateUser(ctx, model.User{ID: 0, Name: "kept"})
		return err
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	boom := errors.New("boom")
	err = st.Mutate(ctx, func(ctx context.Context, tx store.Tx) error {
		if _, err := tx.CreateUser(ctx, model.User{ID: 1, Name: "discarded"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("mutate error not propagated: %v", err)
	}

	users, err := st.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("failed mutation persisted: %+v", users)
	}
}

func TestNewRequiresPath(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
